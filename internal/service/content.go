package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/models"
)

// ContentInput describes a content write.
type ContentInput struct {
	Value []byte
	// Tags are "name=value" pairs.
	Tags []string
	// EncryptTags selects the tag names to encrypt; nil encrypts all.
	EncryptTags crypto.TagSet
	// Recipients receive a wrapped copy of the content key.
	Recipients []*rsa.PublicKey
	// Signers sign the encrypted value.
	Signers []*rsa.PrivateKey
	// Actions are passed through to the payload.
	Actions []models.ServerAction
}

// DecryptInput describes a content read.
type DecryptInput struct {
	Node  models.Node
	Value []byte
	// Nonce is the base64 nonce of the value.
	Nonce string
	// Keys holds the private keys allowed to unwrap the content key.
	Keys *KeyRing
	// DecryptTags selects the tag names to decrypt; nil decrypts all.
	DecryptTags crypto.TagSet
	// VerifyKeys are the public keys, by hash, signatures are checked
	// against. Nil skips verification.
	VerifyKeys map[string]*rsa.PublicKey
}

// DecryptedContent is an opened content.
type DecryptedContent struct {
	Value []byte
	Tags  map[string][]string
	// TagErr joins the failures of individual tags; the tags that decoded
	// are still in Tags.
	TagErr error
	// VerifiedBy lists the key hashes whose signature verified.
	VerifiedBy []string
}

type contentService struct {
	keyChain crypto.KeyChainService
	logger   *logger.Logger
}

// NewContentService constructs a ContentService on top of keyChain.
func NewContentService(keyChain crypto.KeyChainService, logger *logger.Logger) ContentService {
	return &contentService{
		keyChain: keyChain,
		logger:   logger,
	}
}

func (s *contentService) EncryptContent(ctx context.Context, in ContentInput) (models.ContentPayload, error) {
	if err := ctx.Err(); err != nil {
		return models.ContentPayload{}, err
	}
	if len(in.Recipients) == 0 {
		return models.ContentPayload{}, ErrNoRecipients
	}

	key, err := s.keyChain.GenerateContentKey()
	if err != nil {
		return models.ContentPayload{}, fmt.Errorf("error generating content key: %w", err)
	}
	enc, err := s.keyChain.EncryptValue(in.Value, key)
	if err != nil {
		return models.ContentPayload{}, fmt.Errorf("error encrypting content: %w", err)
	}

	refs := make([]models.Reference, 0, len(in.Recipients)+len(in.Signers))
	seen := make(map[string]struct{}, len(in.Recipients))
	for _, pub := range in.Recipients {
		ref, err := s.keyChain.WrapContentKey(key, pub)
		if err != nil {
			return models.ContentPayload{}, fmt.Errorf("error wrapping content key: %w", err)
		}
		if _, dup := seen[ref.TargetHash]; dup {
			continue
		}
		seen[ref.TargetHash] = struct{}{}
		refs = append(refs, ref)
	}

	if len(in.Signers) > 0 {
		sigs, err := s.keyChain.SignValue(enc.Ciphertext, in.Signers)
		if err != nil {
			return models.ContentPayload{}, fmt.Errorf("error signing content: %w", err)
		}
		refs = append(refs, sigs...)
	}

	tags, err := s.keyChain.EncryptTags(in.Tags, key, in.EncryptTags)
	if err != nil {
		return models.ContentPayload{}, fmt.Errorf("error encrypting tags: %w", err)
	}

	s.logger.Debug().
		Int("recipients", len(seen)).
		Int("signatures", len(refs)-len(seen)).
		Int("tags", len(tags)).
		Msg("encrypted content")
	return models.ContentPayload{
		Value:      enc.Ciphertext,
		Nonce:      base64.StdEncoding.EncodeToString(enc.Nonce),
		Tags:       tags,
		References: refs,
		Actions:    in.Actions,
	}, nil
}

func (s *contentService) DecryptContent(ctx context.Context, in DecryptInput) (DecryptedContent, error) {
	if err := ctx.Err(); err != nil {
		return DecryptedContent{}, err
	}
	nonce, err := base64.StdEncoding.DecodeString(in.Nonce)
	if err != nil {
		return DecryptedContent{}, fmt.Errorf("%w: nonce: %v", crypto.ErrDecode, err)
	}

	key := s.unwrapContentKey(in.Node, in.Keys)
	if key == nil {
		return DecryptedContent{}, fmt.Errorf("%w: no key reference could be unwrapped", crypto.ErrAuthenticationFailure)
	}

	value, err := s.keyChain.DecryptValue(in.Value, key, nonce)
	if err != nil {
		return DecryptedContent{}, fmt.Errorf("error decrypting content: %w", err)
	}

	out := DecryptedContent{Value: value}
	out.Tags, out.TagErr = s.keyChain.ExtractTags(in.Node.Tags, key, in.DecryptTags)

	if len(in.VerifyKeys) > 0 {
		out.VerifiedBy, err = s.keyChain.VerifyValue(in.Value, signatureRefs(in.Node), in.VerifyKeys)
		if err != nil {
			return DecryptedContent{}, fmt.Errorf("error verifying signatures: %w", err)
		}
	}
	return out, nil
}

// unwrapContentKey tries the key references of node whose target is in
// keys, in order, and returns the first content key that unwraps.
func (s *contentService) unwrapContentKey(node models.Node, keys *KeyRing) []byte {
	for _, ref := range node.References {
		if ref.Group != models.ReferenceKey {
			continue
		}
		for _, hash := range ref.TargetHashes() {
			if !keys.Has(hash) {
				continue
			}
			priv, err := keys.Get(hash)
			if err != nil {
				s.logger.Warn().Err(err).Str("hash", hash).Msg("skipping unusable certificate")
				continue
			}
			key, err := s.keyChain.UnwrapContentKey(ref.Extra, priv)
			if err != nil {
				s.logger.Debug().Str("hash", hash).Msg("key reference did not unwrap")
				continue
			}
			return key
		}
	}
	return nil
}

func signatureRefs(node models.Node) []models.Reference {
	var out []models.Reference
	for _, ref := range node.References {
		if ref.Group != models.ReferenceSignature {
			continue
		}
		for _, hash := range ref.TargetHashes() {
			out = append(out, models.Reference{TargetHash: hash, Group: ref.Group, Extra: ref.Extra})
		}
	}
	return out
}
