// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/MKhiriev/go-graph-vault/models"
)

// PSSSaltLength is the RSA-PSS salt length used for content signatures.
const PSSSaltLength = 32

// KeyHash returns the hash identity of a public key:
// base64(digest(SPKI-export)).
func KeyHash(pub *rsa.PublicKey, algorithm string) (string, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	der, err := ToBytes(pub)
	if err != nil {
		return "", err
	}
	return alg.HashToken(der), nil
}

// KeyHashes returns the hash of pub under every algorithm, keyed by
// canonical algorithm name, so a key can be looked up under all hash
// identities a host currently advertises.
func KeyHashes(pub *rsa.PublicKey, algorithms []string) (map[string]string, error) {
	der, err := ToBytes(pub)
	if err != nil {
		return nil, err
	}
	return HashTokenAll(der, algorithms)
}

// WrapKey encrypts a content key for one recipient with RSA-OAEP.
func WrapKey(contentKey []byte, recipient *rsa.PublicKey, algorithm string) ([]byte, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	wrapped, err := rsa.EncryptOAEP(alg.New(), rand.Reader, recipient, contentKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: oaep wrap: %v", ErrCryptoOperation, err)
	}
	return wrapped, nil
}

// UnwrapKey recovers a content key wrapped by [WrapKey]. Any decryption
// failure is reported as [ErrAuthenticationFailure].
func UnwrapKey(wrapped []byte, priv *rsa.PrivateKey, algorithm string) ([]byte, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	key, err := rsa.DecryptOAEP(alg.New(), rand.Reader, priv, wrapped, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	return key, nil
}

// UnwrapRef unwraps the key of a composite reference. The algorithm embedded
// in the ref wins over fallbackAlgorithm.
func UnwrapRef(ref KeyRef, priv *rsa.PrivateKey, fallbackAlgorithm string) ([]byte, error) {
	algorithm := ref.HashAlgorithm
	if algorithm == "" {
		algorithm = fallbackAlgorithm
	}
	return UnwrapKey(ref.Key, priv, algorithm)
}

// KeyReference wraps contentKey for recipient and returns the "key" group
// reference that goes into the mutation payload.
func KeyReference(contentKey []byte, recipient *rsa.PublicKey, algorithm string) (models.Reference, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return models.Reference{}, err
	}
	target, err := KeyHash(recipient, alg.Name)
	if err != nil {
		return models.Reference{}, err
	}
	wrapped, err := WrapKey(contentKey, recipient, alg.Name)
	if err != nil {
		return models.Reference{}, err
	}
	return models.Reference{
		TargetHash: target,
		Group:      models.ReferenceKey,
		Extra:      KeyRef{HashAlgorithm: alg.Name, Key: wrapped}.String(),
	}, nil
}

// Sign produces one RSA-PSS signature over ciphertext per signer. Each
// signature reference targets the signer's public key hash so verifiers can
// match the signer without trusting the sender.
func Sign(ciphertext []byte, signers []*rsa.PrivateKey, algorithm string) ([]models.Reference, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if err := alg.requireCrypto(); err != nil {
		return nil, err
	}
	digest := alg.Digest(ciphertext)
	opts := &rsa.PSSOptions{SaltLength: PSSSaltLength, Hash: alg.Crypto}

	refs := make([]models.Reference, 0, len(signers))
	seen := make(map[string]struct{}, len(signers))
	for _, signer := range signers {
		target, err := KeyHash(&signer.PublicKey, alg.Name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}

		sig, err := rsa.SignPSS(rand.Reader, signer, alg.Crypto, digest, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: pss sign: %v", ErrCryptoOperation, err)
		}
		refs = append(refs, models.Reference{
			TargetHash: target,
			Group:      models.ReferenceSignature,
			Extra:      KeyRef{HashAlgorithm: alg.Name, Key: sig}.String(),
		})
	}
	return refs, nil
}

// Verify checks the signature references against the known public keys,
// keyed by hash. It returns the hashes whose signatures verify; references
// with unknown targets or bad signatures are skipped.
func Verify(ciphertext []byte, refs []models.Reference, keys map[string]*rsa.PublicKey) ([]string, error) {
	verified := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Group != models.ReferenceSignature {
			continue
		}
		pub, ok := keys[ref.TargetHash]
		if !ok {
			continue
		}
		sig, err := ParseKeyRef(ref.Extra)
		if err != nil {
			return nil, err
		}
		if sig.HashAlgorithm == "" {
			return nil, fmt.Errorf("%w: signature without hash algorithm", ErrDecode)
		}
		alg, err := NormalizeHashAlgorithm(sig.HashAlgorithm)
		if err != nil {
			return nil, err
		}
		if err := alg.requireCrypto(); err != nil {
			return nil, err
		}
		opts := &rsa.PSSOptions{SaltLength: PSSSaltLength, Hash: alg.Crypto}
		if err := rsa.VerifyPSS(pub, alg.Crypto, alg.Digest(ciphertext), sig.Key, opts); err != nil {
			continue
		}
		verified = append(verified, ref.TargetHash)
	}
	return verified, nil
}
