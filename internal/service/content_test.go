package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/mock"
	"github.com/MKhiriev/go-graph-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEncryptContent_Flow(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeyChainService(ctrl)
	svc := NewContentService(kc, logger.Nop())

	pub := &rsa.PublicKey{}
	signer := &rsa.PrivateKey{}
	key := []byte("content-key")
	nonce := []byte("0123456789abc")
	keyRef := models.Reference{TargetHash: "h1", Group: models.ReferenceKey, Extra: "sha512:AAAA"}
	sigRef := models.Reference{TargetHash: "h1", Group: models.ReferenceSignature, Extra: "sha512:BBBB"}
	encryptSet := crypto.NewTagSet("name")

	gomock.InOrder(
		kc.EXPECT().GenerateContentKey().Return(key, nil),
		kc.EXPECT().EncryptValue([]byte("value"), key).Return(crypto.SymmetricResult{Ciphertext: []byte("ct"), Key: key, Nonce: nonce}, nil),
		kc.EXPECT().WrapContentKey(key, pub).Return(keyRef, nil).Times(2),
		kc.EXPECT().SignValue([]byte("ct"), []*rsa.PrivateKey{signer}).Return([]models.Reference{sigRef}, nil),
		kc.EXPECT().EncryptTags([]string{"name=secret", "state=public"}, key, encryptSet).Return([]string{"name=xx", "state=public"}, nil),
	)

	actions := []models.ServerAction{{Op: models.ServerActionAdd, Token: "dG9r", Action: models.ActionView}}
	payload, err := svc.EncryptContent(context.Background(), ContentInput{
		Value:       []byte("value"),
		Tags:        []string{"name=secret", "state=public"},
		EncryptTags: encryptSet,
		Recipients:  []*rsa.PublicKey{pub, pub},
		Signers:     []*rsa.PrivateKey{signer},
		Actions:     actions,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContentPayload{
		Value:      []byte("ct"),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Tags:       []string{"name=xx", "state=public"},
		References: []models.Reference{keyRef, sigRef},
		Actions:    actions,
	}, payload)
}

func TestEncryptContent_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeyChainService(ctrl)
	svc := NewContentService(kc, logger.Nop())

	_, err := svc.EncryptContent(context.Background(), ContentInput{Value: []byte("v")})
	assert.ErrorIs(t, err, ErrNoRecipients)

	boom := errors.New("boom")
	kc.EXPECT().GenerateContentKey().Return(nil, boom)
	_, err = svc.EncryptContent(context.Background(), ContentInput{
		Value:      []byte("v"),
		Recipients: []*rsa.PublicKey{{}},
	})
	assert.ErrorIs(t, err, boom)
}

func TestContent_RoundTrip(t *testing.T) {
	privA, privB := testKeys(t)
	hashA := keyHash(t, privA, crypto.SHA512)
	hashB := keyHash(t, privB, crypto.SHA512)
	kc, err := crypto.NewKeyChainService(crypto.SHA512)
	require.NoError(t, err)
	svc := NewContentService(kc, logger.Nop())

	payload, err := svc.EncryptContent(context.Background(), ContentInput{
		Value:      []byte("the content"),
		Tags:       []string{"name=db password", "type=Text"},
		Recipients: []*rsa.PublicKey{&privA.PublicKey},
		Signers:    []*rsa.PrivateKey{privA},
	})
	require.NoError(t, err)
	assert.NotEqual(t, []byte("the content"), payload.Value)

	node := models.Node{ID: "X", Tags: payload.Tags}
	for _, ref := range payload.References {
		node.References = append(node.References, models.NodeReference{
			Group:      ref.Group,
			Extra:      ref.Extra,
			TargetTags: []string{models.TagKeyHash + "=" + ref.TargetHash},
		})
	}

	ring := NewKeyRing(crypto.SHA512)
	ring.Add(hashA, pkcs8(t, privA))
	verify, err := ring.PublicKeys()
	require.NoError(t, err)

	got, err := svc.DecryptContent(context.Background(), DecryptInput{
		Node:       node,
		Value:      payload.Value,
		Nonce:      payload.Nonce,
		Keys:       ring,
		VerifyKeys: verify,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("the content"), got.Value)
	assert.NoError(t, got.TagErr)
	assert.Equal(t, map[string][]string{"name": {"db password"}, "type": {"Text"}}, got.Tags)
	assert.Equal(t, []string{hashA}, got.VerifiedBy)

	other := NewKeyRing(crypto.SHA512)
	other.Add(hashB, pkcs8(t, privB))
	_, err = svc.DecryptContent(context.Background(), DecryptInput{
		Node:  node,
		Value: payload.Value,
		Nonce: payload.Nonce,
		Keys:  other,
	})
	assert.ErrorIs(t, err, crypto.ErrAuthenticationFailure)

	_, err = svc.DecryptContent(context.Background(), DecryptInput{Node: node, Nonce: "%%%", Keys: ring})
	assert.ErrorIs(t, err, crypto.ErrDecode)
}
