// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rsa"

	"github.com/MKhiriev/go-graph-vault/models"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	alg HashAlgorithm
}

// NewKeyChainService constructs a [KeyChainService] bound to hashAlgorithm.
// Aliases are normalized; unknown names fail with ErrUnsupportedAlgorithm.
func NewKeyChainService(hashAlgorithm string) (KeyChainService, error) {
	alg, err := NormalizeHashAlgorithm(hashAlgorithm)
	if err != nil {
		return nil, err
	}
	return &keyChainService{alg: alg}, nil
}

// HashAlgorithm implements [KeyChainService].
func (k *keyChainService) HashAlgorithm() string {
	return k.alg.Name
}

// HashToken implements [KeyChainService].
func (k *keyChainService) HashToken(secret []byte) string {
	return k.alg.HashToken(secret)
}

// GenerateContentKey implements [KeyChainService].
func (k *keyChainService) GenerateContentKey() ([]byte, error) {
	return GenerateKey()
}

// EncryptValue implements [KeyChainService].
func (k *keyChainService) EncryptValue(plaintext, key []byte) (SymmetricResult, error) {
	return Encrypt(plaintext, key, nil)
}

// DecryptValue implements [KeyChainService].
func (k *keyChainService) DecryptValue(ciphertext, key, nonce []byte) ([]byte, error) {
	return Decrypt(ciphertext, key, nonce)
}

// WrapContentKey implements [KeyChainService].
func (k *keyChainService) WrapContentKey(key []byte, recipient *rsa.PublicKey) (models.Reference, error) {
	return KeyReference(key, recipient, k.alg.Name)
}

// UnwrapContentKey implements [KeyChainService]. The extra is parsed as a
// [KeyRef]; its embedded algorithm wins over the configured one so
// references written before a hash algorithm migration still open.
func (k *keyChainService) UnwrapContentKey(extra string, priv *rsa.PrivateKey) ([]byte, error) {
	ref, err := ParseKeyRef(extra)
	if err != nil {
		return nil, err
	}
	return UnwrapRef(ref, priv, k.alg.Name)
}

// SignValue implements [KeyChainService].
func (k *keyChainService) SignValue(ciphertext []byte, signers []*rsa.PrivateKey) ([]models.Reference, error) {
	return Sign(ciphertext, signers, k.alg.Name)
}

// VerifyValue implements [KeyChainService].
func (k *keyChainService) VerifyValue(ciphertext []byte, refs []models.Reference, keys map[string]*rsa.PublicKey) ([]string, error) {
	return Verify(ciphertext, refs, keys)
}

// EncryptTags implements [KeyChainService].
func (k *keyChainService) EncryptTags(tags []string, key []byte, encryptSet TagSet) ([]string, error) {
	return EncryptTags(tags, key, encryptSet)
}

// ExtractTags implements [KeyChainService].
func (k *keyChainService) ExtractTags(tags []string, key []byte, decryptSet TagSet) (map[string][]string, error) {
	return ExtractTags(tags, key, decryptSet)
}
