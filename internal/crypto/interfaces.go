package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

import (
	"crypto/rsa"

	"github.com/MKhiriev/go-graph-vault/models"
)

// KeyChainService bundles the content-level cryptography the service layer
// needs. It knows nothing about the network or the vault; it only
// generates, wraps and applies keys under one configured hash algorithm.
//
// Write flow:
//
//	key      = GenerateContentKey()
//	value    = EncryptValue(plaintext, key)
//	refs     = WrapContentKey(key, recipient) for every recipient
//	sigs     = SignValue(value.Ciphertext, signers)
//	tags     = EncryptTags(tags, key, encryptSet)
//
// Read flow is the reverse: UnwrapContentKey on a held private key, then
// DecryptValue and ExtractTags.
type KeyChainService interface {
	// HashAlgorithm returns the canonical name of the configured algorithm.
	HashAlgorithm() string

	// HashToken returns base64(digest(secret)).
	HashToken(secret []byte) string

	// GenerateContentKey returns a fresh random 32-byte content key. It is
	// never persisted.
	GenerateContentKey() ([]byte, error)

	// EncryptValue seals plaintext with key under a fresh 13-byte nonce.
	EncryptValue(plaintext, key []byte) (SymmetricResult, error)

	// DecryptValue opens ciphertext; a tag mismatch is ErrAuthenticationFailure.
	DecryptValue(ciphertext, key, nonce []byte) ([]byte, error)

	// WrapContentKey wraps key for recipient and returns the "key" reference.
	WrapContentKey(key []byte, recipient *rsa.PublicKey) (models.Reference, error)

	// UnwrapContentKey recovers a content key from a reference extra.
	UnwrapContentKey(extra string, priv *rsa.PrivateKey) ([]byte, error)

	// SignValue returns one signature reference per signer.
	SignValue(ciphertext []byte, signers []*rsa.PrivateKey) ([]models.Reference, error)

	// VerifyValue returns the hashes of keys whose signature over
	// ciphertext verifies.
	VerifyValue(ciphertext []byte, refs []models.Reference, keys map[string]*rsa.PublicKey) ([]string, error)

	// EncryptTags encrypts the tags whose names are in encryptSet.
	EncryptTags(tags []string, key []byte, encryptSet TagSet) ([]string, error)

	// ExtractTags decrypts tags one by one, tolerating individual failures.
	ExtractTags(tags []string, key []byte, decryptSet TagSet) (map[string][]string, error)
}
