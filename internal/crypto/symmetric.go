// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// NonceSize is the AES-GCM nonce length used for content, tags and
// prekeys. It is 13 bytes rather than the usual 12 to stay compatible with
// data already written by the server's other clients.
const NonceSize = 13

// ContentKeySize is the length of generated content keys (AES-256).
const ContentKeySize = 32

// SymmetricResult is the output of [Encrypt].
type SymmetricResult struct {
	Ciphertext []byte
	Key        []byte
	Nonce      []byte
}

// GenerateKey returns a random 32-byte content key.
func GenerateKey() ([]byte, error) {
	return randomBytes(ContentKeySize)
}

// GenerateNonce returns a random [NonceSize] nonce.
func GenerateNonce() ([]byte, error) {
	return randomBytes(NonceSize)
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("%w: read random: %v", ErrCryptoOperation, err)
	}
	return buf, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrCryptoOperation, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %v", ErrCryptoOperation, err)
	}
	return gcm, nil
}

// Encrypt seals data with AES-GCM. A fresh nonce is generated when nonce is
// nil. The returned result carries the key and nonce needed to decrypt.
func Encrypt(data, key, nonce []byte) (SymmetricResult, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return SymmetricResult{}, err
	}
	if nonce == nil {
		if nonce, err = GenerateNonce(); err != nil {
			return SymmetricResult{}, err
		}
	}
	if len(nonce) != NonceSize {
		return SymmetricResult{}, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrCryptoOperation, NonceSize, len(nonce))
	}

	return SymmetricResult{
		Ciphertext: gcm.Seal(nil, nonce, data, nil),
		Key:        key,
		Nonce:      nonce,
	}, nil
}

// Decrypt opens data sealed by [Encrypt]. A tag mismatch returns
// [ErrAuthenticationFailure] and no plaintext.
func Decrypt(data, key, nonce []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrCryptoOperation, NonceSize, len(nonce))
	}
	plain, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	return plain, nil
}

// DecryptRef decrypts data with a composite key reference. When the ref
// carries no nonce, data must be nonce‖ciphertext.
func DecryptRef(data []byte, ref KeyRef) ([]byte, error) {
	if len(ref.Nonce) > 0 {
		return Decrypt(data, ref.Key, ref.Nonce)
	}
	return OpenBlob(data, ref.Key)
}

// SealBlob encrypts data under a fresh nonce and returns nonce‖ciphertext.
func SealBlob(data, key []byte) ([]byte, error) {
	res, err := Encrypt(data, key, nil)
	if err != nil {
		return nil, err
	}
	blob := make([]byte, 0, len(res.Nonce)+len(res.Ciphertext))
	blob = append(blob, res.Nonce...)
	return append(blob, res.Ciphertext...), nil
}

// OpenBlob splits nonce‖ciphertext and decrypts it.
func OpenBlob(blob, key []byte) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecode)
	}
	return Decrypt(blob[NonceSize:], key, blob[:NonceSize])
}
