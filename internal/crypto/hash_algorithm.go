// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	stdcrypto "crypto"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
)

// Canonical hash algorithm names. Every alias accepted by
// [NormalizeHashAlgorithm] maps to one of these.
const (
	SHA256 = "sha256"
	SHA384 = "sha384"
	SHA512 = "sha512"
	BLAKE3 = "blake3"
)

// HashAlgorithm is a normalized digest algorithm.
type HashAlgorithm struct {
	// Name is the canonical identifier.
	Name string
	// New returns a fresh hash.Hash.
	New func() hash.Hash
	// Crypto is the registered crypto.Hash, zero for algorithms the
	// standard library does not register (blake3). Signatures require it.
	Crypto stdcrypto.Hash
}

var hashAlgorithms = map[string]HashAlgorithm{
	SHA256: {Name: SHA256, New: sha256.New, Crypto: stdcrypto.SHA256},
	SHA384: {Name: SHA384, New: sha512.New384, Crypto: stdcrypto.SHA384},
	SHA512: {Name: SHA512, New: sha512.New, Crypto: stdcrypto.SHA512},
	BLAKE3: {Name: BLAKE3, New: func() hash.Hash { return blake3.New() }},
}

// NormalizeHashAlgorithm maps any accepted alias ("sha256", "SHA-256",
// "sha_256", "SHA256", ...) to its canonical [HashAlgorithm].
func NormalizeHashAlgorithm(name string) (HashAlgorithm, error) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	canonical = strings.NewReplacer("-", "", "_", "").Replace(canonical)
	alg, ok := hashAlgorithms[canonical]
	if !ok {
		return HashAlgorithm{}, fmt.Errorf("%w: hash %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// Digest computes the raw digest of data.
func (h HashAlgorithm) Digest(data []byte) []byte {
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// HashToken returns the hash identity of a secret: base64(digest(secret)).
func (h HashAlgorithm) HashToken(secret []byte) string {
	return base64.StdEncoding.EncodeToString(h.Digest(secret))
}

// HashToken normalizes algorithm and returns the hash identity of secret.
func HashToken(secret []byte, algorithm string) (string, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	return alg.HashToken(secret), nil
}

// HashTokenAll returns the hash identity of secret under every algorithm,
// keyed by canonical name. Used while a host advertises more than one
// algorithm.
func HashTokenAll(secret []byte, algorithms []string) (map[string]string, error) {
	out := make(map[string]string, len(algorithms))
	for _, name := range algorithms {
		alg, err := NormalizeHashAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out[alg.Name] = alg.HashToken(secret)
	}
	return out, nil
}

func (h HashAlgorithm) requireCrypto() error {
	if h.Crypto == 0 || !h.Crypto.Available() {
		return fmt.Errorf("%w: %s cannot be used for signatures", ErrUnsupportedAlgorithm, h.Name)
	}
	return nil
}
