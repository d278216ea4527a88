// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-graph-vault/internal/workers"
)

// PasswordKeySize is the number of bits derived from a password, capped at
// 256 so the result is a valid AES-GCM key.
const PasswordKeySize = 32

// DefaultIterations is the PBKDF2 iteration count used when none is
// configured.
const DefaultIterations = 100000

// DerivePasswordKey derives a 256-bit key from password with PBKDF2.
func DerivePasswordKey(password string, salt []byte, iterations int, algorithm string) ([]byte, error) {
	alg, err := NormalizeHashAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive", ErrCryptoOperation)
	}
	return pbkdf2.Key([]byte(password), salt, iterations, PasswordKeySize, alg.New), nil
}

// WrapWithPassword encrypts secret under a key derived from password. The
// random nonce doubles as the PBKDF2 salt. Output is
// base64(nonce‖ciphertext).
func WrapWithPassword(secret []byte, password string, iterations int, algorithm string) (string, error) {
	nonce, err := GenerateNonce()
	if err != nil {
		return "", err
	}
	key, err := DerivePasswordKey(password, nonce, iterations, algorithm)
	if err != nil {
		return "", err
	}
	res, err := Encrypt(secret, key, nonce)
	if err != nil {
		return "", err
	}
	blob := make([]byte, 0, len(nonce)+len(res.Ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, res.Ciphertext...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// UnwrapWithPassword reverses [WrapWithPassword] for a single password.
func UnwrapWithPassword(prekey, password string, iterations int, algorithm string) ([]byte, error) {
	blob, err := decodePrekey(prekey)
	if err != nil {
		return nil, err
	}
	return openPrekey(blob, password, iterations, algorithm)
}

func decodePrekey(prekey string) ([]byte, error) {
	blob, err := decodeB64(prekey)
	if err != nil {
		return nil, err
	}
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("%w: prekey too short", ErrDecode)
	}
	return blob, nil
}

func openPrekey(blob []byte, password string, iterations int, algorithm string) ([]byte, error) {
	nonce := blob[:NonceSize]
	key, err := DerivePasswordKey(password, nonce, iterations, algorithm)
	if err != nil {
		return nil, err
	}
	return Decrypt(blob[NonceSize:], key, nonce)
}

// UnwrapAny tries every prekey × password combination concurrently and
// returns the secret from the first combination that authenticates. Once
// one succeeds, attempts that have not started are dropped. When none
// succeeds the result is [ErrAuthenticationFailure], without telling which
// candidates were tried.
//
// Prekeys are decoded before any key derivation runs; malformed ones are
// skipped, and when no prekey decodes the result is [ErrDecode].
//
// limit bounds the number of concurrent KDF runs; non-positive means
// GOMAXPROCS.
func UnwrapAny(ctx context.Context, prekeys, passwords []string, iterations int, algorithm string, limit int) ([]byte, error) {
	if _, err := NormalizeHashAlgorithm(algorithm); err != nil {
		return nil, err
	}
	if len(prekeys) == 0 || len(passwords) == 0 {
		return nil, ErrAuthenticationFailure
	}

	blobs := make([][]byte, 0, len(prekeys))
	var decodeErr error
	for _, prekey := range prekeys {
		blob, err := decodePrekey(prekey)
		if err != nil {
			decodeErr = err
			continue
		}
		blobs = append(blobs, blob)
	}
	if len(blobs) == 0 {
		return nil, decodeErr
	}

	tasks := make([]workers.Task[[]byte], 0, len(blobs)*len(passwords))
	for _, blob := range blobs {
		for _, password := range passwords {
			tasks = append(tasks, func(ctx context.Context) ([]byte, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return openPrekey(blob, password, iterations, algorithm)
			})
		}
	}

	secret, err := workers.FirstSuccess(ctx, limit, tasks)
	if err != nil {
		if errors.Is(err, workers.ErrNoSuccess) {
			return nil, ErrAuthenticationFailure
		}
		return nil, err
	}
	return secret, nil
}
