package crypto

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the crypto primitives. Callers match them
// with [errors.Is]; the more specific errors wrap [ErrCryptoOperation].
var (
	// ErrDecode is returned for malformed base64, PEM or DER input.
	ErrDecode = errors.New("decode error")

	// ErrCryptoOperation is returned when a primitive cannot run at all.
	// It never results in a plaintext fallback.
	ErrCryptoOperation = errors.New("crypto operation failed")

	// ErrUnsupportedAlgorithm is returned for unknown hash algorithm names or
	// algorithms that cannot serve the requested operation.
	ErrUnsupportedAlgorithm = fmt.Errorf("%w: unsupported algorithm", ErrCryptoOperation)

	// ErrNotExtractable is returned when a key handle forbids export.
	ErrNotExtractable = fmt.Errorf("%w: key is not extractable", ErrCryptoOperation)

	// ErrNotAPrivateKey is returned when private key material was required
	// but the input only holds a public key.
	ErrNotAPrivateKey = fmt.Errorf("%w: not a private key", ErrCryptoOperation)

	// ErrInvalidKeySize is returned for symmetric keys that are not 16, 24
	// or 32 bytes long.
	ErrInvalidKeySize = fmt.Errorf("%w: invalid key size", ErrCryptoOperation)

	// ErrAuthenticationFailure is returned when an AEAD tag does not match or
	// when no password/prekey combination opens a prekey. The message never
	// names the failing candidate.
	ErrAuthenticationFailure = errors.New("cannot decrypt")
)
