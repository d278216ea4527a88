package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// KeyRef fully describes how to use a piece of key material: the hash
// algorithm it belongs to, an optional nonce and the key bytes.
//
// Its text form is "[hashAlgorithm:][nonce:]key" with nonce and key in
// base64. A single component is a bare key; two components are either
// "alg:key" or "nonce:key" depending on whether the first one names a hash
// algorithm.
type KeyRef struct {
	HashAlgorithm string
	Nonce         []byte
	Key           []byte
}

// ParseKeyRef parses the text form of a KeyRef. The algorithm, when present,
// is normalized to its canonical name.
func ParseKeyRef(text string) (KeyRef, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	var ref KeyRef

	switch len(parts) {
	case 1:
	case 2:
		if alg, err := NormalizeHashAlgorithm(parts[0]); err == nil {
			ref.HashAlgorithm = alg.Name
		} else {
			nonce, err := decodeB64(parts[0])
			if err != nil {
				return KeyRef{}, fmt.Errorf("key ref nonce: %w", err)
			}
			ref.Nonce = nonce
		}
	case 3:
		alg, err := NormalizeHashAlgorithm(parts[0])
		if err != nil {
			return KeyRef{}, fmt.Errorf("key ref algorithm: %w", err)
		}
		ref.HashAlgorithm = alg.Name
		if parts[1] != "" {
			if ref.Nonce, err = decodeB64(parts[1]); err != nil {
				return KeyRef{}, fmt.Errorf("key ref nonce: %w", err)
			}
		}
	default:
		return KeyRef{}, fmt.Errorf("%w: key ref has %d components", ErrDecode, len(parts))
	}

	key, err := decodeB64(parts[len(parts)-1])
	if err != nil {
		return KeyRef{}, fmt.Errorf("key ref key: %w", err)
	}
	if len(key) == 0 {
		return KeyRef{}, fmt.Errorf("%w: empty key", ErrDecode)
	}
	ref.Key = key
	return ref, nil
}

// String formats r so that [ParseKeyRef] returns an equal value.
func (r KeyRef) String() string {
	key := base64.StdEncoding.EncodeToString(r.Key)
	switch {
	case r.HashAlgorithm != "" && len(r.Nonce) > 0:
		return r.HashAlgorithm + ":" + base64.StdEncoding.EncodeToString(r.Nonce) + ":" + key
	case r.HashAlgorithm != "":
		return r.HashAlgorithm + ":" + key
	case len(r.Nonce) > 0:
		return base64.StdEncoding.EncodeToString(r.Nonce) + ":" + key
	default:
		return key
	}
}

func decodeB64(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}
	return raw, nil
}
