// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	stdcrypto "crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"strings"
)

// KeyType selects what [ToKey] should produce.
type KeyType int

const (
	KeyPrivate KeyType = iota + 1
	KeyPublic
	KeySymmetric
)

// SymmetricKey is raw symmetric key material. Wrapping raw bytes in this
// type tells [ToBytes] to export them verbatim.
type SymmetricKey []byte

// KeyPair bundles an RSA private key with its public half.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// NewKeyPair builds a KeyPair from a private key.
func NewKeyPair(priv *rsa.PrivateKey) KeyPair {
	return KeyPair{Private: priv, Public: &priv.PublicKey}
}

// ToBytes normalizes key material to raw bytes:
//   - string: PEM text (the first block's bytes) or base64 text;
//   - []byte: returned as is (DER or raw secret);
//   - io.Reader: read fully, then treated like a string;
//   - *rsa.PrivateKey, KeyPair: PKCS8 DER;
//   - *rsa.PublicKey: SPKI DER;
//   - SymmetricKey: raw bytes.
//
// Other crypto.Signer / crypto.Decrypter handles (HSM, smart cards) cannot
// be exported and fail with [ErrNotExtractable].
func ToBytes(input any) ([]byte, error) {
	switch v := input.(type) {
	case string:
		return decodeText(v)
	case []byte:
		return v, nil
	case SymmetricKey:
		return []byte(v), nil
	case io.Reader:
		raw, err := io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("read key material: %w", err)
		}
		return decodeText(string(raw))
	case *rsa.PrivateKey:
		der, err := x509.MarshalPKCS8PrivateKey(v)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal pkcs8: %v", ErrCryptoOperation, err)
		}
		return der, nil
	case KeyPair:
		if v.Private == nil {
			return nil, ErrNotAPrivateKey
		}
		return ToBytes(v.Private)
	case *rsa.PublicKey:
		der, err := x509.MarshalPKIXPublicKey(v)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal spki: %v", ErrCryptoOperation, err)
		}
		return der, nil
	case stdcrypto.Signer, stdcrypto.Decrypter:
		return nil, ErrNotExtractable
	default:
		return nil, fmt.Errorf("%w: unsupported key material %T", ErrCryptoOperation, input)
	}
}

// decodeText accepts PEM or base64 text.
func decodeText(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "-----BEGIN") {
		block, _ := pem.Decode([]byte(trimmed))
		if block == nil {
			return nil, fmt.Errorf("%w: invalid PEM block", ErrDecode)
		}
		return block.Bytes, nil
	}
	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}
	return raw, nil
}

// ToKey normalizes any key material into a key of the wanted type:
// *rsa.PrivateKey, *rsa.PublicKey or SymmetricKey.
func ToKey(input any, wanted KeyType) (any, error) {
	switch wanted {
	case KeyPrivate:
		return ToPrivateKey(input)
	case KeyPublic:
		return ToPublicKey(input)
	case KeySymmetric:
		return ToSymmetricKey(input)
	default:
		return nil, fmt.Errorf("%w: unknown key type %d", ErrCryptoOperation, wanted)
	}
}

// ToPrivateKey imports an RSA private key from PKCS8 (or legacy PKCS1)
// material. Public-only material fails with [ErrNotAPrivateKey].
func ToPrivateKey(input any) (*rsa.PrivateKey, error) {
	switch v := input.(type) {
	case *rsa.PrivateKey:
		return v, nil
	case KeyPair:
		if v.Private == nil {
			return nil, ErrNotAPrivateKey
		}
		return v.Private, nil
	case *rsa.PublicKey:
		return nil, ErrNotAPrivateKey
	}

	der, err := ToBytes(input)
	if err != nil {
		return nil, err
	}
	return parsePrivateDER(der)
}

func parsePrivateDER(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
		}
		return priv, nil
	}
	if priv, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return priv, nil
	}
	return nil, ErrNotAPrivateKey
}

// ToPublicKey imports an RSA public key. Private material is tried first so
// a stored private key yields its public half; on failure the input is
// parsed as SPKI, then as a PKCS1 public key.
func ToPublicKey(input any) (*rsa.PublicKey, error) {
	switch v := input.(type) {
	case *rsa.PublicKey:
		return v, nil
	case *rsa.PrivateKey:
		return &v.PublicKey, nil
	case KeyPair:
		if v.Public != nil {
			return v.Public, nil
		}
		if v.Private != nil {
			return &v.Private.PublicKey, nil
		}
		return nil, fmt.Errorf("%w: empty key pair", ErrCryptoOperation)
	}

	der, err := ToBytes(input)
	if err != nil {
		return nil, err
	}
	if priv, err := parsePrivateDER(der); err == nil {
		return &priv.PublicKey, nil
	}
	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedAlgorithm, key)
		}
		return pub, nil
	}
	if pub, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return pub, nil
	}
	return nil, fmt.Errorf("%w: not an RSA key", ErrDecode)
}

// ToSymmetricKey normalizes AES key material and checks its size.
func ToSymmetricKey(input any) (SymmetricKey, error) {
	raw, err := ToBytes(input)
	if err != nil {
		return nil, err
	}
	switch len(raw) {
	case 16, 24, 32:
		return SymmetricKey(raw), nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, len(raw))
	}
}

// DerivePublic recomputes a verify-only public key from private material.
// The result is re-imported from its SPKI encoding and shares no memory
// with the input.
func DerivePublic(input any) (*rsa.PublicKey, error) {
	if _, ok := input.(SymmetricKey); ok {
		return nil, fmt.Errorf("%w: symmetric keys have no public half", ErrCryptoOperation)
	}
	priv, err := ToPrivateKey(input)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal spki: %v", ErrCryptoOperation, err)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse spki: %v", ErrCryptoOperation, err)
	}
	return key.(*rsa.PublicKey), nil
}

// EncodePEM exports key material as PEM text: PRIVATE KEY for private keys,
// PUBLIC KEY otherwise.
func EncodePEM(input any) (string, error) {
	blockType := "PUBLIC KEY"
	switch input.(type) {
	case *rsa.PrivateKey, KeyPair:
		blockType = "PRIVATE KEY"
	case SymmetricKey:
		return "", fmt.Errorf("%w: symmetric keys are not PEM encoded", ErrCryptoOperation)
	}
	der, err := ToBytes(input)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})), nil
}
