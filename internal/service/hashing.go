package service

import (
	"fmt"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/models"
)

// pickAlgorithm returns the explicit override, else the host's preferred
// algorithm, else fallback.
func pickAlgorithm(override string, host models.HostEntry, fallback string) (crypto.HashAlgorithm, error) {
	name := override
	if name == "" && len(host.HashAlgorithms) > 0 {
		name = host.HashAlgorithms[0]
	}
	if name == "" {
		name = fallback
	}
	return crypto.NormalizeHashAlgorithm(name)
}

// entryHash returns the hash identity of a secret: the digest of a token,
// or the public key hash of a certificate.
func entryHash(alg crypto.HashAlgorithm, secret []byte, locked bool) (string, error) {
	if !locked {
		return alg.HashToken(secret), nil
	}
	pub, err := crypto.DerivePublic(secret)
	if err != nil {
		return "", fmt.Errorf("error deriving certificate public key: %w", err)
	}
	return crypto.KeyHash(pub, alg.Name)
}
