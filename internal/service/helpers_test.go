package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"sync"
	"testing"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/models"
	"github.com/stretchr/testify/require"
)

const testHost = "https://example.com/graphql"

var (
	keysOnce sync.Once
	keyA     *rsa.PrivateKey
	keyB     *rsa.PrivateKey
	keysErr  error
)

// testKeys returns two RSA keys shared by every test of the package.
func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	keysOnce.Do(func() {
		keyA, keysErr = rsa.GenerateKey(rand.Reader, 2048)
		if keysErr != nil {
			return
		}
		keyB, keysErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, keysErr)
	return keyA, keyB
}

func pkcs8(t *testing.T, priv *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	return der
}

func tokenHash(t *testing.T, secret, alg string) string {
	t.Helper()
	h, err := crypto.HashToken([]byte(secret), alg)
	require.NoError(t, err)
	return h
}

func keyHash(t *testing.T, priv *rsa.PrivateKey, alg string) string {
	t.Helper()
	h, err := crypto.KeyHash(&priv.PublicKey, alg)
	require.NoError(t, err)
	return h
}

// newTestVault returns a vault with one host advertising algs and the
// given cluster hash maps.
func newTestVault(algs []string, clusters map[string]map[string]models.ActionSet) models.Vault {
	v := vault.New(testHost)
	host := models.HostEntry{
		HashAlgorithms: algs,
		Clusters:       map[string]models.ScopeGrants{},
		Contents:       map[string]models.ScopeGrants{},
	}
	for id, hashes := range clusters {
		host.Clusters[id] = models.ScopeGrants{Hashes: hashes}
	}
	v.Hosts[testHost] = host
	return v
}
