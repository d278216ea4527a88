// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/validators"
	"github.com/MKhiriev/go-graph-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func newTestAuthResolver() AuthResolver {
	return NewAuthResolverValidationService().Wrap(NewAuthResolver(crypto.SHA512, logger.Nop()))
}

// ── ResolveAuth ──────────────────────────────────────────────────────────────

func TestResolveAuth_ReturnsOnlyMatchingToken(t *testing.T) {
	h1 := tokenHash(t, "secret-1", crypto.SHA512)
	h2 := tokenHash(t, "secret-2", crypto.SHA512)
	v := newTestVault([]string{crypto.SHA512}, map[string]map[string]models.ActionSet{
		"C": {
			h1: models.NewActionSet(models.ActionView),
			h2: models.NewActionSet(models.ActionUpdate, models.ActionManage),
		},
	})
	v.Tokens[h1] = models.SecretEntry{Data: []byte("secret-1")}
	v.Tokens[h2] = models.SecretEntry{Data: []byte("secret-2")}

	info, err := newTestAuthResolver().ResolveAuth(context.Background(), v, "", models.AuthRequest{
		Required: models.NewActionSet(models.ActionUpdate),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"C:" + b64("secret-2")}, info.Tokens)
	assert.Equal(t, []string{h2}, info.Hashes)
	assert.Equal(t, models.NewActionSet(models.ActionUpdate, models.ActionManage), info.Types)
}

func TestResolveAuth_Scoping(t *testing.T) {
	v := newTestVault(nil, map[string]map[string]models.ActionSet{
		"C1": {"h1": models.NewActionSet(models.ActionView)},
		"C2": {"h2": models.NewActionSet(models.ActionView)},
	})
	host := v.Hosts[testHost]
	host.Contents["X"] = models.ScopeGrants{Hashes: map[string]models.ActionSet{
		"h3": models.NewActionSet(models.ActionView),
	}}
	v.Hosts[testHost] = host
	v.Tokens["h1"] = models.SecretEntry{Data: []byte("one")}
	v.Tokens["h2"] = models.SecretEntry{Data: []byte("two")}
	v.Tokens["h3"] = models.SecretEntry{Data: []byte("three")}

	view := models.NewActionSet(models.ActionView)
	tests := []struct {
		name string
		req  models.AuthRequest
		want []string
	}{
		{
			name: "everything",
			req:  models.AuthRequest{Required: view},
			want: []string{"C1:" + b64("one"), "C2:" + b64("two"), "X:" + b64("three")},
		},
		{
			name: "one cluster no contents",
			req:  models.AuthRequest{Required: view, Clusters: models.IDSet("C2"), Contents: models.IDSet()},
			want: []string{"C2:" + b64("two")},
		},
		{
			name: "exclusions",
			req:  models.AuthRequest{Required: view, ExcludeClusters: models.IDSet("C1", "C2")},
			want: []string{"X:" + b64("three")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := newTestAuthResolver().ResolveAuth(context.Background(), v, testHost, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Tokens)
		})
	}
}

func TestResolveAuth_SkipsHashesWithoutSecret(t *testing.T) {
	v := newTestVault(nil, map[string]map[string]models.ActionSet{
		"C": {"lost": models.NewActionSet(models.ActionView)},
	})

	_, err := newTestAuthResolver().ResolveAuth(context.Background(), v, "", models.AuthRequest{
		Required: models.NewActionSet(models.ActionView),
	})

	assert.ErrorIs(t, err, ErrPermissionInsufficient)
}

func TestResolveAuth_UnknownHost(t *testing.T) {
	v := newTestVault(nil, nil)

	info, err := newTestAuthResolver().ResolveAuth(context.Background(), v, "https://other.example.com/graphql", models.AuthRequest{
		Required: models.NewActionSet(models.ActionView),
	})

	assert.ErrorIs(t, err, ErrPermissionInsufficient)
	assert.Empty(t, info.Tokens)
}

func TestResolveAuth_Validation(t *testing.T) {
	v := newTestVault(nil, nil)

	_, err := newTestAuthResolver().ResolveAuth(context.Background(), v, "", models.AuthRequest{})
	assert.ErrorIs(t, err, validators.ErrEmptyRequired)

	_, err = newTestAuthResolver().ResolveAuth(context.Background(), models.Vault{}, "", models.AuthRequest{
		Required: models.NewActionSet(models.ActionView),
	})
	assert.ErrorIs(t, err, validators.ErrEmptyBaseURL)
}

func TestResolveAuth_CancelledContext(t *testing.T) {
	v := newTestVault(nil, map[string]map[string]models.ActionSet{
		"C": {"h": models.NewActionSet(models.ActionView)},
	})
	v.Tokens["h"] = models.SecretEntry{Data: []byte("s")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAuthResolver().ResolveAuth(ctx, v, "", models.AuthRequest{
		Required: models.NewActionSet(models.ActionView),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// ── ResolvePrivateKeys ───────────────────────────────────────────────────────

func TestResolvePrivateKeys(t *testing.T) {
	privA, privB := testKeys(t)
	hashA := keyHash(t, privA, crypto.SHA256)
	hashB := keyHash(t, privB, crypto.SHA256)
	v := newTestVault([]string{crypto.SHA256}, map[string]map[string]models.ActionSet{
		"C1": {hashA: models.NewActionSet(models.ActionView), "token": models.NewActionSet(models.ActionView)},
		"C2": {hashB: models.NewActionSet(models.ActionManage), hashA: models.NewActionSet(models.ActionView)},
	})
	v.Certificates[hashA] = models.SecretEntry{Data: pkcs8(t, privA)}
	v.Certificates[hashB] = models.SecretEntry{Data: pkcs8(t, privB)}
	v.Tokens["token"] = models.SecretEntry{Data: []byte("not a key")}

	ring, err := newTestAuthResolver().ResolvePrivateKeys(context.Background(), v, "", models.AuthRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{hashA, hashB}, ring.Hashes())

	got, err := ring.Get(hashB)
	require.NoError(t, err)
	assert.True(t, privB.Equal(got))

	ring, err = newTestAuthResolver().ResolvePrivateKeys(context.Background(), v, "", models.AuthRequest{
		Required: models.NewActionSet(models.ActionManage),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{hashB}, ring.Hashes())
}

func TestResolvePrivateKeys_UnknownHostIsEmpty(t *testing.T) {
	ring, err := newTestAuthResolver().ResolvePrivateKeys(context.Background(), newTestVault(nil, nil), "https://nowhere.example.com", models.AuthRequest{})
	require.NoError(t, err)
	assert.Zero(t, ring.Len())
}

// ── KeyRing ──────────────────────────────────────────────────────────────────

func TestKeyRing_LazyImportIsShared(t *testing.T) {
	priv, _ := testKeys(t)
	hash := keyHash(t, priv, crypto.SHA512)
	ring := NewKeyRing(crypto.SHA256, crypto.SHA512)
	require.True(t, ring.Add(hash, pkcs8(t, priv)))
	assert.False(t, ring.Add(hash, []byte("ignored")))

	var wg sync.WaitGroup
	got := make([]*rsa.PrivateKey, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = ring.Get(hash)
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, k := range got {
		assert.Same(t, got[0], k)
	}
}

func TestKeyRing_Errors(t *testing.T) {
	priv, other := testKeys(t)
	ring := NewKeyRing(crypto.SHA512)
	ring.Add(keyHash(t, other, crypto.SHA512), pkcs8(t, priv))
	ring.Add("garbage", []byte("not der"))

	_, err := ring.Get(keyHash(t, other, crypto.SHA512))
	assert.ErrorIs(t, err, ErrIntegrityMismatch)

	_, err = ring.Get("garbage")
	assert.ErrorIs(t, err, crypto.ErrNotAPrivateKey)

	_, err = ring.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = ring.Signers()
	assert.Error(t, err)

	var nilRing *KeyRing
	assert.False(t, nilRing.Has("x"))
	assert.Zero(t, nilRing.Len())
}

func TestKeyRing_SignersAndPublicKeys(t *testing.T) {
	privA, privB := testKeys(t)
	hashA := keyHash(t, privA, crypto.SHA512)
	hashB := keyHash(t, privB, crypto.SHA512)
	ring := NewKeyRing(crypto.SHA512)
	ring.Add(hashA, pkcs8(t, privA))
	ring.Add(hashB, pkcs8(t, privB))

	signers, err := ring.Signers()
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.True(t, privA.Equal(signers[0]))

	pubs, err := ring.PublicKeys()
	require.NoError(t, err)
	assert.True(t, privB.PublicKey.Equal(pubs[hashB]))
}
