package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapper(t *testing.T) {
	priv, _ := testKeys(t)
	oldLegacy := tokenHash(t, "legacy", crypto.SHA256)
	newLegacy := tokenHash(t, "legacy", crypto.SHA512)
	h1 := tokenHash(t, "secret-1", crypto.SHA512)
	hFresh := tokenHash(t, "brand-new", crypto.SHA512)
	hCert := keyHash(t, priv, crypto.SHA512)

	v := newTestVault([]string{crypto.SHA512}, map[string]map[string]models.ActionSet{
		"C": {
			oldLegacy: models.NewActionSet(models.ActionView, models.ActionManage),
			h1:        models.NewActionSet(models.ActionView),
			hCert:     models.NewActionSet(models.ActionManage),
		},
	})
	v.Tokens[oldLegacy] = models.SecretEntry{Data: []byte("legacy"), Note: "old"}
	v.Tokens[h1] = models.SecretEntry{Data: []byte("secret-1")}
	v.Certificates[hCert] = models.SecretEntry{Data: pkcs8(t, priv), Note: "signing"}

	node := models.Node{
		ID: "C",
		AvailableActions: []models.AvailableAction{
			{KeyHash: newLegacy, Types: []string{"view"}},
			{KeyHash: h1, Types: []string{"view"}},
			{KeyHash: hFresh, Types: []string{"update"}},
			{KeyHash: hCert, Types: []string{"other"}},
		},
	}

	svc := NewActionMapperService(crypto.SHA256, 2, logger.Nop())
	mapper, err := svc.BuildMapper(context.Background(), MapperInput{
		Node:        node,
		Vault:       v,
		Scope:       models.Scope{Kind: models.ScopeCluster, ID: "C"},
		FreshTokens: [][]byte{[]byte("secret-1"), []byte("brand-new")},
	})
	require.NoError(t, err)
	require.Len(t, mapper, 4)

	assert.Equal(t, models.ActionEntry{
		NewHash:        newLegacy,
		OldHash:        oldLegacy,
		Note:           "old",
		Secret:         []byte("legacy"),
		Configured:     models.NewActionSet(models.ActionView, models.ActionManage),
		ServerReported: models.NewActionSet(models.ActionView),
	}, mapper[newLegacy])

	assert.Equal(t, h1, mapper[h1].OldHash)

	fresh := mapper[hFresh]
	assert.Empty(t, fresh.OldHash)
	assert.Equal(t, []byte("brand-new"), fresh.Secret)
	assert.Equal(t, models.NewActionSet(models.ActionUpdate), fresh.Configured)
	assert.Equal(t, fresh.Configured, fresh.ServerReported)

	cert := mapper[hCert]
	assert.True(t, cert.Locked)
	assert.Equal(t, "signing", cert.Note)
	assert.True(t, cert.ServerReported.Has(models.ActionCatchall))
}

func TestBuildMapper_ServerReportedFallsBackToOldHash(t *testing.T) {
	oldHash := tokenHash(t, "legacy", crypto.SHA256)
	newHash := tokenHash(t, "legacy", crypto.SHA512)
	v := newTestVault([]string{crypto.SHA512}, map[string]map[string]models.ActionSet{
		"C": {oldHash: models.NewActionSet(models.ActionView)},
	})
	v.Tokens[oldHash] = models.SecretEntry{Data: []byte("legacy")}
	node := models.Node{AvailableActions: []models.AvailableAction{
		{KeyHash: oldHash, Types: []string{"view", "update"}},
	}}

	mapper, err := NewActionMapperService(crypto.SHA512, 0, logger.Nop()).BuildMapper(context.Background(), MapperInput{
		Node:  node,
		Vault: v,
		Scope: models.Scope{Kind: models.ScopeCluster, ID: "C"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.NewActionSet(models.ActionView, models.ActionUpdate), mapper[newHash].ServerReported)
}

func TestBuildMapper_ServerReportedPresence(t *testing.T) {
	h := tokenHash(t, "secret", crypto.SHA512)

	tests := []struct {
		name      string
		available []models.AvailableAction
		want      models.ActionSet
	}{
		{
			name: "not reported",
			want: nil,
		},
		{
			name:      "reported without actions",
			available: []models.AvailableAction{{KeyHash: h}},
			want:      models.NewActionSet(),
		},
		{
			name:      "reported with actions",
			available: []models.AvailableAction{{KeyHash: h, Types: []string{"view"}}},
			want:      models.NewActionSet(models.ActionView),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVault([]string{crypto.SHA512}, map[string]map[string]models.ActionSet{
				"C": {h: models.NewActionSet(models.ActionView)},
			})
			v.Tokens[h] = models.SecretEntry{Data: []byte("secret")}

			mapper, err := NewActionMapperService(crypto.SHA512, 0, logger.Nop()).BuildMapper(context.Background(), MapperInput{
				Node:  models.Node{ID: "C", AvailableActions: tt.available},
				Vault: v,
				Scope: models.Scope{Kind: models.ScopeCluster, ID: "C"},
			})
			require.NoError(t, err)
			require.Contains(t, mapper, h)

			if tt.want == nil {
				assert.Nil(t, mapper[h].ServerReported)
				return
			}
			require.NotNil(t, mapper[h].ServerReported)
			assert.Equal(t, tt.want, mapper[h].ServerReported)
		})
	}
}

func TestBuildMapper_KnownHashesOverride(t *testing.T) {
	v := newTestVault(nil, nil)
	known := tokenHash(t, "seen", crypto.SHA512)

	mapper, err := NewActionMapperService(crypto.SHA512, 0, logger.Nop()).BuildMapper(context.Background(), MapperInput{
		Vault:       v,
		Scope:       models.Scope{Kind: models.ScopeContent, ID: "X"},
		KnownHashes: models.IDSet(known),
		FreshTokens: [][]byte{[]byte("seen"), []byte("unseen")},
	})
	require.NoError(t, err)

	require.Len(t, mapper, 1)
	assert.Contains(t, mapper, tokenHash(t, "unseen", crypto.SHA512))
}

func TestBuildMapper_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewActionMapperService(crypto.SHA512, 0, logger.Nop()).BuildMapper(context.Background(), MapperInput{
		Vault:         newTestVault(nil, nil),
		HashAlgorithm: "md5",
	})
	assert.ErrorIs(t, err, crypto.ErrUnsupportedAlgorithm)
}
