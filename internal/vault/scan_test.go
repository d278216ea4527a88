package vault

import (
	"testing"

	"github.com/MKhiriev/go-graph-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostKey(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		scope   string
		want    string
		wantErr bool
	}{
		{name: "empty scope is base", base: testHost, scope: "", want: testHost},
		{name: "relative path", base: "https://example.com/api/", scope: "graphql", want: "https://example.com/api/graphql"},
		{name: "absolute path", base: testHost, scope: "/other", want: "https://example.com/other"},
		{name: "absolute url wins", base: testHost, scope: "https://b.example.org/graphql", want: "https://b.example.org/graphql"},
		{name: "query and fragment stripped", base: testHost, scope: "?token=1#frag", want: testHost},
		{name: "case folded", base: "HTTPS://Example.COM/graphql", scope: "", want: testHost},
		{name: "trailing slash trimmed", base: "https://example.com/graphql/", scope: "", want: testHost},
		{name: "relative base", base: "/graphql", scope: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HostKey(tt.base, tt.scope)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidHostURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashAlgorithms(t *testing.T) {
	v := sampleVault()

	assert.Equal(t, []string{"sha512"}, HashAlgorithms(v, ""))
	assert.Equal(t, []string{"sha256"}, HashAlgorithms(v, "https://unknown.example.com", "sha256"))
}

func TestScanHost(t *testing.T) {
	host := sampleVault().Hosts[testHost]

	tests := []struct {
		name string
		req  models.AuthRequest
		want []string
	}{
		{
			name: "nil include means every id",
			req:  models.AuthRequest{},
			want: []string{"cluster/cl1/c1", "cluster/cl1/h1", "content/co1/h2"},
		},
		{
			name: "include filters",
			req:  models.AuthRequest{Contents: models.IDSet("co1"), Clusters: models.IDSet()},
			want: []string{"content/co1/h2"},
		},
		{
			name: "exclude wins over include",
			req: models.AuthRequest{
				Clusters:        models.IDSet("cl1"),
				ExcludeClusters: models.IDSet("cl1"),
				ExcludeContents: models.IDSet("co1"),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, sh := range ScanHost(host, tt.req) {
				got = append(got, sh.Scope.Kind.String()+"/"+sh.Scope.ID+"/"+sh.Hash)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScopeHashesAndPatch(t *testing.T) {
	host := sampleVault().Hosts[testHost]
	scope := models.Scope{Kind: models.ScopeContent, ID: "co1"}

	hashes := ScopeHashes(host, scope)
	require.Contains(t, hashes, "h2")
	assert.Nil(t, ScopeHashes(host, models.Scope{ID: "co1"}))

	hp := ScopePatch(scope, map[string]models.ActionSet{"h2": nil})
	require.Contains(t, hp.Contents, "co1")
	assert.Nil(t, hp.Clusters)

	got := Merge(sampleVault(), models.VaultPatch{Hosts: map[string]*models.HostPatch{testHost: hp}})
	assert.NotContains(t, got.Hosts[testHost].Contents, "co1")
}
