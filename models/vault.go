// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Vault is the local, JSON-serializable structure mapping secret tokens and
// certificates to the permissions they hold on every known host.
//
// Every key of Tokens, Certificates and ScopeGrants.Hashes is a hash
// identity: base64(digest(secret)) under one of the host's advertised hash
// algorithms. The same secret may be stored under several hashes at once.
//
// A Vault is treated as an immutable snapshot. Changes are expressed as a
// [VaultPatch] and applied with vault.Merge.
type Vault struct {
	// BaseURL is the default GraphQL endpoint that relative scope URLs are
	// resolved against.
	BaseURL string `json:"baseUrl"`

	// ConfigCluster is the cluster holding the encrypted copy of this vault.
	ConfigCluster string `json:"configCluster,omitempty"`

	// ConfigHashes are the hashes granting access to ConfigCluster.
	ConfigHashes []string `json:"configHashes,omitempty"`

	// Certificates holds private key material (PKCS8 DER) keyed by the
	// hash of the corresponding public key.
	Certificates map[string]SecretEntry `json:"certificates"`

	// Tokens holds raw token secrets keyed by their hash.
	Tokens map[string]SecretEntry `json:"tokens"`

	// Hosts maps a normalized endpoint URL to its permission maps.
	Hosts map[string]HostEntry `json:"hosts"`
}

// SecretEntry is a stored secret with a user-facing note.
type SecretEntry struct {
	// Data is the raw secret. Encoded as base64 in JSON.
	Data []byte `json:"data"`
	Note string `json:"note"`
}

// HostEntry describes what the vault knows about one endpoint.
type HostEntry struct {
	// HashAlgorithms lists the digest algorithms the host advertises, the
	// preferred one first.
	HashAlgorithms []string `json:"hashAlgorithms"`

	Clusters map[string]ScopeGrants `json:"clusters"`
	Contents map[string]ScopeGrants `json:"contents"`
}

// ScopeGrants maps hashes to the actions recorded for a cluster or content.
type ScopeGrants struct {
	Hashes map[string]ActionSet `json:"hashes"`
}

// ScopeKind distinguishes cluster and content permission maps.
type ScopeKind int

const (
	ScopeCluster ScopeKind = iota + 1
	ScopeContent
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeCluster:
		return "cluster"
	case ScopeContent:
		return "content"
	default:
		return "unknown"
	}
}

// Scope identifies a single cluster or content on a host.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// AuthInfo is the resolved, ephemeral authorization material for one
// request. It is never persisted.
type AuthInfo struct {
	// Tokens are "{id}:{base64 secret}" values ready for the transport
	// authorization header.
	Tokens []string `json:"tokens"`
	// Hashes are the hashes the tokens were selected for.
	Hashes []string `json:"hashes"`
	// Types is the union of the actions recorded for the selected hashes.
	Types ActionSet `json:"types"`
}

// AuthRequest scopes an authorization lookup. Nil include sets mean "every
// id on the host"; exclude sets always win.
type AuthRequest struct {
	Clusters        map[string]struct{}
	Contents        map[string]struct{}
	ExcludeClusters map[string]struct{}
	ExcludeContents map[string]struct{}
	Required        ActionSet
}

// IDSet is a convenience constructor for the include/exclude sets of an
// [AuthRequest].
func IDSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
