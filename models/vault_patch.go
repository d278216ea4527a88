package models

// VaultPatch describes a change to a [Vault]. It has the shape of the vault
// with nil values meaning deletion:
//   - Tokens[h] == nil or Certificates[h] == nil removes the secret;
//   - Hosts[host] == nil removes the host;
//   - Clusters[id] == nil or Contents[id] == nil removes the scope;
//   - Hashes[h] == nil removes the hash from the scope.
//
// Fields left nil in the patch itself are untouched by the merge.
type VaultPatch struct {
	BaseURL       *string                 `json:"baseUrl,omitempty"`
	ConfigCluster *string                 `json:"configCluster,omitempty"`
	ConfigHashes  []string                `json:"configHashes,omitempty"`
	Certificates  map[string]*SecretEntry `json:"certificates,omitempty"`
	Tokens        map[string]*SecretEntry `json:"tokens,omitempty"`
	Hosts         map[string]*HostPatch   `json:"hosts,omitempty"`
}

// HostPatch is the per-host part of a [VaultPatch].
type HostPatch struct {
	// HashAlgorithms replaces the advertised list when non-nil.
	HashAlgorithms []string               `json:"hashAlgorithms,omitempty"`
	Clusters       map[string]*ScopePatch `json:"clusters,omitempty"`
	Contents       map[string]*ScopePatch `json:"contents,omitempty"`
}

// ScopePatch updates the hash map of one cluster or content.
type ScopePatch struct {
	Hashes map[string]ActionSet `json:"hashes"`
}

// IsEmpty reports whether applying p would change nothing.
func (p VaultPatch) IsEmpty() bool {
	return p.BaseURL == nil &&
		p.ConfigCluster == nil &&
		p.ConfigHashes == nil &&
		len(p.Certificates) == 0 &&
		len(p.Tokens) == 0 &&
		len(p.Hosts) == 0
}
