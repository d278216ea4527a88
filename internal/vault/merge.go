// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"maps"
	"slices"

	"github.com/MKhiriev/go-graph-vault/models"
)

// New returns an empty vault bound to baseURL.
func New(baseURL string) models.Vault {
	return models.Vault{
		BaseURL:      baseURL,
		Certificates: map[string]models.SecretEntry{},
		Tokens:       map[string]models.SecretEntry{},
		Hosts:        map[string]models.HostEntry{},
	}
}

// Clone returns a deep copy of v.
func Clone(v models.Vault) models.Vault {
	out := models.Vault{
		BaseURL:       v.BaseURL,
		ConfigCluster: v.ConfigCluster,
		ConfigHashes:  slices.Clone(v.ConfigHashes),
		Certificates:  cloneSecrets(v.Certificates),
		Tokens:        cloneSecrets(v.Tokens),
		Hosts:         make(map[string]models.HostEntry, len(v.Hosts)),
	}
	for key, host := range v.Hosts {
		out.Hosts[key] = cloneHost(host)
	}
	return out
}

func cloneSecrets(in map[string]models.SecretEntry) map[string]models.SecretEntry {
	out := make(map[string]models.SecretEntry, len(in))
	for hash, entry := range in {
		out[hash] = models.SecretEntry{Data: slices.Clone(entry.Data), Note: entry.Note}
	}
	return out
}

func cloneHost(h models.HostEntry) models.HostEntry {
	return models.HostEntry{
		HashAlgorithms: slices.Clone(h.HashAlgorithms),
		Clusters:       cloneScopes(h.Clusters),
		Contents:       cloneScopes(h.Contents),
	}
}

func cloneScopes(in map[string]models.ScopeGrants) map[string]models.ScopeGrants {
	out := make(map[string]models.ScopeGrants, len(in))
	for id, scope := range in {
		hashes := make(map[string]models.ActionSet, len(scope.Hashes))
		for hash, set := range scope.Hashes {
			hashes[hash] = set.Clone()
		}
		out[id] = models.ScopeGrants{Hashes: hashes}
	}
	return out
}

// Merge applies patch to old and returns the new vault. old is not
// modified. Nil values in the patch delete the matching entries; scopes
// left without hashes and hosts left without scopes are dropped.
func Merge(old models.Vault, patch models.VaultPatch) models.Vault {
	out := Clone(old)

	if patch.BaseURL != nil {
		out.BaseURL = *patch.BaseURL
	}
	if patch.ConfigCluster != nil {
		out.ConfigCluster = *patch.ConfigCluster
	}
	if patch.ConfigHashes != nil {
		out.ConfigHashes = slices.Clone(patch.ConfigHashes)
	}
	mergeSecrets(out.Certificates, patch.Certificates)
	mergeSecrets(out.Tokens, patch.Tokens)

	for key, hp := range patch.Hosts {
		if hp == nil {
			delete(out.Hosts, key)
			continue
		}
		host, ok := out.Hosts[key]
		if !ok {
			host = models.HostEntry{
				Clusters: map[string]models.ScopeGrants{},
				Contents: map[string]models.ScopeGrants{},
			}
		}
		if hp.HashAlgorithms != nil {
			host.HashAlgorithms = slices.Clone(hp.HashAlgorithms)
		}
		host.Clusters = mergeScopes(host.Clusters, hp.Clusters)
		host.Contents = mergeScopes(host.Contents, hp.Contents)
		out.Hosts[key] = host
	}
	return out
}

func mergeSecrets(dst map[string]models.SecretEntry, patch map[string]*models.SecretEntry) {
	for hash, entry := range patch {
		if entry == nil {
			delete(dst, hash)
			continue
		}
		dst[hash] = models.SecretEntry{Data: slices.Clone(entry.Data), Note: entry.Note}
	}
}

func mergeScopes(dst map[string]models.ScopeGrants, patch map[string]*models.ScopePatch) map[string]models.ScopeGrants {
	if dst == nil {
		dst = make(map[string]models.ScopeGrants, len(patch))
	}
	for id, sp := range patch {
		if sp == nil {
			delete(dst, id)
			continue
		}
		scope := dst[id]
		hashes := maps.Clone(scope.Hashes)
		if hashes == nil {
			hashes = make(map[string]models.ActionSet, len(sp.Hashes))
		}
		for hash, set := range sp.Hashes {
			if set == nil {
				delete(hashes, hash)
				continue
			}
			hashes[hash] = set.Clone()
		}
		if len(hashes) == 0 {
			delete(dst, id)
			continue
		}
		dst[id] = models.ScopeGrants{Hashes: hashes}
	}
	return dst
}

// PruneSecrets returns a patch that deletes every token and certificate no
// scope of any host references any more. Config hashes are always kept.
func PruneSecrets(v models.Vault) models.VaultPatch {
	referenced := make(map[string]struct{})
	for _, h := range v.ConfigHashes {
		referenced[h] = struct{}{}
	}
	for _, host := range v.Hosts {
		for _, scopes := range []map[string]models.ScopeGrants{host.Clusters, host.Contents} {
			for _, scope := range scopes {
				for hash := range scope.Hashes {
					referenced[hash] = struct{}{}
				}
			}
		}
	}

	var patch models.VaultPatch
	for hash := range v.Tokens {
		if _, ok := referenced[hash]; !ok {
			if patch.Tokens == nil {
				patch.Tokens = map[string]*models.SecretEntry{}
			}
			patch.Tokens[hash] = nil
		}
	}
	for hash := range v.Certificates {
		if _, ok := referenced[hash]; !ok {
			if patch.Certificates == nil {
				patch.Certificates = map[string]*models.SecretEntry{}
			}
			patch.Certificates[hash] = nil
		}
	}
	return patch
}
