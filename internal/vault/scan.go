package vault

import (
	"maps"
	"slices"

	"github.com/MKhiriev/go-graph-vault/models"
)

// ScopedHash is one hash found while scanning a host.
type ScopedHash struct {
	Scope   models.Scope
	Hash    string
	Actions models.ActionSet
}

// ScanHost walks the cluster and content hash maps of host that req
// includes and does not exclude. Results are ordered by scope kind, id and
// hash so callers produce deterministic output.
func ScanHost(host models.HostEntry, req models.AuthRequest) []ScopedHash {
	var out []ScopedHash
	out = appendScoped(out, models.ScopeCluster, host.Clusters, req.Clusters, req.ExcludeClusters)
	out = appendScoped(out, models.ScopeContent, host.Contents, req.Contents, req.ExcludeContents)
	return out
}

func appendScoped(out []ScopedHash, kind models.ScopeKind, scopes map[string]models.ScopeGrants, include, exclude map[string]struct{}) []ScopedHash {
	for _, id := range slices.Sorted(maps.Keys(scopes)) {
		if include != nil {
			if _, ok := include[id]; !ok {
				continue
			}
		}
		if _, ok := exclude[id]; ok {
			continue
		}
		hashes := scopes[id].Hashes
		for _, hash := range slices.Sorted(maps.Keys(hashes)) {
			out = append(out, ScopedHash{
				Scope:   models.Scope{Kind: kind, ID: id},
				Hash:    hash,
				Actions: hashes[hash],
			})
		}
	}
	return out
}

// ScopeHashes returns the hash map of a single scope, nil when absent.
func ScopeHashes(host models.HostEntry, scope models.Scope) map[string]models.ActionSet {
	switch scope.Kind {
	case models.ScopeCluster:
		return host.Clusters[scope.ID].Hashes
	case models.ScopeContent:
		return host.Contents[scope.ID].Hashes
	default:
		return nil
	}
}

// ScopePatch builds a host patch that replaces the given hashes of one
// scope. Nil sets in hashes delete the hash.
func ScopePatch(scope models.Scope, hashes map[string]models.ActionSet) *models.HostPatch {
	sp := &models.ScopePatch{Hashes: hashes}
	hp := &models.HostPatch{}
	switch scope.Kind {
	case models.ScopeCluster:
		hp.Clusters = map[string]*models.ScopePatch{scope.ID: sp}
	case models.ScopeContent:
		hp.Contents = map[string]*models.ScopePatch{scope.ID: sp}
	}
	return hp
}
