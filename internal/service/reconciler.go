// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/internal/workers"
	"github.com/MKhiriev/go-graph-vault/models"
)

// ReconcileOptions places the reconciled entries in the vault.
type ReconcileOptions struct {
	// HashAlgorithm is the algorithm new hashes are computed under. Empty
	// means the reconciler default. It must be the host's preferred
	// algorithm (the one BuildMapper used) and is required with HostKey.
	HashAlgorithm string
	// HostKey is the normalized host (see vault.HostKey). When empty the
	// patch carries secrets only.
	HostKey string
	Scope   models.Scope
}

type reconciler struct {
	defaultAlgorithm string
	protected        models.ActionSet
	limit            int
	logger           *logger.Logger
}

// NewReconciler constructs a Reconciler. protected lists the actions the
// server never reports by name; they survive reconciliation only while the
// server still reports the catch-all action for a hash.
func NewReconciler(defaultAlgorithm string, protected []string, limit int, logger *logger.Logger) Reconciler {
	set := make(models.ActionSet, len(protected))
	for _, name := range protected {
		set.Add(models.ParseAction(name))
	}
	return &reconciler{
		defaultAlgorithm: defaultAlgorithm,
		protected:        set,
		limit:            limit,
		logger:           logger,
	}
}

func (r *reconciler) Reconcile(ctx context.Context, entries []models.ActionEntry, mapper models.ActionMapper, opts ReconcileOptions) (models.ReconcileResult, error) {
	alg, err := pickAlgorithm(opts.HashAlgorithm, models.HostEntry{}, r.defaultAlgorithm)
	if err != nil {
		return models.ReconcileResult{}, err
	}

	hashes, err := workers.Map(ctx, r.limit, entries, func(_ context.Context, e models.ActionEntry) (string, error) {
		if e.Delete {
			return "", nil
		}
		return entryHash(alg, e.Secret, e.Locked)
	})
	if err != nil {
		return models.ReconcileResult{}, fmt.Errorf("error hashing entries: %w", err)
	}

	res := models.ReconcileResult{HashMap: make(map[string]models.ActionSet, len(entries))}
	secrets := func(locked bool) map[string]*models.SecretEntry {
		if locked {
			if res.Patch.Certificates == nil {
				res.Patch.Certificates = make(map[string]*models.SecretEntry)
			}
			return res.Patch.Certificates
		}
		if res.Patch.Tokens == nil {
			res.Patch.Tokens = make(map[string]*models.SecretEntry)
		}
		return res.Patch.Tokens
	}

	for i, e := range entries {
		if e.Delete {
			if e.OldHash == "" {
				return models.ReconcileResult{}, fmt.Errorf("%w: delete of %q without old hash", ErrInvalidEntry, e.NewHash)
			}
			res.Actions = append(res.Actions, models.ServerAction{
				Op:           models.ServerActionDelete,
				ExistingHash: e.OldHash,
			})
			secrets(e.Locked)[e.OldHash] = nil
			res.HashMap[e.OldHash] = nil
			continue
		}

		newHash := hashes[i]
		if e.NewHash != "" && e.NewHash != newHash {
			return models.ReconcileResult{}, fmt.Errorf("%w: entry %s hashes to %s", ErrIntegrityMismatch, e.NewHash, newHash)
		}

		if e.OldHash != "" && e.ServerReported == nil {
			// the server no longer reports the hash: drop it without
			// sending anything
			res.HashMap[e.OldHash] = nil
			secrets(e.Locked)[e.OldHash] = nil
			continue
		}

		migrated := e.OldHash != "" && e.OldHash != newHash
		if migrated {
			res.HashMap[e.OldHash] = nil
			secrets(e.Locked)[e.OldHash] = nil
		}

		if e.OldHash == "" && e.Update && !e.Locked {
			// pending grant: the server learns about the hash through the
			// actions sent alongside this patch. Certificates send no
			// actions, so they only keep what the server reports.
			res.HashMap[newHash] = withCatchall(e.Configured.Concrete())
		} else {
			res.HashMap[newHash] = r.recompute(e)
		}

		prev, known := mapper[newHash]
		if migrated || e.OldHash == "" || !known || prev.Note != e.Note {
			secrets(e.Locked)[newHash] = &models.SecretEntry{Data: slices.Clone(e.Secret), Note: e.Note}
		}

		if e.Update && !e.Locked {
			res.Actions = append(res.Actions, serverActions(e)...)
		}
	}

	if opts.HostKey != "" && len(res.HashMap) > 0 {
		res.Patch.Hosts = map[string]*models.HostPatch{
			opts.HostKey: vault.ScopePatch(opts.Scope, res.HashMap),
		}
	}

	r.logger.Debug().
		Str("scope", opts.Scope.ID).
		Str("algorithm", alg.Name).
		Int("entries", len(entries)).
		Int("actions", len(res.Actions)).
		Msg("reconciled action mapper")
	return res, nil
}

// recompute keeps a configured action only while the server backs it: an
// unprotected action must be reported by name, a protected one needs the
// catch-all. An empty result becomes the catch-all marker.
func (r *reconciler) recompute(e models.ActionEntry) models.ActionSet {
	out := make(models.ActionSet, len(e.Configured))
	for a := range e.Configured {
		if a.IsCatchall() {
			continue
		}
		if r.protected.Has(a) {
			if e.ServerReported.Has(models.ActionCatchall) {
				out.Add(a)
			}
			continue
		}
		if e.ServerReported.Has(a) {
			out.Add(a)
		}
	}
	return withCatchall(out)
}

func withCatchall(set models.ActionSet) models.ActionSet {
	if len(set) == 0 {
		return models.NewActionSet(models.ActionCatchall)
	}
	return set
}

func serverActions(e models.ActionEntry) []models.ServerAction {
	op := models.ServerActionAdd
	if e.OldHash != "" {
		op = models.ServerActionUpdate
	}
	token := base64.StdEncoding.EncodeToString(e.Secret)

	concrete := e.Configured.Concrete().Sorted()
	out := make([]models.ServerAction, 0, len(concrete))
	for _, a := range concrete {
		out = append(out, models.ServerAction{
			Op:           op,
			ExistingHash: e.OldHash,
			Token:        token,
			Action:       a,
		})
	}
	return out
}
