// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/internal/workers"
	"github.com/MKhiriev/go-graph-vault/models"
)

// MapperInput is everything BuildMapper looks at for one scope.
type MapperInput struct {
	// Node is the server record of the scope; its available actions are
	// the only trusted permission source.
	Node     models.Node
	Vault    models.Vault
	ScopeURL string
	Scope    models.Scope

	// KnownHashes are hashes whose tokens are not new. Nil means the
	// hashes already configured for Scope.
	KnownHashes map[string]struct{}

	// FreshTokens are secrets the user just presented.
	FreshTokens [][]byte

	// HashAlgorithm overrides the host's preferred algorithm.
	HashAlgorithm string
}

type actionMapperService struct {
	defaultAlgorithm string
	limit            int
	logger           *logger.Logger
}

// NewActionMapperService constructs an ActionMapperService. limit bounds
// the number of secrets hashed concurrently.
func NewActionMapperService(defaultAlgorithm string, limit int, logger *logger.Logger) ActionMapperService {
	return &actionMapperService{
		defaultAlgorithm: defaultAlgorithm,
		limit:            limit,
		logger:           logger,
	}
}

type configuredSecret struct {
	oldHash string
	entry   models.SecretEntry
	locked  bool
}

func (s *actionMapperService) BuildMapper(ctx context.Context, in MapperInput) (models.ActionMapper, error) {
	_, host, _, err := vault.Host(in.Vault, in.ScopeURL)
	if err != nil {
		return nil, fmt.Errorf("error resolving host: %w", err)
	}
	alg, err := pickAlgorithm(in.HashAlgorithm, host, s.defaultAlgorithm)
	if err != nil {
		return nil, err
	}

	configured := vault.ScopeHashes(host, in.Scope)
	known := in.KnownHashes
	if known == nil {
		known = make(map[string]struct{}, len(configured))
		for hash := range configured {
			known[hash] = struct{}{}
		}
	}
	reported := in.Node.ServerReported()

	freshHashes, err := workers.Map(ctx, s.limit, in.FreshTokens, func(_ context.Context, token []byte) (string, error) {
		return alg.HashToken(token), nil
	})
	if err != nil {
		return nil, fmt.Errorf("error hashing fresh tokens: %w", err)
	}

	mapper := make(models.ActionMapper, len(freshHashes)+len(configured))
	for i, hash := range freshHashes {
		if _, ok := known[hash]; ok {
			continue
		}
		mapper[hash] = models.ActionEntry{
			NewHash:        hash,
			Secret:         slices.Clone(in.FreshTokens[i]),
			Configured:     reported[hash].Clone(),
			ServerReported: reported[hash].Clone(),
		}
	}

	secrets := make([]configuredSecret, 0, len(configured))
	for _, hash := range slices.Sorted(maps.Keys(configured)) {
		if entry, ok := in.Vault.Tokens[hash]; ok {
			secrets = append(secrets, configuredSecret{oldHash: hash, entry: entry})
		} else if entry, ok := in.Vault.Certificates[hash]; ok {
			secrets = append(secrets, configuredSecret{oldHash: hash, entry: entry, locked: true})
		}
	}

	newHashes, err := workers.Map(ctx, s.limit, secrets, func(_ context.Context, cs configuredSecret) (string, error) {
		return entryHash(alg, cs.entry.Data, cs.locked)
	})
	if err != nil {
		return nil, fmt.Errorf("error rehashing configured secrets: %w", err)
	}

	for i, cs := range secrets {
		newHash := newHashes[i]
		if prev, ok := mapper[newHash]; ok && prev.OldHash == newHash {
			// the secret is already stored under its current hash
			continue
		}
		// stays nil when the server reports neither hash
		serverReported, ok := reported[newHash]
		if !ok {
			serverReported = reported[cs.oldHash]
		}
		mapper[newHash] = models.ActionEntry{
			NewHash:        newHash,
			OldHash:        cs.oldHash,
			Note:           cs.entry.Note,
			Secret:         slices.Clone(cs.entry.Data),
			Configured:     configured[cs.oldHash].Clone(),
			ServerReported: serverReported.Clone(),
			Locked:         cs.locked,
		}
	}

	s.logger.Debug().
		Str("scope", in.Scope.ID).
		Str("algorithm", alg.Name).
		Int("fresh", len(in.FreshTokens)).
		Int("entries", len(mapper)).
		Msg("built action mapper")
	return mapper, nil
}
