// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-graph-vault/internal/logger"
	"github.com/MKhiriev/go-graph-vault/internal/vault"
	"github.com/MKhiriev/go-graph-vault/models"
)

type authResolver struct {
	defaultAlgorithm string
	logger           *logger.Logger
}

// NewAuthResolver constructs an AuthResolver. defaultAlgorithm is used for
// certificate checks on hosts that advertise no hash algorithm.
func NewAuthResolver(defaultAlgorithm string, logger *logger.Logger) AuthResolver {
	return &authResolver{
		defaultAlgorithm: defaultAlgorithm,
		logger:           logger,
	}
}

func (a *authResolver) ResolveAuth(ctx context.Context, v models.Vault, scopeURL string, req models.AuthRequest) (models.AuthInfo, error) {
	hostKey, host, ok, err := vault.Host(v, scopeURL)
	if err != nil {
		return models.AuthInfo{}, fmt.Errorf("error resolving host: %w", err)
	}
	if !ok {
		return models.AuthInfo{}, fmt.Errorf("%w: unknown host %s", ErrPermissionInsufficient, hostKey)
	}

	tokens := make(map[string]struct{})
	hashes := make(map[string]struct{})
	types := make(models.ActionSet)
	for _, sh := range vault.ScanHost(host, req) {
		if err := ctx.Err(); err != nil {
			return models.AuthInfo{}, err
		}
		if !sh.Actions.Intersects(req.Required) {
			continue
		}
		secret, ok := v.Tokens[sh.Hash]
		if !ok {
			continue
		}
		tokens[sh.Scope.ID+":"+base64.StdEncoding.EncodeToString(secret.Data)] = struct{}{}
		hashes[sh.Hash] = struct{}{}
		types = types.Union(sh.Actions)
	}

	if len(tokens) == 0 {
		a.logger.Debug().
			Str("host", hostKey).
			Strs("required", actionNames(req.Required)).
			Msg("no token satisfies the request")
		return models.AuthInfo{}, fmt.Errorf("%w: %v on %s", ErrPermissionInsufficient, req.Required.Sorted(), hostKey)
	}

	info := models.AuthInfo{
		Tokens: slices.Sorted(maps.Keys(tokens)),
		Hashes: slices.Sorted(maps.Keys(hashes)),
		Types:  types,
	}
	a.logger.Debug().
		Str("host", hostKey).
		Strs("hashes", info.Hashes).
		Int("tokens", len(info.Tokens)).
		Msg("resolved auth")
	return info, nil
}

func (a *authResolver) ResolvePrivateKeys(ctx context.Context, v models.Vault, scopeURL string, req models.AuthRequest) (*KeyRing, error) {
	hostKey, host, ok, err := vault.Host(v, scopeURL)
	if err != nil {
		return nil, fmt.Errorf("error resolving host: %w", err)
	}

	algorithms := host.HashAlgorithms
	if len(algorithms) == 0 {
		algorithms = []string{a.defaultAlgorithm}
	}
	ring := NewKeyRing(algorithms...)
	if !ok {
		return ring, nil
	}

	for _, sh := range vault.ScanHost(host, req) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(req.Required) > 0 && !sh.Actions.Intersects(req.Required) {
			continue
		}
		cert, ok := v.Certificates[sh.Hash]
		if !ok {
			continue
		}
		ring.Add(sh.Hash, cert.Data)
	}

	a.logger.Debug().
		Str("host", hostKey).
		Int("certificates", ring.Len()).
		Msg("resolved private keys")
	return ring, nil
}

func actionNames(set models.ActionSet) []string {
	out := make([]string, 0, len(set))
	for _, a := range set.Sorted() {
		out = append(out, string(a))
	}
	return out
}
