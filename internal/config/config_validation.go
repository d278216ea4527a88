// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
)

// applyDefaults fills every setting left empty by all sources.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.HashAlgorithm == "" {
		cfg.App.HashAlgorithm = DefaultHashAlgorithm
	}
	if cfg.App.Iterations == 0 {
		cfg.App.Iterations = DefaultIterations
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if len(cfg.Policy.ProtectedActions) == 0 {
		cfg.Policy.ProtectedActions = append([]string(nil), DefaultProtectedActions...)
	}
	if cfg.Vault.Path == "" {
		cfg.Vault.Path = DefaultVaultPath
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if _, err := crypto.NormalizeHashAlgorithm(cfg.App.HashAlgorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppConfigs, err)
	}
	if cfg.App.Iterations < 1 {
		return fmt.Errorf("%w: pbkdf2 iterations must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidAppConfigs)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppConfigs, err)
	}

	for _, action := range cfg.Policy.ProtectedActions {
		if strings.TrimSpace(action) == "" {
			return fmt.Errorf("%w: empty protected action", ErrInvalidPolicyConfigs)
		}
	}

	return nil
}
