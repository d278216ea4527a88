// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level configuration container for
// go-graph-vault. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the cryptographic defaults and fan-out settings.
	App App `envPrefix:"APP_"`

	// Policy holds the permission policy applied during reconciliation.
	Policy Policy `envPrefix:"POLICY_"`

	// Vault locates the local vault file.
	Vault Vault `envPrefix:"VAULT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control hashing,
// key derivation and concurrency.
type App struct {
	// HashAlgorithm is the digest used when a host advertises none
	// (e.g. "sha512", "SHA-256", "blake3").
	// Env: APP_HASH_ALGORITHM
	HashAlgorithm string `env:"HASH_ALGORITHM"`

	// Iterations is the PBKDF2 iteration count for password prekeys.
	// Env: APP_PBKDF2_ITERATIONS
	Iterations int `env:"PBKDF2_ITERATIONS"`

	// Workers bounds the number of concurrent hashing and key derivation
	// tasks. Zero means GOMAXPROCS.
	// Env: APP_WORKERS
	Workers int `env:"WORKERS"`

	// LogLevel is the minimum zerolog level that is emitted.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Policy holds the permission policy.
type Policy struct {
	// ProtectedActions are the actions the server never reports by name.
	// A configured protected action survives reconciliation only while the
	// server still reports the catch-all action for the hash.
	// Env: POLICY_PROTECTED_ACTIONS (comma separated)
	ProtectedActions []string `env:"PROTECTED_ACTIONS" envSeparator:","`
}

// Vault locates the vault file and its default endpoint.
type Vault struct {
	// Path is the vault JSON file.
	// Env: VAULT_PATH
	Path string `env:"PATH"`

	// BaseURL is used when a new vault is created.
	// Env: VAULT_BASE_URL
	BaseURL string `env:"BASE_URL"`
}

// Defaults applied by [StructuredConfig.applyDefaults].
const (
	DefaultHashAlgorithm = "sha512"
	DefaultIterations    = 100000
	DefaultLogLevel      = "info"
	DefaultVaultPath     = "vault.json"
)

// DefaultProtectedActions is the protected action list used when none is
// configured.
var DefaultProtectedActions = []string{"manage", "auth"}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags (flagCfg, may be nil)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flagCfg).
		withJSON().
		build()
}
