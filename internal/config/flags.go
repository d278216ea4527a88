package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers all configuration flags on fs and returns the config
// they are parsed into. The returned value is only meaningful after fs has
// been parsed; cobra does that before running a command.
//
// Flags:
//
//	--hash-algorithm digest used when a host advertises none
//	--iterations PBKDF2 iteration count for password prekeys
//	--workers concurrency limit for hashing and key derivation
//	--log-level minimum log level
//	--protected-actions actions the server never reports by name
//	-v/--vault vault file path
//	--base-url default endpoint for a new vault
//	-c/--config json file path with configs
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVar(&cfg.App.HashAlgorithm, "hash-algorithm", "", "Hash algorithm (sha256, sha384, sha512, blake3)")
	fs.IntVar(&cfg.App.Iterations, "iterations", 0, "PBKDF2 iterations for password prekeys")
	fs.IntVar(&cfg.App.Workers, "workers", 0, "Concurrency limit for hashing and key derivation")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringSliceVar(&cfg.Policy.ProtectedActions, "protected-actions", nil, "Actions the server never reports by name")
	fs.StringVarP(&cfg.Vault.Path, "vault", "v", "", "Vault file path")
	fs.StringVar(&cfg.Vault.BaseURL, "base-url", "", "Default endpoint for a new vault")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}
