package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown hash algorithm or zero PBKDF2 iterations).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidPolicyConfigs indicates an invalid permission policy.
	ErrInvalidPolicyConfigs = errors.New("invalid policy configuration")
)
