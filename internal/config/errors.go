package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, a port outside the 1–65535 range).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown runtime environment name).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRateLimitConfigs indicates invalid rate limiting settings
	// (for example, a non-positive window or request budget).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an unknown driver or a missing DSN for postgres).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidHealthConfigs indicates invalid health-check settings
	// (for example, an empty or non-absolute health path).
	ErrInvalidHealthConfigs = errors.New("invalid health check configuration")
)
