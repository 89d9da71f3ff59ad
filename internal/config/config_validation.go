// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A validation failure here must abort startup with a non-zero exit status
// before the server binds any port.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d is outside 1-65535", ErrInvalidServerConfigs, cfg.Server.Port)
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidServerConfigs)
	}

	switch cfg.App.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Env)
	}

	if cfg.RateLimit.WindowMS <= 0 {
		return fmt.Errorf("%w: window must be positive", ErrInvalidRateLimitConfigs)
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("%w: max requests must be positive", ErrInvalidRateLimitConfigs)
	}

	if !strings.HasPrefix(cfg.Health.Path, "/") {
		return fmt.Errorf("%w: path %q must start with '/'", ErrInvalidHealthConfigs, cfg.Health.Path)
	}

	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverRedis:
		if cfg.Storage.RedisAddr == "" {
			return fmt.Errorf("%w: redis driver requires STORAGE_REDIS_ADDR", ErrInvalidStorageConfigs)
		}
	case DriverPostgres:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("%w: postgres driver requires STORAGE_DATABASE_URI", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	return nil
}
