// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Environment names accepted by [App.Env].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Storage driver names accepted by [Storage.Driver].
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StructuredConfig is the top-level configuration container for the
// go-api-starter application. It aggregates all sub-configurations and is
// populated by merging values from environment variables and command-line
// flags.
//
// The config is constructed exactly once at startup, validated, and passed
// by reference to every component that needs it. Nothing mutates it after
// process start.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application identity and runtime environment settings.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server

	// CORS holds cross-origin resource sharing settings.
	CORS CORS `envPrefix:"CORS_"`

	// RateLimit holds the per-client request rate limiting settings.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Log holds structured logging settings.
	Log Log `envPrefix:"LOG_"`

	// Health holds health-check endpoint settings.
	Health Health

	// Storage selects and configures the item repository backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Auth holds settings for the bearer-token session provider.
	Auth Auth `envPrefix:"AUTH_"`
}

// App holds application identity and runtime environment settings.
type App struct {
	// Name is the human-readable application name, used in logs and the
	// generated API documentation.
	// Env: APP_NAME
	Name string `env:"NAME" envDefault:"go-api-starter"`

	// Version is the semantic version string of the running application.
	// Overridden at build time via ldflags in cmd/server.
	// Env: APP_VERSION
	Version string `env:"VERSION" envDefault:"1.0.0"`

	// Env is the runtime environment: "development", "production" or "test".
	// In production, 500-level error messages are redacted from clients.
	// Env: APP_ENV
	Env string `env:"ENV" envDefault:"development"`
}

// Server holds network and timeout settings for the inbound HTTP transport.
type Server struct {
	// Port is the TCP port on which the HTTP server listens.
	// Env: PORT
	Port int `env:"PORT" envDefault:"3000"`

	// TrustProxy enables client-IP resolution from X-Forwarded-For /
	// X-Real-IP headers. Enable only behind a trusted load balancer.
	// Env: TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// SecurityHeaders toggles the hardening response headers
	// (X-Content-Type-Options, X-Frame-Options, etc.).
	// Env: HELMET_ENABLED
	SecurityHeaders bool `env:"HELMET_ENABLED" envDefault:"true"`

	// ReadTimeout bounds reading of the request, including the body.
	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`

	// WriteTimeout bounds writing of the response.
	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// IdleTimeout bounds how long idle keep-alive connections are held.
	// Env: SERVER_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`

	// ShutdownTimeout is the grace period given to in-flight requests
	// during graceful shutdown before the process exits anyway.
	// Env: SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// CORS holds cross-origin resource sharing settings.
type CORS struct {
	// Origin is the allowed origin, or a comma-separated list of origins.
	// "*" allows any origin.
	// Env: CORS_ORIGIN
	Origin string `env:"ORIGIN" envDefault:"*"`

	// Credentials controls the Access-Control-Allow-Credentials header.
	// Env: CORS_CREDENTIALS
	Credentials bool `env:"CREDENTIALS" envDefault:"true"`
}

// RateLimit holds per-client request rate limiting settings.
type RateLimit struct {
	// WindowMS is the length of the rate-limiting window in milliseconds.
	// Env: RATE_LIMIT_WINDOW_MS
	WindowMS int64 `env:"WINDOW_MS" envDefault:"900000"`

	// MaxRequests is the number of requests allowed per client within one
	// window.
	// Env: RATE_LIMIT_MAX_REQUESTS
	MaxRequests int `env:"MAX_REQUESTS" envDefault:"100"`

	// SkipSuccessful excludes successful responses (status below 400) from
	// the budget: their token is refunded once the response is written.
	// Env: RATE_LIMIT_SKIP_SUCCESSFUL
	SkipSuccessful bool `env:"SKIP_SUCCESSFUL" envDefault:"false"`

	// SkipFailed excludes failed responses (status 400 and above) from the
	// budget the same way.
	// Env: RATE_LIMIT_SKIP_FAILED
	SkipFailed bool `env:"SKIP_FAILED" envDefault:"false"`
}

// Window returns the rate-limiting window as a time.Duration.
func (rl RateLimit) Window() time.Duration {
	return time.Duration(rl.WindowMS) * time.Millisecond
}

// Log holds structured logging settings.
type Log struct {
	// Level is the minimum emitted log level
	// ("trace", "debug", "info", "warn", "error", "fatal").
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" envDefault:"info"`

	// Pretty switches output from JSON to a human-readable console format.
	// Env: LOG_PRETTY
	Pretty bool `env:"PRETTY" envDefault:"false"`
}

// Health holds health-check endpoint settings.
type Health struct {
	// Path is the URL prefix under which the health endpoints are mounted.
	// Requests under this prefix are exempt from rate limiting.
	// Env: HEALTH_CHECK_PATH
	Path string `env:"HEALTH_CHECK_PATH" envDefault:"/health"`

	// MetricsEnabled toggles system-metrics collection in the detailed
	// health check and the Prometheus /metrics endpoint.
	// Env: METRICS_ENABLED
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Storage selects and configures the item repository backend.
type Storage struct {
	// Driver is the repository implementation to use:
	// "memory" (default), "redis" or "postgres".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER" envDefault:"memory"`

	// DSN is the PostgreSQL connection string, required when Driver is
	// "postgres".
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// RedisAddr is the host:port of the Redis server, required when Driver
	// is "redis".
	// Env: STORAGE_REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR"`
}

// Auth holds settings for the bearer-token session provider.
type Auth struct {
	// TokenSignKey is the secret key used to verify session JWT signatures.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim expected on every session token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"go-api-starter"`
}

// IsProduction reports whether the application runs in production mode.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Env == EnvProduction
}

// IsDevelopment reports whether the application runs in development mode.
func (cfg *StructuredConfig) IsDevelopment() bool {
	return cfg.App.Env == EnvDevelopment
}

// IsTest reports whether the application runs in test mode.
func (cfg *StructuredConfig) IsTest() bool {
	return cfg.App.Env == EnvTest
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (including envDefault fallbacks)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation. Callers are expected
// to terminate the process on error before binding any port.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		build()
}
