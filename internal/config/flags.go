package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-p server port
//	-e runtime environment (development|production|test)
//	-l log level (trace|debug|info|warn|error|fatal)
//	-d storage driver (memory|redis|postgres)
//	-database-uri postgres connection string
//	-redis-addr redis server address host:port
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-shutdown-timeout graceful shutdown grace period (e.g., "10s")
//
// Flag values take precedence over environment variables; unset flags are
// left at their zero value so the env source can fill them in.
func ParseFlags() *StructuredConfig {
	var port int
	var environment string
	var logLevel string
	var storageDriver string
	var databaseURI string
	var redisAddr string
	var tokenSignKey string
	var tokenIssuer string
	var shutdownTimeout time.Duration

	flag.IntVar(&port, "p", 0, "HTTP server port")
	flag.StringVar(&environment, "e", "", "Runtime environment (development|production|test)")
	flag.StringVar(&logLevel, "l", "", "Log level (trace|debug|info|warn|error|fatal)")
	flag.StringVar(&storageDriver, "d", "", "Storage driver (memory|redis|postgres)")
	flag.StringVar(&databaseURI, "database-uri", "", "PostgreSQL connection string")
	flag.StringVar(&redisAddr, "redis-addr", "", "Redis server address host:port")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown grace period (e.g., 10s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Env: environment,
		},
		Server: Server{
			Port:            port,
			ShutdownTimeout: shutdownTimeout,
		},
		Log: Log{
			Level: logLevel,
		},
		Storage: Storage{
			Driver:    storageDriver,
			DSN:       databaseURI,
			RedisAddr: redisAddr,
		},
		Auth: Auth{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
	}
}
