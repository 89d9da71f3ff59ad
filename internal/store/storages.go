package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/migrations"
)

// Storages bundles the repositories used by the service layer.
type Storages struct {
	Items ItemRepository
}

// NewStorages constructs the repository set selected by cfg.Driver.
// The postgres driver connects, runs the embedded goose migrations and only
// then hands the repository out.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Storages{Items: NewMemoryRepository(log)}, nil

	case config.DriverRedis:
		items, err := NewRedisRepository(ctx, cfg.RedisAddr, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Items: items}, nil

	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err := migrations.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Storages{Items: NewPostgresRepository(db, log)}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases the resources held by every repository.
func (s *Storages) Close() error {
	return s.Items.Close()
}
