package service

import (
	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/store"
)

type Services struct {
	ItemService     ItemService
	SessionProvider SessionProvider
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		ItemService:     NewItemService(storages.Items, logger),
		SessionProvider: NewJWTSessionProvider(cfg.Auth, logger),
	}
}
