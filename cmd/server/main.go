package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/handler/http"
	"github.com/MKhiriev/go-api-starter/internal/health"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/server"
	"github.com/MKhiriev/go-api-starter/internal/service"
	"github.com/MKhiriev/go-api-starter/internal/store"
)

// set at build time via -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		// config must be valid before any port is bound
		logger.NewLogger("api-server", "info", false).Fatal().Err(err).Msg("error getting configs")
	}

	if buildVersion != "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger("api-server", cfg.Log.Level, cfg.Log.Pretty)
	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, cfg, log)

	checker := health.NewChecker(cfg, log)
	probes := map[string]health.Probe{
		"store": health.PingProbe(storages.Items),
	}

	handlers := http.NewHandler(services, cfg, checker, probes, log)

	srv := server.NewServer(cfg.Server, handlers.Init(), log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
