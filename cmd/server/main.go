package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/handler"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/server"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("state-sync-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	buildInfo := newBuildInfo()

	if cfg.App.IssueTokenFor != "" {
		issueToken(cfg, log)
		return
	}

	printBuildInfo(buildInfo)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handlers, err := handler.NewHandlers(services, cfg, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// issueToken prints a bearer token for the configured owner. Clients pass it
// with -token.
func issueToken(cfg *config.ServerConfig, log *logger.Logger) {
	auth := service.NewAuthService(cfg.App, log)

	token, err := auth.CreateToken(context.Background(), cfg.App.IssueTokenFor)
	if err != nil {
		log.Fatal().Err(err).Msg("error issuing token")
	}
	fmt.Println(token.String())
}

func newBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = models.NotAvailable
	}

	if buildDate == "" {
		buildDate = models.NotAvailable
	}

	if buildCommit == "" {
		buildCommit = models.NotAvailable
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
