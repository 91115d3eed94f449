package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-state-sync/internal/client"
	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("state-sync-client")

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	app, err := client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}
	defer app.Close()

	if err = app.Run(ctx); err != nil {
		log.Err(err).Strs("args", cfg.Args).Msg("client run error")
		fmt.Fprintln(os.Stderr, "error:", err)
		app.Close()
		os.Exit(1)
	}
}
