package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/adapter"
	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/metrics"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/tui"
	"github.com/MKhiriev/go-state-sync/internal/workers"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	cfg *config.ClientConfig

	storages *store.ClientStorages
	remote   adapter.RemoteProvider
	services *service.ClientServices
	ui       *tui.TUI

	buildInfo models.AppBuildInfo
	registry  *prometheus.Registry
	out       io.Writer

	logger *logger.Logger
}

// NewApp builds the storage, the remote provider and the client services
// selected by cfg, then restores the persisted sync metadata.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	remote, err := adapter.NewRemoteProvider(cfg.Adapter, cfg.App, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create remote provider: %w", err)
	}

	services := service.NewClientServices(storages.States, remote, cfg.Sync, logger)

	app := &App{
		cfg:      cfg,
		storages: storages,
		remote:   remote,
		services: services,
		ui:       tui.New(services, buildInfo, logger),

		buildInfo: buildInfo,
		registry:  prometheus.NewRegistry(),
		out:       os.Stdout,
		logger:    logger,
	}

	if err := app.restore(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// SetOutput redirects command output, stdout by default.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Close implements Client.
func (a *App) Close() error {
	a.services.Bus.Close()

	var errs []error
	if closer, ok := a.remote.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, a.storages.Close())
	return errors.Join(errs...)
}

// restore loads persisted metadata and registers states that exist locally
// but have no metadata yet.
func (a *App) restore(ctx context.Context) error {
	restored, err := a.services.SyncService.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore sync metadata: %w", err)
	}

	ids, err := a.storages.States.List(ctx)
	if err != nil {
		return fmt.Errorf("list local states: %w", err)
	}
	for _, id := range ids {
		a.services.SyncService.Register(ctx, id)
	}

	a.logger.Debug().Int("restored", restored).Int("local", len(ids)).Msg("client state restored")
	return nil
}

// background assembles the long running workers: periodic sync, remote
// polling, the metrics collector and, when configured, the metrics endpoint.
func (a *App) background() (*workers.Workers, error) {
	collector, err := metrics.NewCollector(metrics.Namespace, a.registry)
	if err != nil {
		return nil, fmt.Errorf("metrics collector: %w", err)
	}

	online := a.services.OfflineService.IsOnline
	interval := a.cfg.Workers.SyncInterval

	w := workers.NewWorkers(
		workers.WorkerFunc(func(ctx context.Context) error {
			a.services.SyncJob.Start(ctx, interval)
			<-ctx.Done()
			a.services.SyncJob.Stop()
			return nil
		}),
		workers.NewPeriodic("remote-poller", a.cfg.Workers.PollInterval, func(ctx context.Context) error {
			_, err := a.services.Poller.Poll(ctx)
			return err
		}, a.logger).SkipWhen(func() bool { return !online() }),
		workers.WorkerFunc(func(ctx context.Context) error {
			return collector.Run(ctx, a.services.SyncService.Subscribe(), a.services.SyncService.Snapshot)
		}),
	)

	if a.cfg.MetricsAddress != "" {
		w.Add(a.metricsServer(a.cfg.MetricsAddress))
	}
	return w, nil
}

// metricsRouter exposes the client registry on /metrics.
func (a *App) metricsRouter() http.Handler {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return router
}

func (a *App) metricsServer(address string) workers.Worker {
	srv := &http.Server{
		Addr:              address,
		Handler:           a.metricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return workers.WorkerFunc(func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			a.logger.Info().Str("address", address).Msg("metrics endpoint listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("metrics server: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return nil
	})
}
