package handler

import (
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-state-sync/internal/handler/http"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured address.
// HTTP request metrics are registered with registry.
func NewHandlers(services *service.Services, cfg *config.ServerConfig, registry *prometheus.Registry, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		h, err := http.NewHandler(services, cfg.App.HashKey, registry, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errHTTPHandlerFailed, err)
		}
		handlers.HTTP = h
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
