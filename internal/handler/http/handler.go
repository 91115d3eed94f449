package http

import (
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/metrics"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	hasher   *utils.Hasher

	registry *prometheus.Registry
	metrics  *metrics.HTTPMetrics

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Request metrics are registered with
// registry and served on /metrics; a nil registry disables both. An empty
// hashKey disables the body signature check.
func NewHandler(services *service.Services, hashKey string, registry *prometheus.Registry, logger *logger.Logger) (*Handler, error) {
	h := &Handler{
		services: services,
		registry: registry,
		logger:   logger,
	}

	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}

	if registry != nil {
		m, err := metrics.NewHTTPMetrics(metrics.Namespace, registry)
		if err != nil {
			return nil, err
		}
		h.metrics = m
	}

	logger.Info().Msg("http handler created")
	return h, nil
}
