package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
)

// NewRemoteProvider builds the provider selected by cfg.Kind.
func NewRemoteProvider(cfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteProvider, error) {
	switch cfg.Kind {
	case config.AdapterHTTP:
		return NewHTTPRemoteProvider(cfg, appCfg, logger)
	case config.AdapterGRPC:
		return NewGRPCRemoteProvider(cfg, appCfg, logger)
	case config.AdapterMinio:
		return NewMinioRemoteProvider(cfg.Minio, logger)
	case config.AdapterMemory:
		return NewMemoryRemoteProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapterKind, cfg.Kind)
	}
}
