package service

import (
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/models"
)

// Services groups the services of the sync server.
type Services struct {
	RemoteStateService RemoteStateService
	AuthService        AuthService
	AppInfoService     AppInfoService
}

// NewServices wires the server services. RemoteStateService is wrapped with
// request validation.
func NewServices(storages *store.Storages, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	remoteStates := NewRemoteStateValidationService().Wrap(
		NewRemoteStateService(storages.RemoteStateRepository, logger),
	)

	return &Services{
		RemoteStateService: remoteStates,
		AuthService:        NewAuthService(cfg.App, logger),
		AppInfoService:     appInfo,
	}, nil
}
