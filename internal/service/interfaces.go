package service

import (
	"context"

	"github.com/MKhiriev/go-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=RemoteStateServiceWrapper

// RemoteStateService serves the remote copies of states to sync clients.
// Every method is scoped to the owner stored in ctx by the transport's
// authentication layer.
type RemoteStateService interface {
	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error
	// Fetch returns the owner's copy of id or store.ErrStateNotFound.
	Fetch(ctx context.Context, id models.StateID) (models.RemoteState, error)
	// Push stores req.State as the new copy of req.ID and returns its version.
	Push(ctx context.Context, req models.PushStateRequest) (uint64, error)
	// Delete removes the owner's copy of id and reports whether it existed.
	Delete(ctx context.Context, id models.StateID) (bool, error)
	// List returns the ids of the owner's states.
	List(ctx context.Context, req models.ListStatesRequest) ([]models.StateID, error)
	// GetVersion returns the version of id or store.ErrStateNotFound.
	GetVersion(ctx context.Context, id models.StateID) (uint64, error)
}

// AuthService issues and verifies the bearer tokens of sync clients.
type AuthService interface {
	CreateToken(ctx context.Context, owner string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build information of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}

// RemoteStateServiceWrapper defines middleware composition for
// RemoteStateService. Implementations wrap an existing RemoteStateService to
// add behavior such as validation.
type RemoteStateServiceWrapper interface {
	Wrap(RemoteStateService) RemoteStateService
}
