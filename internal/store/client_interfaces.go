package store

import (
	"context"

	"github.com/MKhiriev/go-state-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalPersistence is the minimal local store the sync engine needs: it
// loads and saves a single state.
type LocalPersistence interface {
	// Save inserts or replaces state.
	Save(ctx context.Context, state models.StoredState) error
	// Load returns the state stored under id, or nil when there is none.
	Load(ctx context.Context, id models.StateID) (*models.StoredState, error)
}

// LocalStorage is a complete local persistence engine.
type LocalStorage interface {
	LocalPersistence

	// Delete removes the state stored under id and reports whether it existed.
	Delete(ctx context.Context, id models.StateID) (bool, error)
	// Exists reports whether a state is stored under id.
	Exists(ctx context.Context, id models.StateID) (bool, error)
	// List returns the ids of all stored states in ascending order.
	List(ctx context.Context) ([]models.StateID, error)
	// Clear removes every stored state.
	Clear(ctx context.Context) error
	// Name identifies the engine in logs.
	Name() string
}

// SyncMetadataRepository persists the engine's per-state sync bookkeeping so
// that it survives restarts of the client.
type SyncMetadataRepository interface {
	LoadAllMetadata(ctx context.Context) (map[models.StateID]models.SyncMetadata, error)
	SaveMetadata(ctx context.Context, id models.StateID, meta models.SyncMetadata) error
	DeleteMetadata(ctx context.Context, id models.StateID) error
}

// ClientStore is a local storage that also keeps sync metadata.
type ClientStore interface {
	LocalStorage
	SyncMetadataRepository
}
