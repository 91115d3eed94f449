package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RemoteStateRepository stores the server-side copy of every owner's states.
type RemoteStateRepository interface {
	// Get returns the state or ErrStateNotFound.
	Get(ctx context.Context, owner string, id models.StateID) (models.RemoteState, error)
	// Put inserts the state at version 1 or replaces it and increments its
	// version. It returns the new version.
	Put(ctx context.Context, owner string, id models.StateID, data string, hash uint64, modifiedAt time.Time) (uint64, error)
	// Delete removes the state and reports whether it existed.
	Delete(ctx context.Context, owner string, id models.StateID) (bool, error)
	// List returns the ids of the owner's states in ascending order.
	List(ctx context.Context, req models.ListStatesRequest) ([]models.StateID, error)
	// GetVersion returns the current version, ok is false if absent.
	GetVersion(ctx context.Context, owner string, id models.StateID) (version uint64, ok bool, err error)
	// Ping checks the database connection.
	Ping(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
