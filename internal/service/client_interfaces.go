package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// StateSyncService is the synchronization engine. It keeps one
// [models.SyncMetadata] record per registered state and reconciles the local
// copy of a state with its remote copy.
type StateSyncService interface {
	// Register starts tracking id. Registering a known id is a no-op.
	Register(ctx context.Context, id models.StateID)

	// Unregister stops tracking id and forgets its metadata. It reports
	// whether id was registered.
	Unregister(ctx context.Context, id models.StateID) bool

	// MarkChanged records a local change of id, registering it first when
	// needed. A pending remote change escalates to Conflict.
	MarkChanged(ctx context.Context, id models.StateID)

	// MarkRemoteChanged records a remote change of id, registering it first
	// when needed. A pending local change escalates to Conflict.
	MarkRemoteChanged(ctx context.Context, id models.StateID)

	// Sync reconciles the local and remote copies of id and returns the
	// resulting status. Without a remote provider it returns NeverSynced.
	// Errors are returned and recorded on the metadata of id.
	Sync(ctx context.Context, id models.StateID) (models.SyncStatus, error)

	// SyncAll syncs every registered state in id order. Failures of single
	// states are reported as SyncFailed entries; the returned error is only
	// set when ctx is cancelled.
	SyncAll(ctx context.Context) (map[models.StateID]models.SyncStatus, error)

	// GetMetadata returns a copy of the metadata of id.
	GetMetadata(ctx context.Context, id models.StateID) (models.SyncMetadata, bool)

	// GetStatus returns the status of id, NeverSynced for unknown ids.
	GetStatus(ctx context.Context, id models.StateID) models.SyncStatus

	// Snapshot returns a copy of the metadata of every registered state.
	Snapshot(ctx context.Context) map[models.StateID]models.SyncMetadata

	// PendingSync returns the sorted ids whose metadata needs a sync.
	PendingSync(ctx context.Context) []models.StateID

	// Conflicts returns the sorted ids in Conflict.
	Conflicts(ctx context.Context) []models.StateID

	// ResolveConflict settles id with the given policy. Only keep-local and
	// keep-remote change anything; fail and merge always return an error.
	ResolveConflict(ctx context.Context, id models.StateID, policy models.ConflictResolution) error

	// Subscribe returns a subscription to the engine's events.
	Subscribe() *eventbus.Subscription

	// Restore loads persisted metadata, when a metadata store is configured.
	// It returns the number of restored records.
	Restore(ctx context.Context) (int, error)
}

// OfflineFirstService wraps the engine so local reads and writes keep working
// without connectivity.
type OfflineFirstService interface {
	// SetOnline updates the connectivity flag. Going from offline to online
	// runs SyncAll before returning.
	SetOnline(ctx context.Context, online bool) error

	// IsOnline reports the connectivity flag.
	IsOnline() bool

	// Save writes state locally, marks id changed and, when online, tries
	// one sync whose failure is only logged.
	Save(ctx context.Context, id models.StateID, state models.StoredState) error

	// Load tries one sync when online and returns the local copy of id, or
	// nil when there is none.
	Load(ctx context.Context, id models.StateID) (*models.StoredState, error)
}

// ClientSyncJob defines the contract for a background worker that periodically
// reconciles every registered state.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// RemotePoller discovers remote changes without downloading payloads.
type RemotePoller interface {
	// Poll compares remote versions with the engine's bookkeeping and marks
	// changed states remote-pending. It returns the ids it marked.
	Poll(ctx context.Context) ([]models.StateID, error)
}
