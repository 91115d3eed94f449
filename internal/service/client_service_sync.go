// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/adapter"
	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
)

// stateSyncService is the concrete implementation of StateSyncService.
//
// All metadata lives in one map guarded by mu. The write section only runs
// state machine transitions; loading, fetching, pushing and persisting
// happen outside of it. Sync and ResolveConflict of the same id are
// serialized through entityLocks.
type stateSyncService struct {
	local  store.LocalPersistence
	remote adapter.RemoteProvider

	// policy is applied by Sync when both sides changed.
	policy models.ConflictResolution

	bus *eventbus.Bus

	// metaStore is optional. When set, every metadata change is written
	// through to it.
	metaStore   store.SyncMetadataRepository
	persistLock keyedLocks

	mu       sync.RWMutex
	metadata map[models.StateID]*models.SyncMetadata

	entityLocks keyedLocks

	logger *logger.Logger
}

// SyncOption configures the engine built by NewStateSyncService.
type SyncOption func(*stateSyncService)

// WithConflictResolution sets the policy Sync applies to conflicts. The
// default is fail.
func WithConflictResolution(policy models.ConflictResolution) SyncOption {
	return func(s *stateSyncService) {
		s.policy = policy
	}
}

// WithEventBus makes the engine publish to bus instead of a private one.
func WithEventBus(bus *eventbus.Bus) SyncOption {
	return func(s *stateSyncService) {
		s.bus = bus
	}
}

// WithMetadataStore persists metadata changes to repo. Call Restore to load
// them back.
func WithMetadataStore(repo store.SyncMetadataRepository) SyncOption {
	return func(s *stateSyncService) {
		s.metaStore = repo
	}
}

// NewStateSyncService builds the engine over local persistence and an
// optional remote provider. A nil remote turns Sync into a no-op that
// reports NeverSynced.
func NewStateSyncService(local store.LocalPersistence, remote adapter.RemoteProvider, logger *logger.Logger, opts ...SyncOption) StateSyncService {
	s := &stateSyncService{
		local:    local,
		remote:   remote,
		policy:   models.DefaultConflictResolution,
		metadata: make(map[models.StateID]*models.SyncMetadata),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = eventbus.New(eventbus.DefaultCapacity)
	}

	return s
}

// Register implements StateSyncService.
func (s *stateSyncService) Register(ctx context.Context, id models.StateID) {
	s.mu.Lock()
	_, ok := s.metadata[id]
	if !ok {
		m := models.NewSyncMetadata()
		s.metadata[id] = &m
	}
	s.mu.Unlock()

	if !ok {
		s.persist(ctx, id)
	}
}

// Unregister implements StateSyncService.
func (s *stateSyncService) Unregister(ctx context.Context, id models.StateID) bool {
	s.mu.Lock()
	_, ok := s.metadata[id]
	delete(s.metadata, id)
	s.mu.Unlock()

	if ok {
		s.persist(ctx, id)
	}
	return ok
}

// MarkChanged implements StateSyncService.
func (s *stateSyncService) MarkChanged(ctx context.Context, id models.StateID) {
	s.update(ctx, id, func(m *models.SyncMetadata) {
		m.MarkLocalPending()
	})
}

// MarkRemoteChanged implements StateSyncService.
func (s *stateSyncService) MarkRemoteChanged(ctx context.Context, id models.StateID) {
	s.update(ctx, id, func(m *models.SyncMetadata) {
		m.MarkRemotePending()
	})
}

// Sync implements StateSyncService.
//
// Local changes are detected by content hash and remote changes by version
// number. A remote that reuses a version number for different content is
// therefore seen as unchanged.
func (s *stateSyncService) Sync(ctx context.Context, id models.StateID) (models.SyncStatus, error) {
	if s.remote == nil {
		return models.NeverSynced, nil
	}

	unlock := s.entityLocks.lock(id)
	defer unlock()

	log := s.logger.With().Str("func", "stateSyncService.Sync").Str("state_id", id.String()).Logger()

	s.Register(ctx, id)

	if !s.remote.IsAvailable(ctx) {
		return s.fail(ctx, id, fmt.Errorf("%w: %s", ErrProviderUnavailable, s.remote.Name()))
	}

	s.publish(models.NewSyncEvent(models.EventStarted, id))
	start := s.update(ctx, id, func(m *models.SyncMetadata) {
		m.Status = models.Syncing
	})

	local, err := s.local.Load(ctx, id)
	if err != nil {
		return s.fail(ctx, id, fmt.Errorf("load local state: %w", err))
	}
	remote, err := s.remote.Fetch(ctx, id)
	if err != nil {
		return s.fail(ctx, id, fmt.Errorf("fetch remote state: %w", err))
	}

	var status models.SyncStatus
	switch {
	case local != nil && remote != nil:
		status, err = s.reconcile(ctx, id, start, local, remote)
	case local != nil:
		status, err = s.pushLocal(ctx, id, start.LocalVersion, local)
	case remote != nil:
		status, err = s.pullRemote(ctx, id, start.LocalVersion, nil, remote)
	default:
		status = s.commitSynced(ctx, id, start.LocalVersion, func(m *models.SyncMetadata) {
			m.Status = models.Synced
		})
	}
	if err != nil {
		return s.fail(ctx, id, err)
	}

	log.Debug().Str("status", status.String()).Msg("state synced")
	s.publish(models.NewSyncEvent(models.EventCompleted, id))
	return status, nil
}

// reconcile handles the case where both copies exist.
func (s *stateSyncService) reconcile(
	ctx context.Context,
	id models.StateID,
	start models.SyncMetadata,
	local *models.StoredState,
	remote *models.RemoteState,
) (models.SyncStatus, error) {
	localHash := utils.ContentHash(local.Data)

	if localHash == remote.ContentHash {
		return s.commitSynced(ctx, id, start.LocalVersion, func(m *models.SyncMetadata) {
			m.MarkSynced(remote.Version, localHash)
		}), nil
	}

	localChanged := start.SyncedHash == nil || *start.SyncedHash != localHash
	remoteChanged := start.RemoteVersion == nil || *start.RemoteVersion != remote.Version

	switch {
	case localChanged && remoteChanged:
		s.update(ctx, id, func(m *models.SyncMetadata) {
			m.Status = models.Conflict
		})
		s.publish(models.NewSyncEvent(models.EventConflict, id))
		return s.resolve(ctx, id, start.LocalVersion, s.policy, local, remote)
	case localChanged:
		return s.pushLocal(ctx, id, start.LocalVersion, local)
	case remoteChanged:
		return s.pullRemote(ctx, id, start.LocalVersion, local, remote)
	default:
		return s.commitSynced(ctx, id, start.LocalVersion, func(m *models.SyncMetadata) {
			m.Status = models.Synced
		}), nil
	}
}

// resolve applies policy to a conflict between local and remote.
func (s *stateSyncService) resolve(
	ctx context.Context,
	id models.StateID,
	localVersion uint64,
	policy models.ConflictResolution,
	local *models.StoredState,
	remote *models.RemoteState,
) (models.SyncStatus, error) {
	var (
		status models.SyncStatus
		err    error
	)

	switch policy {
	case models.KeepLocal:
		if local == nil {
			return models.Conflict, ErrLocalStateMissing
		}
		status, err = s.pushLocal(ctx, id, localVersion, local)
	case models.KeepRemote:
		if remote == nil {
			return models.Conflict, ErrRemoteStateMissing
		}
		status, err = s.pullRemote(ctx, id, localVersion, local, remote)
	case models.Merge:
		return models.Conflict, ErrMergeNotImplemented
	case models.ResolveFail:
		return models.Conflict, ErrConflictNeedsManualResolution
	default:
		return models.Conflict, fmt.Errorf("%w: %q", ErrInvalidConflictResolution, policy)
	}
	if err != nil {
		return status, err
	}

	ev := models.NewSyncEvent(models.EventConflictResolved, id)
	ev.Resolution = policy
	s.publish(ev)

	return status, nil
}

// pushLocal uploads local and records the version assigned by the remote.
func (s *stateSyncService) pushLocal(ctx context.Context, id models.StateID, localVersion uint64, local *models.StoredState) (models.SyncStatus, error) {
	hash := utils.ContentHash(local.Data)

	version, err := s.remote.Push(ctx, id, *local)
	if err != nil {
		return models.SyncFailed, fmt.Errorf("push local state: %w", err)
	}

	status := s.commitSynced(ctx, id, localVersion, func(m *models.SyncMetadata) {
		m.MarkSynced(version, hash)
	})
	s.publish(models.NewSyncEvent(models.EventUploaded, id))
	return status, nil
}

// pullRemote overwrites the local copy with remote. The metadata wrapper of
// local is kept; without one a default wrapper is synthesized.
func (s *stateSyncService) pullRemote(
	ctx context.Context,
	id models.StateID,
	localVersion uint64,
	local *models.StoredState,
	remote *models.RemoteState,
) (models.SyncStatus, error) {
	var state models.StoredState
	if local != nil {
		state = *local
		state.Metadata.ModifiedAt = remote.ModifiedAt
	} else {
		state = defaultStoredState(id, remote)
	}
	state.Metadata.ID = id
	state.Data = remote.Data
	state.Metadata.ContentHash = remote.ContentHash

	if err := s.local.Save(ctx, state); err != nil {
		return models.SyncFailed, fmt.Errorf("save remote state locally: %w", err)
	}

	status := s.commitSynced(ctx, id, localVersion, func(m *models.SyncMetadata) {
		m.MarkSynced(remote.Version, remote.ContentHash)
	})
	s.publish(models.NewSyncEvent(models.EventRemoteUpdate, id))
	return status, nil
}

// commitSynced applies fn and keeps the changes that arrived while the sync
// was in flight: a MarkChanged after localVersion was read leaves the state
// local-pending, a MarkRemoteChanged leaves it remote-pending. When both
// arrived the next Sync compares the copies again.
func (s *stateSyncService) commitSynced(ctx context.Context, id models.StateID, localVersion uint64, fn func(m *models.SyncMetadata)) models.SyncStatus {
	m := s.update(ctx, id, func(m *models.SyncMetadata) {
		changed := m.LocalVersion != localVersion
		remoteMarked := m.Status == models.RemotePending
		fn(m)
		switch {
		case changed:
			m.Status = models.LocalPending
		case remoteMarked:
			m.Status = models.RemotePending
		}
	})
	return m.Status
}

// fail records err on the metadata of id, publishes a Failed event and
// returns err. Unresolved conflicts keep the Conflict status.
func (s *stateSyncService) fail(ctx context.Context, id models.StateID, err error) (models.SyncStatus, error) {
	m := s.update(ctx, id, func(m *models.SyncMetadata) {
		if errors.Is(err, ErrConflictNeedsManualResolution) || errors.Is(err, ErrMergeNotImplemented) {
			m.MarkConflictUnresolved(err.Error())
			return
		}
		m.MarkFailed(err.Error())
	})

	s.logger.Warn().Err(err).
		Str("func", "stateSyncService.fail").
		Str("state_id", id.String()).
		Uint32("failed_attempts", m.FailedAttempts).
		Msg("sync failed")

	ev := models.NewSyncEvent(models.EventFailed, id)
	ev.Message = err.Error()
	s.publish(ev)

	return m.Status, err
}

// SyncAll implements StateSyncService.
func (s *stateSyncService) SyncAll(ctx context.Context) (map[models.StateID]models.SyncStatus, error) {
	ids := s.ids(nil)
	result := make(map[models.StateID]models.SyncStatus, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		status, err := s.Sync(ctx, id)
		if err != nil {
			status = models.SyncFailed
		}
		result[id] = status
	}

	return result, nil
}

// GetMetadata implements StateSyncService.
func (s *stateSyncService) GetMetadata(_ context.Context, id models.StateID) (models.SyncMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.metadata[id]
	if !ok {
		return models.SyncMetadata{}, false
	}
	return m.Clone(), true
}

// GetStatus implements StateSyncService.
func (s *stateSyncService) GetStatus(ctx context.Context, id models.StateID) models.SyncStatus {
	m, ok := s.GetMetadata(ctx, id)
	if !ok {
		return models.NeverSynced
	}
	return m.Status
}

// Snapshot implements StateSyncService.
func (s *stateSyncService) Snapshot(context.Context) map[models.StateID]models.SyncMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[models.StateID]models.SyncMetadata, len(s.metadata))
	for id, m := range s.metadata {
		snapshot[id] = m.Clone()
	}
	return snapshot
}

// PendingSync implements StateSyncService.
func (s *stateSyncService) PendingSync(context.Context) []models.StateID {
	return s.ids(models.SyncMetadata.NeedsSync)
}

// Conflicts implements StateSyncService.
func (s *stateSyncService) Conflicts(context.Context) []models.StateID {
	return s.ids(models.SyncMetadata.HasConflict)
}

// ResolveConflict implements StateSyncService.
func (s *stateSyncService) ResolveConflict(ctx context.Context, id models.StateID, policy models.ConflictResolution) error {
	if s.remote == nil {
		return ErrNoRemoteProvider
	}

	m, ok := s.GetMetadata(ctx, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}

	switch policy {
	case models.ResolveFail:
		return ErrCannotResolveWithFail
	case models.Merge:
		return ErrMergeNotImplemented
	case models.KeepLocal, models.KeepRemote:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConflictResolution, policy)
	}

	unlock := s.entityLocks.lock(id)
	defer unlock()

	log := s.logger.With().Str("func", "stateSyncService.ResolveConflict").Str("state_id", id.String()).Logger()

	local, err := s.local.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}
	remote, err := s.remote.Fetch(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch remote state: %w", err)
	}

	if _, err = s.resolve(ctx, id, m.LocalVersion, policy, local, remote); err != nil {
		log.Warn().Err(err).Str("policy", policy.String()).Msg("conflict resolution failed")
		return err
	}

	log.Info().Str("policy", policy.String()).Msg("conflict resolved")
	return nil
}

// Subscribe implements StateSyncService.
func (s *stateSyncService) Subscribe() *eventbus.Subscription {
	return s.bus.Subscribe()
}

// Restore implements StateSyncService. A state persisted while Syncing was
// interrupted and is restored as SyncFailed.
func (s *stateSyncService) Restore(ctx context.Context) (int, error) {
	if s.metaStore == nil {
		return 0, nil
	}

	stored, err := s.metaStore.LoadAllMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("load sync metadata: %w", err)
	}

	s.mu.Lock()
	for id, m := range stored {
		if m.Status == models.Syncing {
			m.MarkFailed("sync interrupted")
		}
		s.metadata[id] = &m
	}
	s.mu.Unlock()

	s.logger.Info().Str("func", "stateSyncService.Restore").Int("count", len(stored)).Msg("sync metadata restored")
	return len(stored), nil
}

// update applies fn to the metadata of id under the write lock, registering
// id when needed, and returns a copy of the result.
func (s *stateSyncService) update(ctx context.Context, id models.StateID, fn func(m *models.SyncMetadata)) models.SyncMetadata {
	s.mu.Lock()
	m, ok := s.metadata[id]
	if !ok {
		fresh := models.NewSyncMetadata()
		m = &fresh
		s.metadata[id] = m
	}
	fn(m)
	snapshot := m.Clone()
	s.mu.Unlock()

	s.persist(ctx, id)
	return snapshot
}

// persist writes the current metadata of id to the metadata store, or
// deletes it when id is no longer registered. Writes of one id are
// serialized, so the last write always carries the latest record.
func (s *stateSyncService) persist(ctx context.Context, id models.StateID) {
	if s.metaStore == nil {
		return
	}

	unlock := s.persistLock.lock(id)
	defer unlock()

	ctx = context.WithoutCancel(ctx)

	s.mu.RLock()
	m, ok := s.metadata[id]
	var snapshot models.SyncMetadata
	if ok {
		snapshot = m.Clone()
	}
	s.mu.RUnlock()

	var err error
	if ok {
		err = s.metaStore.SaveMetadata(ctx, id, snapshot)
	} else {
		err = s.metaStore.DeleteMetadata(ctx, id)
	}
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "stateSyncService.persist").
			Str("state_id", id.String()).
			Msg("failed to persist sync metadata")
	}
}

// ids returns the sorted ids whose metadata satisfies keep, or all ids when
// keep is nil.
func (s *stateSyncService) ids(keep func(models.SyncMetadata) bool) []models.StateID {
	s.mu.RLock()
	ids := make([]models.StateID, 0, len(s.metadata))
	for id, m := range s.metadata {
		if keep == nil || keep(*m) {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *stateSyncService) publish(ev models.SyncEvent) {
	s.bus.Publish(ev)
}

// defaultStoredState wraps a payload first seen on the remote side.
func defaultStoredState(id models.StateID, remote *models.RemoteState) models.StoredState {
	modified := remote.ModifiedAt
	if modified.IsZero() {
		modified = time.Now().UTC()
	}

	return models.StoredState{
		Metadata: models.StateMetadata{
			ID:          id,
			TypeName:    models.UnknownTypeName,
			Tier:        models.TierSyncable,
			Version:     1,
			CreatedAt:   modified,
			ModifiedAt:  modified,
			ContentHash: remote.ContentHash,
		},
		Data: remote.Data,
	}
}
