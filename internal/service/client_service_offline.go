package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
)

type offlineFirstService struct {
	syncService StateSyncService
	local       store.LocalPersistence

	online atomic.Bool

	logger *logger.Logger
}

// NewOfflineFirstService wraps syncService. local must be the persistence the
// engine reads from. The service starts online.
func NewOfflineFirstService(syncService StateSyncService, local store.LocalPersistence, logger *logger.Logger) OfflineFirstService {
	o := &offlineFirstService{syncService: syncService, local: local, logger: logger}
	o.online.Store(true)
	return o
}

// SetOnline implements OfflineFirstService. Only an offline to online
// transition triggers SyncAll, and SetOnline waits for it.
func (o *offlineFirstService) SetOnline(ctx context.Context, online bool) error {
	was := o.online.Swap(online)
	if !online || was {
		return nil
	}

	o.logger.Info().Str("func", "offlineFirstService.SetOnline").Msg("back online, syncing all states")

	result, err := o.syncService.SyncAll(ctx)
	if err != nil {
		return fmt.Errorf("sync after reconnect: %w", err)
	}

	o.logger.Debug().Str("func", "offlineFirstService.SetOnline").Int("states", len(result)).Msg("reconnect sync finished")
	return nil
}

// IsOnline implements OfflineFirstService.
func (o *offlineFirstService) IsOnline() bool {
	return o.online.Load()
}

// Save implements OfflineFirstService. The stored metadata is stamped with
// id, the modification time and the content hash of the payload.
func (o *offlineFirstService) Save(ctx context.Context, id models.StateID, state models.StoredState) error {
	now := time.Now().UTC()

	state.Metadata.ID = id
	state.Metadata.ModifiedAt = now
	state.Metadata.ContentHash = utils.ContentHash(state.Data)
	if state.Metadata.CreatedAt.IsZero() {
		state.Metadata.CreatedAt = now
	}
	if state.Metadata.Tier == "" {
		state.Metadata.Tier = models.TierSyncable
	}
	if state.Metadata.Version == 0 {
		state.Metadata.Version = 1
	}

	if err := o.local.Save(ctx, state); err != nil {
		return fmt.Errorf("save state locally: %w", err)
	}

	o.syncService.MarkChanged(ctx, id)

	if o.IsOnline() {
		o.trySync(ctx, id)
	}
	return nil
}

// Load implements OfflineFirstService.
func (o *offlineFirstService) Load(ctx context.Context, id models.StateID) (*models.StoredState, error) {
	if o.IsOnline() {
		o.trySync(ctx, id)
	}

	state, err := o.local.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load local state: %w", err)
	}
	return state, nil
}

func (o *offlineFirstService) trySync(ctx context.Context, id models.StateID) {
	if _, err := o.syncService.Sync(ctx, id); err != nil {
		o.logger.Debug().Err(err).
			Str("func", "offlineFirstService.trySync").
			Str("state_id", id.String()).
			Msg("best-effort sync failed")
	}
}
