package service

import (
	"github.com/MKhiriev/go-state-sync/internal/adapter"
	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/store"
)

// ClientServices groups the services of the sync client.
type ClientServices struct {
	SyncService    StateSyncService
	OfflineService OfflineFirstService
	SyncJob        ClientSyncJob
	Poller         RemotePoller

	// Bus is the event bus the engine publishes to.
	Bus *eventbus.Bus
}

// NewClientServices wires the engine over localStore and remote. Sync
// metadata is persisted in localStore; call SyncService.Restore to load it.
// remote may be nil for a local-only client.
func NewClientServices(localStore store.ClientStore, remote adapter.RemoteProvider, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	capacity := cfg.EventCapacity
	if capacity <= 0 {
		capacity = eventbus.DefaultCapacity
	}
	bus := eventbus.New(capacity)

	syncSvc := NewStateSyncService(localStore, remote, logger,
		WithConflictResolution(cfg.ConflictPolicy),
		WithEventBus(bus),
		WithMetadataStore(localStore),
	)
	offlineSvc := NewOfflineFirstService(syncSvc, localStore, logger)

	return &ClientServices{
		SyncService:    syncSvc,
		OfflineService: offlineSvc,
		SyncJob:        NewClientSyncJob(syncSvc, offlineSvc.IsOnline, logger),
		Poller:         NewRemotePoller(syncSvc, remote, logger),
		Bus:            bus,
	}
}
