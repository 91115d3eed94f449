package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/adapter"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

type remotePoller struct {
	syncService StateSyncService
	remote      adapter.RemoteProvider

	logger *logger.Logger
}

// NewRemotePoller returns a poller that compares the versions reported by
// remote with the bookkeeping of syncService.
func NewRemotePoller(syncService StateSyncService, remote adapter.RemoteProvider, logger *logger.Logger) RemotePoller {
	return &remotePoller{syncService: syncService, remote: remote, logger: logger}
}

// Poll implements RemotePoller.
//
// Remote ids the engine does not know are registered and marked
// remote-pending. Known ids are marked when the remote version differs from
// the last synced one. Ids whose sync is in flight are skipped.
func (p *remotePoller) Poll(ctx context.Context) ([]models.StateID, error) {
	if p.remote == nil || !p.remote.IsAvailable(ctx) {
		return nil, nil
	}

	ids, err := p.remote.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote states: %w", err)
	}

	var marked []models.StateID
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return marked, err
		}

		meta, known := p.syncService.GetMetadata(ctx, id)
		if known && meta.Status == models.Syncing {
			continue
		}

		if known && meta.RemoteVersion != nil {
			version, ok, err := p.remote.GetVersion(ctx, id)
			if err != nil {
				return marked, fmt.Errorf("get remote version of %s: %w", id, err)
			}
			if !ok || version == *meta.RemoteVersion {
				continue
			}
		}

		p.syncService.MarkRemoteChanged(ctx, id)
		marked = append(marked, id)
	}

	if len(marked) > 0 {
		p.logger.Debug().Str("func", "remotePoller.Poll").Int("marked", len(marked)).Msg("remote changes detected")
	}
	return marked, nil
}
