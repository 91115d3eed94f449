package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/logger"
)

// DefaultSyncInterval is used by ClientSyncJob when no interval is given.
const DefaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService StateSyncService
	online      func() bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.SyncAll on a
// ticker. Ticks are skipped while online reports false; a nil online means
// always online. The job is idle until Start is called.
func NewClientSyncJob(syncService StateSyncService, online func() bool, logger *logger.Logger) ClientSyncJob {
	if online == nil {
		online = func() bool { return true }
	}
	return &clientSyncJob{syncService: syncService, online: online, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls SyncAll every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !j.online() {
					continue
				}
				if _, err := j.syncService.SyncAll(jobCtx); err != nil {
					j.logger.Debug().Err(err).Str("func", "clientSyncJob.Start").Msg("periodic sync interrupted")
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
