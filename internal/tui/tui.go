package tui

import (
	"context"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	syncService    service.StateSyncService
	offlineService service.OfflineFirstService
	buildInfo      models.AppBuildInfo

	logger *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		syncService:    services.SyncService,
		offlineService: services.OfflineService,
		buildInfo:      buildInfo,
		logger:         logger,
	}
}

// Monitor runs the full-screen sync monitor until the user quits or ctx is
// cancelled.
func (t *TUI) Monitor(ctx context.Context) error {
	sub := t.syncService.Subscribe()
	defer sub.Close()

	model := newMonitorModel(ctx, t.syncService, t.offlineService, sub, t.buildInfo)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		// cancelled from outside, not a UI failure
		return nil
	}
	return err
}
