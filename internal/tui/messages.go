package tui

import "github.com/MKhiriev/go-state-sync/models"

type snapshotMsg struct {
	states map[models.StateID]models.SyncMetadata
}

type eventMsg struct {
	event models.SyncEvent
}

type busClosedMsg struct{}

type syncDoneMsg struct {
	results map[models.StateID]models.SyncStatus
	err     error
}

type syncOneDoneMsg struct {
	id     models.StateID
	status models.SyncStatus
	err    error
}

type onlineToggledMsg struct {
	online bool
	err    error
}

type resolveDoneMsg struct {
	id     models.StateID
	policy models.ConflictResolution
	err    error
}
