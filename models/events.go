package models

import "time"

// SyncEventKind enumerates the notifications published by the sync engine.
type SyncEventKind int

const (
	EventStarted SyncEventKind = iota + 1
	EventCompleted
	EventFailed
	EventConflict
	EventConflictResolved
	EventRemoteUpdate
	EventUploaded
)

var syncEventKindNames = map[SyncEventKind]string{
	EventStarted:          "started",
	EventCompleted:        "completed",
	EventFailed:           "failed",
	EventConflict:         "conflict",
	EventConflictResolved: "conflict_resolved",
	EventRemoteUpdate:     "remote_update",
	EventUploaded:         "uploaded",
}

// String implements [fmt.Stringer].
func (k SyncEventKind) String() string {
	if name, ok := syncEventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SyncEvent is a single notification about a state's synchronization.
//
// Message is set for EventFailed, Resolution for EventConflictResolved.
type SyncEvent struct {
	Kind       SyncEventKind      `json:"kind"`
	ID         StateID            `json:"id"`
	Message    string             `json:"message,omitempty"`
	Resolution ConflictResolution `json:"resolution,omitempty"`
	At         time.Time          `json:"at"`
}

// NewSyncEvent builds an event of the given kind for id, stamped with the
// current time.
func NewSyncEvent(kind SyncEventKind, id StateID) SyncEvent {
	return SyncEvent{Kind: kind, ID: id, At: time.Now().UTC()}
}
