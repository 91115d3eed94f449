package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownSyncStatus is returned when decoding an unknown status name.
var ErrUnknownSyncStatus = errors.New("unknown sync status")

// SyncStatus is the synchronization status of a single registered state.
type SyncStatus int

const (
	// NeverSynced is the status of a state that has been registered but has
	// not yet completed a synchronization.
	NeverSynced SyncStatus = iota
	// LocalPending means the local copy changed since the last sync.
	LocalPending
	// RemotePending means the remote copy changed since the last sync.
	RemotePending
	// Conflict means both sides changed since the last sync.
	Conflict
	// Syncing means a synchronization is in flight.
	Syncing
	// SyncFailed means the last synchronization attempt failed.
	SyncFailed
	// Synced means local and remote agree.
	Synced
)

var syncStatusNames = map[SyncStatus]string{
	NeverSynced:   "never_synced",
	LocalPending:  "local_pending",
	RemotePending: "remote_pending",
	Conflict:      "conflict",
	Syncing:       "syncing",
	SyncFailed:    "sync_failed",
	Synced:        "synced",
}

// String implements [fmt.Stringer].
func (s SyncStatus) String() string {
	if name, ok := syncStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements [encoding.TextMarshaler] so statuses are rendered by
// name in JSON payloads and logs.
func (s SyncStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts the names
// produced by MarshalText.
func (s *SyncStatus) UnmarshalText(text []byte) error {
	for status, name := range syncStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSyncStatus, text)
}

// SyncMetadata is the per-entity bookkeeping record kept by the sync engine.
//
// SyncedHash and RemoteVersion advance together through MarkSynced: they
// describe the last point at which both sides agreed.
type SyncMetadata struct {
	Status       SyncStatus `json:"status"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	// LocalVersion counts local changes and never decreases.
	LocalVersion uint64 `json:"local_version"`

	RemoteVersion *uint64 `json:"remote_version,omitempty"`
	SyncedHash    *uint64 `json:"synced_hash,omitempty"`

	FailedAttempts uint32  `json:"failed_attempts"`
	LastError      *string `json:"last_error,omitempty"`
}

// NewSyncMetadata returns the metadata of a freshly registered state.
func NewSyncMetadata() SyncMetadata {
	return SyncMetadata{Status: NeverSynced}
}

// MarkSynced records a successful synchronization at the given remote
// version and content hash.
func (m *SyncMetadata) MarkSynced(remoteVersion, hash uint64) {
	now := time.Now().UTC()
	m.Status = Synced
	m.LastSyncedAt = &now
	m.RemoteVersion = &remoteVersion
	m.SyncedHash = &hash
	m.FailedAttempts = 0
	m.LastError = nil
}

// MarkLocalPending records a local change. A pending remote change turns
// into a conflict; an existing conflict is kept.
func (m *SyncMetadata) MarkLocalPending() {
	m.LocalVersion++
	switch m.Status {
	case Conflict, RemotePending:
		m.Status = Conflict
	default:
		m.Status = LocalPending
	}
}

// MarkRemotePending records a remote change. A pending local change turns
// into a conflict; an existing conflict is kept.
func (m *SyncMetadata) MarkRemotePending() {
	switch m.Status {
	case Conflict, LocalPending:
		m.Status = Conflict
	default:
		m.Status = RemotePending
	}
}

// MarkFailed records a failed synchronization attempt. RemoteVersion and
// SyncedHash are left untouched.
func (m *SyncMetadata) MarkFailed(msg string) {
	m.Status = SyncFailed
	m.FailedAttempts++
	m.LastError = &msg
}

// MarkConflictUnresolved records that an automatic resolution attempt did
// not settle a conflict. The status stays Conflict.
func (m *SyncMetadata) MarkConflictUnresolved(msg string) {
	m.Status = Conflict
	m.FailedAttempts++
	m.LastError = &msg
}

// NeedsSync reports whether the state should be synchronized.
func (m SyncMetadata) NeedsSync() bool {
	switch m.Status {
	case LocalPending, RemotePending, NeverSynced, Conflict:
		return true
	}
	return false
}

// HasConflict reports whether both sides changed since the last sync.
func (m SyncMetadata) HasConflict() bool {
	return m.Status == Conflict
}

// Clone returns a deep copy of m, so callers can hold on to it without
// sharing pointers with the engine.
func (m SyncMetadata) Clone() SyncMetadata {
	c := m
	if m.LastSyncedAt != nil {
		t := *m.LastSyncedAt
		c.LastSyncedAt = &t
	}
	if m.RemoteVersion != nil {
		v := *m.RemoteVersion
		c.RemoteVersion = &v
	}
	if m.SyncedHash != nil {
		h := *m.SyncedHash
		c.SyncedHash = &h
	}
	if m.LastError != nil {
		e := *m.LastError
		c.LastError = &e
	}
	return c
}
