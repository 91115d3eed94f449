package models

import (
	"fmt"
	"strings"
)

// ConflictResolution is the policy applied when both local and remote copies
// of a state changed since the last sync.
type ConflictResolution string

const (
	// KeepLocal overwrites the remote copy with the local one.
	KeepLocal ConflictResolution = "keep-local"
	// KeepRemote overwrites the local copy with the remote one.
	KeepRemote ConflictResolution = "keep-remote"
	// ResolveFail leaves the conflict for manual resolution.
	ResolveFail ConflictResolution = "fail"
	// Merge is reserved for content merging, which is not implemented.
	Merge ConflictResolution = "merge"
)

// DefaultConflictResolution is used when no policy is configured.
const DefaultConflictResolution = ResolveFail

// ParseConflictResolution parses the textual form of a policy. Underscores
// are accepted in place of dashes.
func ParseConflictResolution(s string) (ConflictResolution, error) {
	r := ConflictResolution(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	switch r {
	case KeepLocal, KeepRemote, ResolveFail, Merge:
		return r, nil
	}
	return "", fmt.Errorf("unknown conflict resolution %q", s)
}

// String implements [fmt.Stringer].
func (r ConflictResolution) String() string {
	return string(r)
}
