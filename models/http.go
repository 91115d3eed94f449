package models

// ListStatesRequest narrows the ids returned by a remote listing.
type ListStatesRequest struct {
	// Owner is the subject whose states are listed. Filled in by the server
	// from the authenticated token, never by the caller.
	Owner string `json:"-"`

	// Prefix keeps only ids starting with the given string.
	Prefix string `json:"prefix,omitempty"`

	// Limit caps the number of ids returned. Zero means no limit.
	Limit uint64 `json:"limit,omitempty"`
}

// PushStateRequest carries a state to be written on the remote side.
type PushStateRequest struct {
	Owner string      `json:"-"`
	ID    StateID     `json:"id"`
	State StoredState `json:"state"`
}

// StateRequest addresses a single state. It is the request of the gRPC
// Fetch, Delete and GetVersion methods.
type StateRequest struct {
	ID StateID `json:"id"`
}
