package models

// ListStatesResponse lists the ids of the remote states visible to the caller.
type ListStatesResponse struct {
	IDs []StateID `json:"ids"`

	// Length is the number of entries in IDs.
	Length int `json:"length"`
}

// VersionResponse reports the remote version of a state. It is returned both
// by a push and by a version lookup.
type VersionResponse struct {
	Version uint64 `json:"version"`
}

// DeleteResponse reports whether a remote delete removed anything.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
