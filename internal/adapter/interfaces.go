// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote side of state synchronization.
//
// The primary abstraction is [RemoteProvider], which decouples the sync
// engine from the place remote copies live. The package ships an HTTP/REST
// implementation talking to the sync server ([NewHTTPRemoteProvider]), a gRPC
// implementation of the same API ([NewGRPCRemoteProvider]), an S3-compatible
// object storage implementation ([NewMinioRemoteProvider]) and an in-memory
// one used by tests and demos ([NewMemoryRemoteProvider]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from gRPC status codes by mapGRPCError, so callers can use
// [errors.Is] regardless of the transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_provider_mock.go -package=mock

// RemoteProvider stores remote copies of states. Implementations must be safe
// for concurrent use.
type RemoteProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// IsAvailable reports whether the remote side can be reached right now.
	// It never returns an error: an unreachable remote is simply unavailable.
	IsAvailable(ctx context.Context) bool

	// Fetch returns the remote copy of id, or nil when the remote has none.
	Fetch(ctx context.Context, id models.StateID) (*models.RemoteState, error)

	// Push uploads state as the new remote copy of id and returns the remote
	// version assigned to it.
	Push(ctx context.Context, id models.StateID, state models.StoredState) (uint64, error)

	// Delete removes the remote copy of id and reports whether one existed.
	Delete(ctx context.Context, id models.StateID) (bool, error)

	// List returns the ids of all remote copies.
	List(ctx context.Context) ([]models.StateID, error)

	// GetVersion returns the remote version of id. ok is false when the
	// remote has no copy.
	GetVersion(ctx context.Context, id models.StateID) (version uint64, ok bool, err error)
}
