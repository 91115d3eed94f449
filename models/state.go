// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// StateID identifies a piece of synchronized state. It is opaque to the
// engine: two ids are the same entity if and only if they are equal.
type StateID string

// String implements [fmt.Stringer].
func (id StateID) String() string {
	return string(id)
}

// PersistenceTier describes how a state is expected to be stored.
type PersistenceTier string

const (
	// TierVolatile states live in memory only.
	TierVolatile PersistenceTier = "volatile"
	// TierLocal states are persisted on the device and never leave it.
	TierLocal PersistenceTier = "local"
	// TierSecure states are persisted in a protected local store.
	TierSecure PersistenceTier = "secure"
	// TierEncrypted states are encrypted at rest.
	TierEncrypted PersistenceTier = "encrypted"
	// TierSyncable states are persisted locally and reconciled with a remote.
	TierSyncable PersistenceTier = "syncable"
)

// IsValid reports whether t is one of the known tiers.
func (t PersistenceTier) IsValid() bool {
	switch t {
	case TierVolatile, TierLocal, TierSecure, TierEncrypted, TierSyncable:
		return true
	}
	return false
}

// RequiresEncryption reports whether payloads of this tier must be encrypted
// before they reach a persistence engine.
func (t PersistenceTier) RequiresEncryption() bool {
	return t == TierSecure || t == TierEncrypted
}

// UnknownTypeName is the type name given to states that were first seen on
// the remote side and have no local description.
const UnknownTypeName = "unknown"

// StateMetadata describes a stored state payload.
type StateMetadata struct {
	// ID is the entity the payload belongs to.
	ID StateID `json:"id"`

	// TypeName is a free-form description of the payload shape.
	TypeName string `json:"type_name"`

	// Tier is the persistence tier of the payload.
	Tier PersistenceTier `json:"tier"`

	// Version is the schema version of the payload, starting at 1.
	Version uint32 `json:"version"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	// ContentHash is the xxHash64 digest of Data, see utils.ContentHash.
	ContentHash uint64 `json:"content_hash"`

	// Custom holds caller supplied attributes.
	Custom map[string]string `json:"custom,omitempty"`
}

// StoredState is the local, persistable representation of a state: metadata
// plus an opaque serialized payload.
type StoredState struct {
	Metadata StateMetadata `json:"metadata"`
	Data     string        `json:"data"`
}

// NewStoredState builds a StoredState for id with the given payload. The
// content hash is left for the caller to fill in.
func NewStoredState(id StateID, typeName string, tier PersistenceTier, data string) StoredState {
	now := time.Now().UTC()
	return StoredState{
		Metadata: StateMetadata{
			ID:         id,
			TypeName:   typeName,
			Tier:       tier,
			Version:    1,
			CreatedAt:  now,
			ModifiedAt: now,
		},
		Data: data,
	}
}

// RemoteState is the remote counterpart of a StoredState as reported by a
// remote provider.
type RemoteState struct {
	Data        string    `json:"data"`
	Version     uint64    `json:"version"`
	ModifiedAt  time.Time `json:"modified_at"`
	ContentHash uint64    `json:"content_hash"`
}
