package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/crypto"
	"github.com/MKhiriev/go-state-sync/models"
)

// encryptedStorage encrypts the payload of secure and encrypted tier states
// before they reach the wrapped store. Metadata, including the content hash
// of the plaintext, is stored as is.
type encryptedStorage struct {
	ClientStore
	cipher crypto.Cipher
}

// NewEncryptedStorage wraps inner so payloads of tiers that require
// encryption are sealed with c at rest.
func NewEncryptedStorage(inner ClientStore, c crypto.Cipher) ClientStore {
	return &encryptedStorage{ClientStore: inner, cipher: c}
}

func (e *encryptedStorage) Name() string {
	return e.ClientStore.Name() + "+encrypted"
}

func (e *encryptedStorage) Save(ctx context.Context, state models.StoredState) error {
	if state.Metadata.Tier.RequiresEncryption() {
		sealed, err := e.cipher.Encrypt(state.Data)
		if err != nil {
			return fmt.Errorf("encrypt state %s: %w", state.Metadata.ID, err)
		}
		state.Data = sealed
	}
	return e.ClientStore.Save(ctx, state)
}

func (e *encryptedStorage) Load(ctx context.Context, id models.StateID) (*models.StoredState, error) {
	state, err := e.ClientStore.Load(ctx, id)
	if err != nil || state == nil {
		return state, err
	}

	if state.Metadata.Tier.RequiresEncryption() {
		plain, err := e.cipher.Decrypt(state.Data)
		if err != nil {
			return nil, fmt.Errorf("decrypt state %s: %w", id, err)
		}
		state.Data = plain
	}
	return state, nil
}
