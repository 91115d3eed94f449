// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

// storeFactories builds every ClientStore flavour against the same
// behavioural checks.
func storeFactories(t *testing.T) map[string]func(t *testing.T) ClientStore {
	t.Helper()
	return map[string]func(t *testing.T) ClientStore{
		"memory": func(t *testing.T) ClientStore {
			return NewMemoryStorage()
		},
		"file": func(t *testing.T) ClientStore {
			s, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "states.json"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) ClientStore {
			storages, err := NewClientStorages(testContext(), config.ClientStorage{
				Kind: config.StorageSQLite,
				DB:   config.ClientDB{DSN: ":memory:"},
			}, logger.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { storages.Close() })
			return storages.States
		},
		"encrypted": func(t *testing.T) ClientStore {
			return NewEncryptedStorage(NewMemoryStorage(), reverseCipher{})
		},
	}
}

func sampleState(id models.StateID, data string) models.StoredState {
	s := models.NewStoredState(id, "note", models.TierSecure, data)
	s.Metadata.CreatedAt = s.Metadata.CreatedAt.Truncate(time.Millisecond)
	s.Metadata.ModifiedAt = s.Metadata.CreatedAt
	s.Metadata.ContentHash = 1<<63 + 1
	s.Metadata.Custom = map[string]string{"owner": "alice"}
	return s
}

func TestClientStores_Behaviour(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			got, err := s.Load(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, got)

			want := sampleState("b", "second")
			require.NoError(t, s.Save(ctx, sampleState("a", "first")))
			require.NoError(t, s.Save(ctx, want))

			got, err = s.Load(ctx, "b")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want.Data, got.Data)
			assert.Equal(t, want.Metadata.ContentHash, got.Metadata.ContentHash)
			assert.Equal(t, want.Metadata.Custom, got.Metadata.Custom)
			assert.True(t, want.Metadata.ModifiedAt.Equal(got.Metadata.ModifiedAt))

			// overwrite
			want.Data = "second, edited"
			require.NoError(t, s.Save(ctx, want))
			got, err = s.Load(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "second, edited", got.Data)

			ids, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []models.StateID{"a", "b"}, ids)

			exists, err := s.Exists(ctx, "a")
			require.NoError(t, err)
			assert.True(t, exists)

			deleted, err := s.Delete(ctx, "a")
			require.NoError(t, err)
			assert.True(t, deleted)
			deleted, err = s.Delete(ctx, "a")
			require.NoError(t, err)
			assert.False(t, deleted)

			require.NoError(t, s.Clear(ctx))
			ids, err = s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)
			assert.NotEmpty(t, s.Name())
		})
	}
}

func TestClientStores_Metadata(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			synced := models.NewSyncMetadata()
			synced.MarkSynced(5, 1<<63+9)
			failed := models.NewSyncMetadata()
			failed.MarkFailed("offline")

			require.NoError(t, s.SaveMetadata(ctx, "a", synced))
			require.NoError(t, s.SaveMetadata(ctx, "b", failed))

			all, err := s.LoadAllMetadata(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)

			a := all["a"]
			assert.Equal(t, models.Synced, a.Status)
			assert.Equal(t, uint64(5), *a.RemoteVersion)
			assert.Equal(t, uint64(1<<63+9), *a.SyncedHash)
			assert.True(t, synced.LastSyncedAt.Equal(*a.LastSyncedAt))
			assert.Equal(t, "offline", *all["b"].LastError)

			require.NoError(t, s.DeleteMetadata(ctx, "a"))
			all, err = s.LoadAllMetadata(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	ctx := context.Background()

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleState("doc", "kept")))
	meta := models.NewSyncMetadata()
	meta.MarkLocalPending()
	require.NoError(t, s.SaveMetadata(ctx, "doc", meta))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)

	got, err := reopened.Load(ctx, "doc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "kept", got.Data)

	all, err := reopened.LoadAllMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.LocalPending, all["doc"].Status)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewFileStorage(path)
	assert.ErrorIs(t, err, ErrInvalidStoredState)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleState("doc", "x")))

	got, err := s.Load(ctx, "doc")
	require.NoError(t, err)
	got.Metadata.Custom["owner"] = "mallory"

	again, err := s.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Metadata.Custom["owner"])
}

// reverseCipher is a reversible stand-in for a real cipher.
type reverseCipher struct{}

func (reverseCipher) Encrypt(s string) (string, error) {
	return "enc:" + reverse(s), nil
}

func (reverseCipher) Decrypt(s string) (string, error) {
	if !strings.HasPrefix(s, "enc:") {
		return "", errors.New("not sealed")
	}
	return reverse(strings.TrimPrefix(s, "enc:")), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func TestEncryptedStorage_SealsOnlySensitiveTiers(t *testing.T) {
	inner := NewMemoryStorage()
	s := NewEncryptedStorage(inner, reverseCipher{})
	ctx := context.Background()

	secret := sampleState("secret", "pin=1234")
	plain := sampleState("plain", "theme=dark")
	plain.Metadata.Tier = models.TierSyncable

	require.NoError(t, s.Save(ctx, secret))
	require.NoError(t, s.Save(ctx, plain))

	raw, err := inner.Load(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "enc:4321=nip", raw.Data)
	assert.Equal(t, secret.Metadata.ContentHash, raw.Metadata.ContentHash)

	raw, err = inner.Load(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "theme=dark", raw.Data)

	got, err := s.Load(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "pin=1234", got.Data)
	assert.Equal(t, "memory+encrypted", s.Name())
}

func TestEncryptedStorage_DecryptFailure(t *testing.T) {
	inner := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, inner.Save(ctx, sampleState("secret", "not sealed")))

	_, err := NewEncryptedStorage(inner, reverseCipher{}).Load(ctx, "secret")
	assert.Error(t, err)
}

func TestNewClientStorages_UnknownKind(t *testing.T) {
	_, err := NewClientStorages(testContext(), config.ClientStorage{Kind: "etcd"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownStorageKind)
}

func TestNewClientStorages_Passphrase(t *testing.T) {
	storages, err := NewClientStorages(testContext(), config.ClientStorage{
		Kind:       config.StorageMemory,
		Passphrase: "correct horse",
	}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	assert.Equal(t, "memory+encrypted", storages.States.Name())
}
