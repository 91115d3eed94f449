// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/adapter"
	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/mock"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestEngine: движок поверх памяти: локальное хранилище и удалённый провайдер.
func newTestEngine(t *testing.T, opts ...SyncOption) (*stateSyncService, store.ClientStore, *adapter.MemoryRemoteProvider) {
	t.Helper()

	local := store.NewMemoryStorage()
	remote := adapter.NewMemoryRemoteProvider()
	svc := NewStateSyncService(local, remote, logger.Nop(), opts...).(*stateSyncService)

	return svc, local, remote
}

func saveLocal(t *testing.T, local store.LocalPersistence, id models.StateID, data string) {
	t.Helper()

	state := models.NewStoredState(id, "note", models.TierSyncable, data)
	state.Metadata.ContentHash = utils.ContentHash(data)
	require.NoError(t, local.Save(context.Background(), state))
}

func loadLocal(t *testing.T, local store.LocalPersistence, id models.StateID) *models.StoredState {
	t.Helper()

	state, err := local.Load(context.Background(), id)
	require.NoError(t, err)
	return state
}

func remoteData(t *testing.T, remote adapter.RemoteProvider, id models.StateID) string {
	t.Helper()

	state, err := remote.Fetch(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, state)
	return state.Data
}

// drainKinds вычитывает все накопленные события без блокировки.
func drainKinds(sub *eventbus.Subscription) []models.SyncEventKind {
	var kinds []models.SyncEventKind
	for {
		ev, ok := sub.TryRecv()
		if !ok {
			return kinds
		}
		kinds = append(kinds, ev.Kind)
	}
}

func countKind(kinds []models.SyncEventKind, kind models.SyncEventKind) int {
	n := 0
	for _, k := range kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// setupConflict доводит doc1 до состояния, когда изменены обе стороны.
func setupConflict(t *testing.T, svc *stateSyncService, local store.ClientStore, remote *adapter.MemoryRemoteProvider) {
	t.Helper()
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")
	svc.MarkChanged(ctx, "doc1")
	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, models.Synced, status)

	_, err = remote.Push(ctx, "doc1", models.StoredState{Data: "remote-v2"})
	require.NoError(t, err)

	saveLocal(t, local, "doc1", "local-v2")
	svc.MarkChanged(ctx, "doc1")
}

// ── Register / MarkChanged ───────────────────────────────────────────────────

func TestStateSyncService_Register_FreshIsNeverSynced(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	for _, id := range []models.StateID{"a", "b", "c"} {
		svc.Register(ctx, id)

		meta, ok := svc.GetMetadata(ctx, id)
		require.True(t, ok)
		assert.Equal(t, models.NeverSynced, meta.Status)
		assert.True(t, meta.NeedsSync())
	}

	assert.Equal(t, []models.StateID{"a", "b", "c"}, svc.PendingSync(ctx))
}

func TestStateSyncService_Register_Idempotent(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	svc.MarkChanged(ctx, "doc1")
	svc.Register(ctx, "doc1")

	assert.Equal(t, models.LocalPending, svc.GetStatus(ctx, "doc1"))
}

func TestStateSyncService_GetStatus_UnknownID(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	_, ok := svc.GetMetadata(context.Background(), "missing")
	assert.False(t, ok)
	assert.Equal(t, models.NeverSynced, svc.GetStatus(context.Background(), "missing"))
}

func TestStateSyncService_MarkChanged_Transitions(t *testing.T) {
	svc, local, _ := newTestEngine(t)
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")
	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, models.Synced, svc.GetStatus(ctx, "doc1"))

	svc.MarkChanged(ctx, "doc1")
	assert.Equal(t, models.LocalPending, svc.GetStatus(ctx, "doc1"))

	svc.Register(ctx, "doc2")
	svc.MarkRemoteChanged(ctx, "doc2")
	require.Equal(t, models.RemotePending, svc.GetStatus(ctx, "doc2"))
	svc.MarkChanged(ctx, "doc2")
	assert.Equal(t, models.Conflict, svc.GetStatus(ctx, "doc2"))

	assert.Equal(t, []models.StateID{"doc2"}, svc.Conflicts(ctx))
}

func TestStateSyncService_Unregister(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	ctx := context.Background()

	svc.Register(ctx, "doc1")
	assert.True(t, svc.Unregister(ctx, "doc1"))
	assert.False(t, svc.Unregister(ctx, "doc1"))

	_, ok := svc.GetMetadata(ctx, "doc1")
	assert.False(t, ok)
	assert.Empty(t, svc.PendingSync(ctx))
}

// ── Sync ─────────────────────────────────────────────────────────────────────

func TestStateSyncService_Sync_NoRemote(t *testing.T) {
	svc := NewStateSyncService(store.NewMemoryStorage(), nil, logger.Nop())
	ctx := context.Background()

	svc.MarkChanged(ctx, "doc1")
	status, err := svc.Sync(ctx, "doc1")

	require.NoError(t, err)
	assert.Equal(t, models.NeverSynced, status)
	assert.Equal(t, models.LocalPending, svc.GetStatus(ctx, "doc1"), "без провайдера метаданные не меняются")
}

func TestStateSyncService_Sync_Unavailable(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	sub := svc.Subscribe()

	saveLocal(t, local, "doc1", "v1")
	remote.SetAvailable(false)

	status, err := svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, models.SyncFailed, status)

	meta, ok := svc.GetMetadata(ctx, "doc1")
	require.True(t, ok)
	assert.Equal(t, models.SyncFailed, meta.Status)
	assert.Equal(t, uint32(1), meta.FailedAttempts)
	require.NotNil(t, meta.LastError)
	assert.Contains(t, *meta.LastError, "unavailable")
	assert.Nil(t, meta.RemoteVersion)

	assert.Equal(t, []models.SyncEventKind{models.EventFailed}, drainKinds(sub))
}

func TestStateSyncService_Sync_OnlyLocalPushes(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	sub := svc.Subscribe()

	saveLocal(t, local, "doc1", "v1")
	svc.MarkChanged(ctx, "doc1")

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Equal(t, "v1", remoteData(t, remote, "doc1"))

	meta, _ := svc.GetMetadata(ctx, "doc1")
	require.NotNil(t, meta.RemoteVersion)
	require.NotNil(t, meta.SyncedHash)
	assert.Equal(t, uint64(1), *meta.RemoteVersion)
	assert.Equal(t, utils.ContentHash("v1"), *meta.SyncedHash)
	assert.NotNil(t, meta.LastSyncedAt)

	assert.Equal(t, []models.SyncEventKind{
		models.EventStarted,
		models.EventUploaded,
		models.EventCompleted,
	}, drainKinds(sub))
}

func TestStateSyncService_Sync_OnlyRemotePulls(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()

	_, err := remote.Push(ctx, "doc1", models.StoredState{Data: "from-remote"})
	require.NoError(t, err)

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)

	state := loadLocal(t, local, "doc1")
	require.NotNil(t, state)
	assert.Equal(t, "from-remote", state.Data)
	assert.Equal(t, models.StateID("doc1"), state.Metadata.ID)
	assert.Equal(t, models.UnknownTypeName, state.Metadata.TypeName)
	assert.Equal(t, models.TierSyncable, state.Metadata.Tier)
	assert.Equal(t, utils.ContentHash("from-remote"), state.Metadata.ContentHash)
}

func TestStateSyncService_Sync_NeitherPresent(t *testing.T) {
	svc, local, _ := newTestEngine(t)
	ctx := context.Background()

	status, err := svc.Sync(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Nil(t, loadLocal(t, local, "ghost"))
}

func TestStateSyncService_Sync_Idempotent(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")

	first, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	before, _ := svc.GetMetadata(ctx, "doc1")

	second, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	after, _ := svc.GetMetadata(ctx, "doc1")

	assert.Equal(t, models.Synced, first)
	assert.Equal(t, models.Synced, second)
	assert.Equal(t, *before.SyncedHash, *after.SyncedHash)
	assert.Equal(t, *before.RemoteVersion, *after.RemoteVersion)

	version, ok, err := remote.GetVersion(ctx, "doc1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), version, "повторный sync не должен пушить")
}

func TestStateSyncService_Sync_RemoteChangedPulls(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")
	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)

	_, err = remote.Push(ctx, "doc1", models.StoredState{Data: "v2"})
	require.NoError(t, err)

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)

	state := loadLocal(t, local, "doc1")
	assert.Equal(t, "v2", state.Data)
	assert.Equal(t, "note", state.Metadata.TypeName, "обёртка локальных метаданных сохраняется")

	meta, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, uint64(2), *meta.RemoteVersion)
}

func TestStateSyncService_Sync_LocalChangedPushes(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")
	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)

	saveLocal(t, local, "doc1", "v2")
	svc.MarkChanged(ctx, "doc1")

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Equal(t, "v2", remoteData(t, remote, "doc1"))

	meta, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, uint64(2), *meta.RemoteVersion)
	assert.Equal(t, utils.ContentHash("v2"), *meta.SyncedHash)
}

func TestStateSyncService_Sync_ConflictFailPolicy(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	sub := svc.Subscribe()
	status, err := svc.Sync(ctx, "doc1")

	require.ErrorIs(t, err, ErrConflictNeedsManualResolution)
	assert.Equal(t, models.Conflict, status)
	assert.Equal(t, models.Conflict, svc.GetStatus(ctx, "doc1"))

	kinds := drainKinds(sub)
	assert.Equal(t, 1, countKind(kinds, models.EventConflict))
	assert.Equal(t, []models.SyncEventKind{
		models.EventStarted,
		models.EventConflict,
		models.EventFailed,
	}, kinds)

	// ни одна сторона не тронута
	assert.Equal(t, "local-v2", loadLocal(t, local, "doc1").Data)
	assert.Equal(t, "remote-v2", remoteData(t, remote, "doc1"))
	assert.Equal(t, []models.StateID{"doc1"}, svc.Conflicts(ctx))
}

func TestStateSyncService_Sync_ConflictKeepRemotePolicy(t *testing.T) {
	svc, local, remote := newTestEngine(t, WithConflictResolution(models.KeepRemote))
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	sub := svc.Subscribe()
	status, err := svc.Sync(ctx, "doc1")

	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Equal(t, "remote-v2", loadLocal(t, local, "doc1").Data)

	var resolved *models.SyncEvent
	conflicts := 0
	for {
		ev, ok := sub.TryRecv()
		if !ok {
			break
		}
		switch ev.Kind {
		case models.EventConflict:
			conflicts++
		case models.EventConflictResolved:
			resolved = &ev
		}
	}
	assert.Equal(t, 1, conflicts)
	require.NotNil(t, resolved)
	assert.Equal(t, models.KeepRemote, resolved.Resolution)
}

func TestStateSyncService_Sync_ConflictKeepLocalPolicy(t *testing.T) {
	svc, local, remote := newTestEngine(t, WithConflictResolution(models.KeepLocal))
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Equal(t, "local-v2", remoteData(t, remote, "doc1"))
}

func TestStateSyncService_Sync_ConflictMergePolicy(t *testing.T) {
	svc, local, remote := newTestEngine(t, WithConflictResolution(models.Merge))
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	status, err := svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, ErrMergeNotImplemented)
	assert.Equal(t, models.Conflict, status)
}

// Удалённая сторона переиспользовала номер версии с другим содержимым:
// изменение определяется только по версии, поэтому его не видно.
func TestStateSyncService_Sync_ReusedRemoteVersionIsNotDetected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := store.NewMemoryStorage()
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")

	remote.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(2)
	gomock.InOrder(
		remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).Return(nil, nil),
		remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).Return(&models.RemoteState{
			Data:        "rolled-back",
			Version:     1,
			ContentHash: utils.ContentHash("rolled-back"),
		}, nil),
	)
	remote.EXPECT().Push(gomock.Any(), models.StateID("doc1"), gomock.Any()).Return(uint64(1), nil)

	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)
	assert.Equal(t, "v1", loadLocal(t, local, "doc1").Data)
}

func TestStateSyncService_Sync_LocalEditDuringSyncStaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := store.NewMemoryStorage()
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")

	remote.EXPECT().IsAvailable(gomock.Any()).Return(true)
	remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).Return(nil, nil)
	remote.EXPECT().Push(gomock.Any(), models.StateID("doc1"), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id models.StateID, _ models.StoredState) (uint64, error) {
			// правка пришла, пока шёл push
			svc.MarkChanged(ctx, id)
			return 1, nil
		})

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.LocalPending, status)

	meta, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, uint64(1), *meta.RemoteVersion)
	assert.True(t, meta.NeedsSync())
}

func TestStateSyncService_Sync_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(store.NewMemoryStorage(), remote, logger.Nop())
	ctx := context.Background()

	remote.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(2)
	remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).Return(nil, adapter.ErrBadGateway).Times(2)

	_, err := svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, adapter.ErrBadGateway)
	_, err = svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, adapter.ErrBadGateway)

	meta, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, models.SyncFailed, meta.Status)
	assert.Equal(t, uint32(2), meta.FailedAttempts)
}

func TestStateSyncService_Sync_LocalLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := mock.NewMockLocalPersistence(ctrl)
	remote := adapter.NewMemoryRemoteProvider()
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	local.EXPECT().Load(gomock.Any(), models.StateID("doc1")).Return(nil, store.ErrInvalidStoredState)

	status, err := svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, store.ErrInvalidStoredState)
	assert.Equal(t, models.SyncFailed, status)
}

func TestStateSyncService_Sync_RemoteChangeDuringSyncStaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := store.NewMemoryStorage()
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	remote.EXPECT().IsAvailable(gomock.Any()).Return(true)
	remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).
		DoAndReturn(func(ctx context.Context, id models.StateID) (*models.RemoteState, error) {
			// поллер увидел новую версию, пока шла загрузка
			svc.MarkRemoteChanged(ctx, id)
			return &models.RemoteState{Data: "v1", Version: 1, ContentHash: utils.ContentHash("v1")}, nil
		})

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.RemotePending, status)

	meta, _ := svc.GetMetadata(ctx, "doc1")
	require.NotNil(t, meta.RemoteVersion)
	assert.Equal(t, uint64(1), *meta.RemoteVersion)
	assert.True(t, meta.NeedsSync())
	assert.Equal(t, "v1", loadLocal(t, local, "doc1").Data)
}

func TestStateSyncService_Sync_PullKeysLocalCopyByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := mock.NewMockLocalPersistence(ctrl)
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop(), WithConflictResolution(models.KeepRemote))
	ctx := context.Background()

	// локальная копия без id в метаданных
	stale := models.NewStoredState("", "note", models.TierSyncable, "old")

	var saved models.StoredState
	local.EXPECT().Load(gomock.Any(), models.StateID("doc1")).Return(&stale, nil)
	local.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state models.StoredState) error {
			saved = state
			return nil
		})
	remote.EXPECT().IsAvailable(gomock.Any()).Return(true)
	remote.EXPECT().Fetch(gomock.Any(), models.StateID("doc1")).
		Return(&models.RemoteState{Data: "new", Version: 3, ContentHash: utils.ContentHash("new")}, nil)

	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, models.Synced, status)

	assert.Equal(t, models.StateID("doc1"), saved.Metadata.ID)
	assert.Equal(t, "new", saved.Data)
	assert.Equal(t, "note", saved.Metadata.TypeName)
}

func TestStateSyncService_Sync_StalledPushBlocksOnlyItsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := store.NewMemoryStorage()
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	saveLocal(t, local, "slow", "s1")
	saveLocal(t, local, "fast", "f1")

	entered := make(chan struct{})
	release := make(chan struct{})

	remote.EXPECT().IsAvailable(gomock.Any()).Return(true).AnyTimes()
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	remote.EXPECT().Push(gomock.Any(), models.StateID("slow"), gomock.Any()).
		DoAndReturn(func(context.Context, models.StateID, models.StoredState) (uint64, error) {
			close(entered)
			<-release
			return 1, nil
		})
	remote.EXPECT().Push(gomock.Any(), models.StateID("fast"), gomock.Any()).Return(uint64(1), nil)

	slowDone := make(chan models.SyncStatus, 1)
	go func() {
		status, _ := svc.Sync(ctx, "slow")
		slowDone <- status
	}()
	<-entered

	fastDone := make(chan models.SyncStatus, 1)
	go func() {
		status, _ := svc.Sync(ctx, "fast")
		fastDone <- status
	}()

	select {
	case status := <-fastDone:
		assert.Equal(t, models.Synced, status)
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("sync of another id waited for the stalled push")
	}

	assert.Equal(t, models.Syncing, svc.GetStatus(ctx, "slow"))

	close(release)
	assert.Equal(t, models.Synced, <-slowDone)
}

// ── SyncAll ──────────────────────────────────────────────────────────────────

func TestStateSyncService_SyncAll_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	local := store.NewMemoryStorage()
	remote := mock.NewMockRemoteProvider(ctrl)
	svc := NewStateSyncService(local, remote, logger.Nop())
	ctx := context.Background()

	for _, id := range []models.StateID{"a", "b", "c"} {
		saveLocal(t, local, id, "data-"+id.String())
		svc.Register(ctx, id)
	}

	remote.EXPECT().Name().Return("mock").AnyTimes()
	remote.EXPECT().IsAvailable(gomock.Any()).Return(true).AnyTimes()
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	remote.EXPECT().Push(gomock.Any(), models.StateID("a"), gomock.Any()).Return(uint64(1), nil)
	remote.EXPECT().Push(gomock.Any(), models.StateID("b"), gomock.Any()).Return(uint64(0), errors.New("boom"))
	remote.EXPECT().Push(gomock.Any(), models.StateID("c"), gomock.Any()).Return(uint64(1), nil)

	result, err := svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.StateID]models.SyncStatus{
		"a": models.Synced,
		"b": models.SyncFailed,
		"c": models.Synced,
	}, result)

	meta, _ := svc.GetMetadata(ctx, "b")
	require.NotNil(t, meta.LastError)
	assert.Contains(t, *meta.LastError, "boom")
}

func TestStateSyncService_SyncAll_CancelledContext(t *testing.T) {
	svc, _, _ := newTestEngine(t)
	svc.Register(context.Background(), "doc1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.SyncAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result)
}

// ── ResolveConflict ──────────────────────────────────────────────────────────

func TestStateSyncService_ResolveConflict_KeepLocal(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	_, err := svc.Sync(ctx, "doc1")
	require.ErrorIs(t, err, ErrConflictNeedsManualResolution)

	require.NoError(t, svc.ResolveConflict(ctx, "doc1", models.KeepLocal))

	assert.Equal(t, "local-v2", loadLocal(t, local, "doc1").Data)
	assert.Equal(t, "local-v2", remoteData(t, remote, "doc1"))
	assert.Equal(t, models.Synced, svc.GetStatus(ctx, "doc1"))
	assert.Empty(t, svc.Conflicts(ctx))
}

func TestStateSyncService_ResolveConflict_KeepRemote(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	_, err := svc.Sync(ctx, "doc1")
	require.Error(t, err)

	sub := svc.Subscribe()
	require.NoError(t, svc.ResolveConflict(ctx, "doc1", models.KeepRemote))

	assert.Equal(t, "remote-v2", loadLocal(t, local, "doc1").Data)
	assert.Equal(t, models.Synced, svc.GetStatus(ctx, "doc1"))

	kinds := drainKinds(sub)
	assert.Contains(t, kinds, models.EventRemoteUpdate)
	assert.Contains(t, kinds, models.EventConflictResolved)
}

func TestStateSyncService_ResolveConflict_FailAndMergeDoNotMutate(t *testing.T) {
	svc, local, remote := newTestEngine(t)
	ctx := context.Background()
	setupConflict(t, svc, local, remote)

	_, err := svc.Sync(ctx, "doc1")
	require.Error(t, err)
	before, _ := svc.GetMetadata(ctx, "doc1")

	err = svc.ResolveConflict(ctx, "doc1", models.ResolveFail)
	assert.ErrorIs(t, err, ErrCannotResolveWithFail)

	err = svc.ResolveConflict(ctx, "doc1", models.Merge)
	assert.ErrorIs(t, err, ErrMergeNotImplemented)

	after, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, models.Conflict, after.Status)
	assert.Equal(t, before.FailedAttempts, after.FailedAttempts)
	assert.Equal(t, "local-v2", loadLocal(t, local, "doc1").Data)
	assert.Equal(t, "remote-v2", remoteData(t, remote, "doc1"))
}

func TestStateSyncService_ResolveConflict_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unregistered id", func(t *testing.T) {
		svc, _, _ := newTestEngine(t)
		err := svc.ResolveConflict(ctx, "missing", models.KeepLocal)
		assert.ErrorIs(t, err, ErrStateNotFound)
	})

	t.Run("no remote provider", func(t *testing.T) {
		svc := NewStateSyncService(store.NewMemoryStorage(), nil, logger.Nop())
		svc.Register(ctx, "doc1")
		assert.ErrorIs(t, svc.ResolveConflict(ctx, "doc1", models.KeepLocal), ErrNoRemoteProvider)
	})

	t.Run("invalid policy", func(t *testing.T) {
		svc, _, _ := newTestEngine(t)
		svc.Register(ctx, "doc1")
		assert.ErrorIs(t, svc.ResolveConflict(ctx, "doc1", "newest"), ErrInvalidConflictResolution)
	})

	t.Run("keep-local without local copy", func(t *testing.T) {
		svc, _, remote := newTestEngine(t)
		_, err := remote.Push(ctx, "doc1", models.StoredState{Data: "r"})
		require.NoError(t, err)
		svc.Register(ctx, "doc1")
		assert.ErrorIs(t, svc.ResolveConflict(ctx, "doc1", models.KeepLocal), ErrLocalStateMissing)
	})

	t.Run("keep-remote without remote copy", func(t *testing.T) {
		svc, local, _ := newTestEngine(t)
		saveLocal(t, local, "doc1", "l")
		svc.Register(ctx, "doc1")
		assert.ErrorIs(t, svc.ResolveConflict(ctx, "doc1", models.KeepRemote), ErrRemoteStateMissing)
	})
}

// ── Metadata persistence ─────────────────────────────────────────────────────

func TestStateSyncService_PersistsMetadata(t *testing.T) {
	local := store.NewMemoryStorage()
	remote := adapter.NewMemoryRemoteProvider()
	ctx := context.Background()

	svc := NewStateSyncService(local, remote, logger.Nop(), WithMetadataStore(local))
	saveLocal(t, local, "doc1", "v1")
	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	svc.Register(ctx, "doc2")

	stored, err := local.LoadAllMetadata(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, models.Synced, stored["doc1"].Status)
	assert.Equal(t, models.NeverSynced, stored["doc2"].Status)

	svc.Unregister(ctx, "doc2")
	stored, err = local.LoadAllMetadata(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	// новый процесс поднимает метаданные из хранилища
	restored := NewStateSyncService(local, remote, logger.Nop(), WithMetadataStore(local))
	n, err := restored.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.Synced, restored.GetStatus(ctx, "doc1"))
}

func TestStateSyncService_Restore_InterruptedSync(t *testing.T) {
	local := store.NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, local.SaveMetadata(ctx, "doc1", models.SyncMetadata{Status: models.Syncing}))

	svc := NewStateSyncService(local, adapter.NewMemoryRemoteProvider(), logger.Nop(), WithMetadataStore(local))
	n, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	meta, ok := svc.GetMetadata(ctx, "doc1")
	require.True(t, ok)
	assert.Equal(t, models.SyncFailed, meta.Status)
	assert.Equal(t, uint32(1), meta.FailedAttempts)
}

func TestStateSyncService_Restore_FromFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	ctx := context.Background()
	remote := adapter.NewMemoryRemoteProvider()

	local, err := store.NewFileStorage(path)
	require.NoError(t, err)
	svc := NewStateSyncService(local, remote, logger.Nop(), WithMetadataStore(local))

	saveLocal(t, local, "doc1", "v1")
	svc.MarkChanged(ctx, "doc1")
	status, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, models.Synced, status)
	svc.MarkChanged(ctx, "doc2")

	// новый процесс: файл открывается заново, метаданные восстанавливаются
	reopened, err := store.NewFileStorage(path)
	require.NoError(t, err)
	restored := NewStateSyncService(reopened, remote, logger.Nop(), WithMetadataStore(reopened))

	n, err := restored.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, models.Synced, restored.GetStatus(ctx, "doc1"))
	assert.Equal(t, models.LocalPending, restored.GetStatus(ctx, "doc2"))

	meta, ok := restored.GetMetadata(ctx, "doc1")
	require.True(t, ok)
	require.NotNil(t, meta.RemoteVersion)
	assert.Equal(t, uint64(1), *meta.RemoteVersion)
}

func TestStateSyncService_Restore_WithoutStore(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	n, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStateSyncService_Restore_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockSyncMetadataRepository(ctrl)
	repo.EXPECT().LoadAllMetadata(gomock.Any()).Return(nil, assert.AnError)

	svc := NewStateSyncService(store.NewMemoryStorage(), nil, logger.Nop(), WithMetadataStore(repo))
	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStateSyncService_Snapshot_IsCopy(t *testing.T) {
	svc, local, _ := newTestEngine(t)
	ctx := context.Background()

	saveLocal(t, local, "doc1", "v1")
	_, err := svc.Sync(ctx, "doc1")
	require.NoError(t, err)

	snapshot := svc.Snapshot(ctx)
	require.Contains(t, snapshot, models.StateID("doc1"))
	*snapshot["doc1"].RemoteVersion = 42

	meta, _ := svc.GetMetadata(ctx, "doc1")
	assert.Equal(t, uint64(1), *meta.RemoteVersion)
}
