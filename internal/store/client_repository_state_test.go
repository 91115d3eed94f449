package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var stateColumns = []string{
	"state_id", "tier", "type_name", "version", "data",
	"created_at", "modified_at", "content_hash", "custom",
}

var metadataColumns = []string{
	"state_id", "status", "last_synced_at", "local_version",
	"remote_version", "synced_hash", "failed_attempts", "last_error",
}

func TestStateRepository_Save(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	state := models.StoredState{
		Metadata: models.StateMetadata{
			ID:          "doc1",
			TypeName:    "note",
			Tier:        models.TierSyncable,
			Version:     2,
			CreatedAt:   now,
			ModifiedAt:  now,
			ContentHash: 1<<63 + 5,
			Custom:      map[string]string{"k": "v"},
		},
		Data: "payload",
	}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "exec error", execErr: errors.New("disk full"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO states")).
				WithArgs("doc1", "syncable", "note", int64(2), "payload", now, now, int64(-9223372036854775803), `{"k":"v"}`)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Save(testContext(), state)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStateRepository_Load(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM states")).
			WithArgs("doc1").
			WillReturnRows(sqlmock.NewRows(stateColumns).
				AddRow("doc1", "encrypted", "note", int64(1), "data", now, now, int64(-1), `{"a":"b"}`))

		got, err := repo.Load(testContext(), "doc1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.StateID("doc1"), got.Metadata.ID)
		assert.Equal(t, models.TierEncrypted, got.Metadata.Tier)
		assert.Equal(t, uint32(1), got.Metadata.Version)
		assert.Equal(t, uint64(1<<64-1), got.Metadata.ContentHash)
		assert.Equal(t, map[string]string{"a": "b"}, got.Metadata.Custom)
		assert.Equal(t, "data", got.Data)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM states")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(stateColumns))

		got, err := repo.Load(testContext(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM states")).
			WillReturnError(errors.New("locked"))

		_, err := repo.Load(testContext(), "doc1")
		assert.ErrorIs(t, err, ErrScanningRow)
	})

	t.Run("corrupted custom", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM states")).
			WillReturnRows(sqlmock.NewRows(stateColumns).
				AddRow("doc1", "local", "note", int64(1), "data", now, now, int64(0), `{not json`))

		_, err := repo.Load(testContext(), "doc1")
		assert.ErrorIs(t, err, ErrInvalidStoredState)
	})
}

func TestStateRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing", affected: 1, want: true},
		{name: "absent", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

			mock.ExpectExec(regexp.QuoteMeta(deleteState)).
				WithArgs("doc1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.Delete(testContext(), "doc1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateRepository_ExistsListClear(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStateRepository(newDBFromSQL(db), logger.Nop())
	ctx := testContext()

	mock.ExpectQuery(regexp.QuoteMeta(existsState)).
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(listStates)).
		WillReturnRows(sqlmock.NewRows([]string{"state_id"}).AddRow("a").AddRow("b"))
	mock.ExpectExec(regexp.QuoteMeta(clearStates)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	exists, err := repo.Exists(ctx, "doc1")
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StateID{"a", "b"}, ids)

	require.NoError(t, repo.Clear(ctx))
	assert.Equal(t, "sqlite", repo.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_ListScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listStates)).
		WillReturnRows(sqlmock.NewRows([]string{"state_id"}).
			AddRow("a").
			RowError(0, errors.New("broken page")))

	_, err := repo.List(testContext())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestStateRepository_SaveMetadata(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

	meta := models.NewSyncMetadata()
	meta.MarkSynced(3, 77)
	meta.MarkLocalPending()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_metadata")).
		WithArgs("doc1", int64(models.LocalPending), sqlmock.AnyArg(), int64(1),
			sql.NullInt64{Int64: 3, Valid: true}, sql.NullInt64{Int64: 77, Valid: true},
			int64(0), sql.NullString{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveMetadata(testContext(), "doc1", meta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_LoadAllMetadata(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStateRepository(newDBFromSQL(db), logger.Nop())
	synced := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_metadata")).
		WillReturnRows(sqlmock.NewRows(metadataColumns).
			AddRow("a", int64(models.Synced), synced, int64(4), int64(2), int64(-2), int64(0), nil).
			AddRow("b", int64(models.SyncFailed), nil, int64(1), nil, nil, int64(3), "timeout"))

	got, err := repo.LoadAllMetadata(testContext())
	require.NoError(t, err)
	require.Len(t, got, 2)

	a := got["a"]
	assert.Equal(t, models.Synced, a.Status)
	require.NotNil(t, a.LastSyncedAt)
	assert.True(t, synced.Equal(*a.LastSyncedAt))
	assert.Equal(t, uint64(4), a.LocalVersion)
	assert.Equal(t, uint64(2), *a.RemoteVersion)
	assert.Equal(t, uint64(1<<64-2), *a.SyncedHash)
	assert.Nil(t, a.LastError)

	b := got["b"]
	assert.Equal(t, models.SyncFailed, b.Status)
	assert.Nil(t, b.LastSyncedAt)
	assert.Nil(t, b.RemoteVersion)
	assert.Equal(t, uint32(3), b.FailedAttempts)
	require.NotNil(t, b.LastError)
	assert.Equal(t, "timeout", *b.LastError)
}

func TestStateRepository_DeleteMetadata(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStateRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteSyncMetadata)).
		WithArgs("doc1").
		WillReturnError(errors.New("readonly"))

	err := repo.DeleteMetadata(testContext(), "doc1")
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
