package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

// stateRepository is the SQLite-backed [ClientStore]. States live in the
// "states" table and the engine's bookkeeping in "sync_metadata".
//
// SQLite has no unsigned 64-bit integers, so content hashes and remote
// versions are stored bit-cast to int64.
type stateRepository struct {
	*DB
	logger *logger.Logger
}

// NewStateRepository constructs a [ClientStore] backed by db.
func NewStateRepository(db *DB, logger *logger.Logger) ClientStore {
	return &stateRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *stateRepository) Name() string {
	return "sqlite"
}

func (s *stateRepository) Save(ctx context.Context, state models.StoredState) error {
	log := logger.FromContext(ctx)
	md := state.Metadata

	custom, err := marshalCustom(md.Custom)
	if err != nil {
		return fmt.Errorf("failed to encode custom attributes (state_id=%s): %w", md.ID, err)
	}

	_, err = s.DB.ExecContext(ctx, saveState,
		md.ID.String(),
		string(md.Tier),
		md.TypeName,
		int64(md.Version),
		state.Data,
		md.CreatedAt.UTC(),
		md.ModifiedAt.UTC(),
		int64(md.ContentHash),
		custom,
	)
	if err != nil {
		log.Err(err).
			Str("func", "stateRepository.Save").
			Str("state_id", md.ID.String()).
			Msg("failed to execute upsert for state")
		return fmt.Errorf("%w: failed to save state (state_id=%s): %w", ErrExecutingStatement, md.ID, err)
	}

	return nil
}

func (s *stateRepository) Load(ctx context.Context, id models.StateID) (*models.StoredState, error) {
	log := logger.FromContext(ctx)

	var (
		state   models.StoredState
		stateID string
		tier    string
		version int64
		hash    int64
		custom  string
	)

	err := s.DB.QueryRowContext(ctx, loadState, id.String()).Scan(
		&stateID,
		&tier,
		&state.Metadata.TypeName,
		&version,
		&state.Data,
		&state.Metadata.CreatedAt,
		&state.Metadata.ModifiedAt,
		&hash,
		&custom,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "stateRepository.Load").
			Str("state_id", id.String()).
			Msg("failed to scan state row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state.Metadata.ID = models.StateID(stateID)
	state.Metadata.Tier = models.PersistenceTier(tier)
	state.Metadata.Version = uint32(version)
	state.Metadata.ContentHash = uint64(hash)
	state.Metadata.CreatedAt = state.Metadata.CreatedAt.UTC()
	state.Metadata.ModifiedAt = state.Metadata.ModifiedAt.UTC()
	if state.Metadata.Custom, err = unmarshalCustom(custom); err != nil {
		log.Err(err).
			Str("func", "stateRepository.Load").
			Str("state_id", id.String()).
			Msg("failed to decode custom attributes")
		return nil, fmt.Errorf("%w: %w", ErrInvalidStoredState, err)
	}

	return &state, nil
}

func (s *stateRepository) Delete(ctx context.Context, id models.StateID) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, deleteState, id.String())
	if err != nil {
		log.Err(err).
			Str("func", "stateRepository.Delete").
			Str("state_id", id.String()).
			Msg("failed to execute delete for state")
		return false, fmt.Errorf("%w: failed to delete state (state_id=%s): %w", ErrExecutingStatement, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected (state_id=%s): %w", id, err)
	}

	return rowsAffected > 0, nil
}

func (s *stateRepository) Exists(ctx context.Context, id models.StateID) (bool, error) {
	var exists bool
	if err := s.DB.QueryRowContext(ctx, existsState, id.String()).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "stateRepository.Exists").
			Str("state_id", id.String()).
			Msg("failed to check state existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

func (s *stateRepository) List(ctx context.Context) ([]models.StateID, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, listStates)
	if err != nil {
		log.Err(err).Str("func", "stateRepository.List").Msg("failed to execute query for listing states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]models.StateID, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Err(err).Str("func", "stateRepository.List").Msg("failed to scan state id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, models.StateID(id))
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "stateRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

func (s *stateRepository) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, clearStates); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "stateRepository.Clear").Msg("failed to clear states")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *stateRepository) SaveMetadata(ctx context.Context, id models.StateID, meta models.SyncMetadata) error {
	var (
		lastSyncedAt  sql.NullTime
		remoteVersion sql.NullInt64
		syncedHash    sql.NullInt64
		lastError     sql.NullString
	)
	if meta.LastSyncedAt != nil {
		lastSyncedAt = sql.NullTime{Time: meta.LastSyncedAt.UTC(), Valid: true}
	}
	if meta.RemoteVersion != nil {
		remoteVersion = sql.NullInt64{Int64: int64(*meta.RemoteVersion), Valid: true}
	}
	if meta.SyncedHash != nil {
		syncedHash = sql.NullInt64{Int64: int64(*meta.SyncedHash), Valid: true}
	}
	if meta.LastError != nil {
		lastError = sql.NullString{String: *meta.LastError, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, saveSyncMetadata,
		id.String(),
		int64(meta.Status),
		lastSyncedAt,
		int64(meta.LocalVersion),
		remoteVersion,
		syncedHash,
		int64(meta.FailedAttempts),
		lastError,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "stateRepository.SaveMetadata").
			Str("state_id", id.String()).
			Msg("failed to execute upsert for sync metadata")
		return fmt.Errorf("%w: failed to save sync metadata (state_id=%s): %w", ErrExecutingStatement, id, err)
	}

	return nil
}

func (s *stateRepository) LoadAllMetadata(ctx context.Context) (map[models.StateID]models.SyncMetadata, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, loadAllSyncMetadata)
	if err != nil {
		log.Err(err).Str("func", "stateRepository.LoadAllMetadata").Msg("failed to execute query for sync metadata")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make(map[models.StateID]models.SyncMetadata)
	for rows.Next() {
		var (
			id             string
			status         int64
			lastSyncedAt   sql.NullTime
			localVersion   int64
			remoteVersion  sql.NullInt64
			syncedHash     sql.NullInt64
			failedAttempts int64
			lastError      sql.NullString
		)
		if err := rows.Scan(&id, &status, &lastSyncedAt, &localVersion, &remoteVersion, &syncedHash, &failedAttempts, &lastError); err != nil {
			log.Err(err).Str("func", "stateRepository.LoadAllMetadata").Msg("failed to scan sync metadata row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		meta := models.SyncMetadata{
			Status:         models.SyncStatus(status),
			LocalVersion:   uint64(localVersion),
			FailedAttempts: uint32(failedAttempts),
		}
		if lastSyncedAt.Valid {
			t := lastSyncedAt.Time.UTC()
			meta.LastSyncedAt = &t
		}
		if remoteVersion.Valid {
			v := uint64(remoteVersion.Int64)
			meta.RemoteVersion = &v
		}
		if syncedHash.Valid {
			h := uint64(syncedHash.Int64)
			meta.SyncedHash = &h
		}
		if lastError.Valid {
			e := lastError.String
			meta.LastError = &e
		}
		result[models.StateID(id)] = meta
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "stateRepository.LoadAllMetadata").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func (s *stateRepository) DeleteMetadata(ctx context.Context, id models.StateID) error {
	if _, err := s.DB.ExecContext(ctx, deleteSyncMetadata, id.String()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "stateRepository.DeleteMetadata").
			Str("state_id", id.String()).
			Msg("failed to delete sync metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func marshalCustom(custom map[string]string) (string, error) {
	if len(custom) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(custom)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalCustom(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var custom map[string]string
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		return nil, err
	}
	return custom, nil
}

