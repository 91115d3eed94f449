package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

// maxAttempts bounds retries of statements that failed with a retryable
// error.
const maxAttempts = 3

// remoteStateRepository is the PostgreSQL-backed implementation of
// [RemoteStateRepository]. Every state is scoped to an owner, the subject
// of the caller's token.
type remoteStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewRemoteStateRepository constructs a [RemoteStateRepository] backed by db.
func NewRemoteStateRepository(db *DB, logger *logger.Logger) RemoteStateRepository {
	return &remoteStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *remoteStateRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *remoteStateRepository) Get(ctx context.Context, owner string, id models.StateID) (models.RemoteState, error) {
	log := logger.FromContext(ctx)

	var (
		state models.RemoteState
		ver   int64
		hash  int64
	)
	err := r.DB.QueryRowContext(ctx, getRemoteState, owner, id.String()).
		Scan(&state.Data, &ver, &hash, &state.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteState{}, ErrStateNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "remoteStateRepository.Get").
			Str("owner", owner).
			Str("state_id", id.String()).
			Msg("failed to scan remote state row")
		return models.RemoteState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state.Version = uint64(ver)
	state.ContentHash = uint64(hash)
	state.ModifiedAt = state.ModifiedAt.UTC()
	return state, nil
}

func (r *remoteStateRepository) Put(ctx context.Context, owner string, id models.StateID, data string, hash uint64, modifiedAt time.Time) (uint64, error) {
	log := logger.FromContext(ctx)

	var version int64
	err := r.retry(ctx, func() error {
		return r.DB.QueryRowContext(ctx, putRemoteState,
			owner,
			id.String(),
			data,
			int64(hash),
			modifiedAt.UTC(),
		).Scan(&version)
	})
	if err != nil {
		log.Err(err).
			Str("func", "remoteStateRepository.Put").
			Str("owner", owner).
			Str("state_id", id.String()).
			Msg("failed to execute upsert for remote state")
		return 0, fmt.Errorf("%w: failed to save remote state (state_id=%s): %w", ErrExecutingStatement, id, err)
	}

	return uint64(version), nil
}

func (r *remoteStateRepository) Delete(ctx context.Context, owner string, id models.StateID) (bool, error) {
	log := logger.FromContext(ctx)

	var result sql.Result
	err := r.retry(ctx, func() (err error) {
		result, err = r.DB.ExecContext(ctx, deleteRemoteState, owner, id.String())
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "remoteStateRepository.Delete").
			Str("owner", owner).
			Str("state_id", id.String()).
			Msg("failed to execute delete for remote state")
		return false, fmt.Errorf("%w: failed to delete remote state (state_id=%s): %w", ErrExecutingStatement, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected (state_id=%s): %w", id, err)
	}

	return rowsAffected > 0, nil
}

func (r *remoteStateRepository) List(ctx context.Context, req models.ListStatesRequest) ([]models.StateID, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRemoteStatesQuery(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "remoteStateRepository.List").
			Str("owner", req.Owner).
			Msg("failed to execute query for listing remote states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]models.StateID, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Err(err).
				Str("func", "remoteStateRepository.List").
				Str("owner", req.Owner).
				Msg("failed to scan remote state id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, models.StateID(id))
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "remoteStateRepository.List").
			Str("owner", req.Owner).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

func (r *remoteStateRepository) GetVersion(ctx context.Context, owner string, id models.StateID) (uint64, bool, error) {
	var version int64
	err := r.DB.QueryRowContext(ctx, getRemoteStateVersion, owner, id.String()).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "remoteStateRepository.GetVersion").
			Str("owner", owner).
			Str("state_id", id.String()).
			Msg("failed to query remote state version")
		return 0, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return uint64(version), true, nil
}

// retry runs fn until it succeeds, fails with a non-retryable error or
// maxAttempts is reached.
func (r *remoteStateRepository) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil || !r.IsRetryable(err) || attempt == maxAttempts {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "remoteStateRepository.retry").
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return err
}
