// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/models"
)

const (
	getRemoteState = `
		SELECT data, version, content_hash, modified_at
		FROM remote_states
		WHERE owner = $1 AND state_id = $2;`

	putRemoteState = `
		INSERT INTO remote_states (owner, state_id, data, version, content_hash, modified_at)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (owner, state_id) DO UPDATE SET
			data         = excluded.data,
			version      = remote_states.version + 1,
			content_hash = excluded.content_hash,
			modified_at  = excluded.modified_at
		RETURNING version;`

	deleteRemoteState = `DELETE FROM remote_states WHERE owner = $1 AND state_id = $2;`

	getRemoteStateVersion = `SELECT version FROM remote_states WHERE owner = $1 AND state_id = $2;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListRemoteStatesQuery selects the owner's state ids, optionally
// narrowed to a prefix and capped by a limit.
func buildListRemoteStatesQuery(ctx context.Context, req models.ListStatesRequest) (string, []any, error) {
	q := psql.
		Select("state_id").
		From("remote_states").
		Where(sq.Eq{"owner": req.Owner}).
		OrderBy("state_id")

	if req.Prefix != "" {
		q = q.Where(sq.Like{"state_id": escapeLike(req.Prefix) + "%"})
	}
	if req.Limit > 0 {
		q = q.Limit(req.Limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "buildListRemoteStatesQuery").
			Str("owner", req.Owner).
			Msg("failed to build list query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
