// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveState = `
		INSERT INTO states (
			state_id,
			tier,
			type_name,
			version,
			data,
			created_at,
			modified_at,
			content_hash,
			custom
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (state_id) DO UPDATE SET
			tier         = excluded.tier,
			type_name    = excluded.type_name,
			version      = excluded.version,
			data         = excluded.data,
			created_at   = excluded.created_at,
			modified_at  = excluded.modified_at,
			content_hash = excluded.content_hash,
			custom       = excluded.custom;`

	loadState = `
		SELECT
			state_id,
			tier,
			type_name,
			version,
			data,
			created_at,
			modified_at,
			content_hash,
			custom
		FROM states
		WHERE state_id = $1;`

	deleteState = `DELETE FROM states WHERE state_id = $1;`

	existsState = `SELECT EXISTS (SELECT 1 FROM states WHERE state_id = $1);`

	listStates = `SELECT state_id FROM states ORDER BY state_id;`

	clearStates = `DELETE FROM states;`

	saveSyncMetadata = `
		INSERT INTO sync_metadata (
			state_id,
			status,
			last_synced_at,
			local_version,
			remote_version,
			synced_hash,
			failed_attempts,
			last_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (state_id) DO UPDATE SET
			status          = excluded.status,
			last_synced_at  = excluded.last_synced_at,
			local_version   = excluded.local_version,
			remote_version  = excluded.remote_version,
			synced_hash     = excluded.synced_hash,
			failed_attempts = excluded.failed_attempts,
			last_error      = excluded.last_error;`

	loadAllSyncMetadata = `
		SELECT
			state_id,
			status,
			last_synced_at,
			local_version,
			remote_version,
			synced_hash,
			failed_attempts,
			last_error
		FROM sync_metadata;`

	deleteSyncMetadata = `DELETE FROM sync_metadata WHERE state_id = $1;`
)
