package store

import (
	"database/sql"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/migrations"
)

// DB is a database handle shared by the SQL repositories.
type DB struct {
	*sql.DB
	dialect            string
	migrations         string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the schema belonging to the database's role.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect, db.migrations)
}

// IsRetryable reports whether err is worth retrying against this database.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
