// Package migrations embeds the SQL schema of the client and server stores
// and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migration sets embedded in the binary.
const (
	// ClientSet is the schema of the client's local SQLite store.
	ClientSet = "client"
	// ServerSet is the schema of the sync server's remote-state store.
	ServerSet = "server"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("db is nil")

// Migrate applies every pending migration of set to db. dialect is a goose
// dialect name such as "sqlite3" or "postgres".
func Migrate(db *sql.DB, dialect, set string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, set); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
