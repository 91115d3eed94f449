package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/crypto"
	"github.com/MKhiriev/go-state-sync/internal/logger"
)

// ClientStorages groups the client-side storage into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// States holds the serialized states and the engine's sync metadata.
	States ClientStore

	db *DB
}

// NewClientStorages initialises the client storage layer selected by
// cfg.Kind. The SQLite engine is migrated before use. When a passphrase is
// configured the store is wrapped so secure and encrypted tiers are sealed
// at rest.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("kind", cfg.Kind).Msg("creating client storages...")

	storages := &ClientStorages{}

	switch cfg.Kind {
	case config.StorageSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.db = db
		storages.States = NewStateRepository(db, log)
	case config.StorageFile:
		fs, err := NewFileStorage(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		storages.States = fs
	case config.StorageMemory:
		storages.States = NewMemoryStorage()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageKind, cfg.Kind)
	}

	if cfg.Passphrase != "" {
		c, err := crypto.NewPassphraseCipher(cfg.Passphrase)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("cipher error: %w", err)
		}
		storages.States = NewEncryptedStorage(storages.States, c)
	}

	return storages, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
