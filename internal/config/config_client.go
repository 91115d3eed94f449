package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-state-sync/models"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key of the HashSHA256 header. Empty disables it.
	HashKey string
	// Token is the bearer token presented to the sync server.
	Token string
}

// ClientAdapter holds the remote provider settings.
type ClientAdapter struct {
	Kind           string
	HTTPAddress    string
	GRPCAddress    string
	RequestTimeout time.Duration
	Minio          Minio
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	Kind       string
	DB         ClientDB
	FilePath   string
	Passphrase string
}

// ClientSync holds engine settings.
type ClientSync struct {
	ConflictPolicy models.ConflictResolution
	EventCapacity  int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the SyncAll job runs.
	SyncInterval time.Duration
	// PollInterval defines how often remote versions are polled.
	PollInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers

	// MetricsAddress is the listen address of /metrics, empty to disable.
	MetricsAddress string

	// Args holds the subcommand and its arguments.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	policy, err := models.ParseConflictResolution(cfg.Sync.ConflictPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyncConfigs, err)
	}

	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = DefaultClientDSN
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Token:   cfg.App.Token,
		},
		Adapter: ClientAdapter{
			Kind:           cfg.Adapter.Kind,
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Minio:          cfg.Adapter.Minio,
		},
		Storage: ClientStorage{
			Kind:       cfg.Storage.Kind,
			DB:         ClientDB{DSN: dsn},
			FilePath:   cfg.Storage.Files.Path,
			Passphrase: cfg.Storage.Passphrase,
		},
		Sync: ClientSync{
			ConflictPolicy: policy,
			EventCapacity:  cfg.Sync.EventCapacity,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			PollInterval: cfg.Workers.PollInterval,
		},
		MetricsAddress: cfg.Metrics.Address,
		Args:           cfg.Args,
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}
