package config

import "time"

// Default values applied when no source sets a field.
const (
	DefaultStorageKind    = StorageSQLite
	DefaultAdapterKind    = AdapterHTTP
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
	DefaultPollInterval   = time.Minute
	DefaultTokenDuration  = 24 * time.Hour
	DefaultTokenIssuer    = "go-state-sync"
	DefaultConflictPolicy = "fail"
	DefaultEventCapacity  = 100
	DefaultClientDSN      = "state.db"
)

// Client local storage kinds.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Client remote provider kinds.
const (
	AdapterHTTP   = "http"
	AdapterGRPC   = "grpc"
	AdapterMinio  = "minio"
	AdapterMemory = "memory"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			Kind: DefaultStorageKind,
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			Kind:           DefaultAdapterKind,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			ConflictPolicy: DefaultConflictPolicy,
			EventCapacity:  DefaultEventCapacity,
		},
		Workers: Workers{
			SyncInterval: DefaultSyncInterval,
			PollInterval: DefaultPollInterval,
		},
	}
}
