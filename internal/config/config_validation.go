// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks settings shared by the client and the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.EventCapacity < 0 {
		return fmt.Errorf("%w: negative event capacity", ErrInvalidSyncConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.Kind {
	case StorageSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: sqlite storage needs a DSN", ErrInvalidStorageConfigs)
		}
	case StorageFile:
		if cfg.Storage.FilePath == "" {
			return fmt.Errorf("%w: file storage needs a path", ErrInvalidStorageConfigs)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: unknown storage kind %q", ErrInvalidStorageConfigs, cfg.Storage.Kind)
	}

	switch cfg.Adapter.Kind {
	case AdapterHTTP:
		if cfg.Adapter.HTTPAddress == "" {
			return fmt.Errorf("%w: http adapter needs an address", ErrInvalidAdapterConfigs)
		}
	case AdapterGRPC:
		if cfg.Adapter.GRPCAddress == "" {
			return fmt.Errorf("%w: grpc adapter needs an address", ErrInvalidAdapterConfigs)
		}
	case AdapterMinio:
		if cfg.Adapter.Minio.Endpoint == "" || cfg.Adapter.Minio.Bucket == "" {
			return fmt.Errorf("%w: minio adapter needs an endpoint and a bucket", ErrInvalidAdapterConfigs)
		}
	case AdapterMemory:
	default:
		return fmt.Errorf("%w: unknown adapter kind %q", ErrInvalidAdapterConfigs, cfg.Adapter.Kind)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.PollInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" && cfg.App.IssueTokenFor == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DSN == "" && cfg.App.IssueTokenFor == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
