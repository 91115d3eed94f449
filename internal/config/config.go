// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the sync server. It is populated by merging values from
// environment variables, command-line flags, an optional JSON file and
// finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, integrity and identity settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local store (client) and database (server) settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses of the sync server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter selects and configures the remote provider used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds intervals of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Metrics holds the Prometheus exposition settings of the client.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args are the positional command-line arguments left after flag parsing.
	Args []string
}

// App holds application-level values that control authentication and
// request integrity.
type App struct {
	// TokenSignKey is the HMAC key used by the server to sign and verify JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Token is the bearer token the client presents to the sync server.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// HashKey is the HMAC key of the HashSHA256 request header.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// IssueTokenFor makes the server print a token for the named owner and
	// exit instead of serving.
	IssueTokenFor string `env:"ISSUE_TOKEN_FOR"`
}

// Storage groups the configuration of every persistence backend.
type Storage struct {
	// Kind selects the client's local storage: sqlite, file or memory.
	// Env: STORAGE_KIND
	Kind string `env:"KIND"`

	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings.
	Files Files `envPrefix:"FILES_"`

	// Passphrase enables at-rest encryption of secure and encrypted tiers.
	// Env: STORAGE_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`
}

// DB holds connection settings for a relational database.
type DB struct {
	// DSN is a PostgreSQL connection string on the server and a SQLite file
	// path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system storage settings.
type Files struct {
	// Path is the JSON document backing the file storage.
	// Env: STORAGE_FILES_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the host:port the HTTP API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port the gRPC API listens on.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter selects the remote provider of the client.
type Adapter struct {
	// Kind is one of http, grpc, minio or memory.
	// Env: ADAPTER_KIND
	Kind string `env:"KIND"`

	// HTTPAddress is the base URL of the sync server's HTTP API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port of the sync server's gRPC API.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Minio configures the object storage provider.
	Minio Minio `envPrefix:"MINIO_"`
}

// Minio holds S3-compatible object storage settings.
type Minio struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Sync holds engine settings.
type Sync struct {
	// ConflictPolicy is the default conflict resolution: keep-local,
	// keep-remote, fail or merge.
	// Env: SYNC_CONFLICT_POLICY
	ConflictPolicy string `env:"CONFLICT_POLICY"`

	// EventCapacity is the number of events retained by the event bus.
	// Env: SYNC_EVENT_CAPACITY
	EventCapacity int `env:"EVENT_CAPACITY"`
}

// Workers holds the intervals of the client background jobs.
type Workers struct {
	// SyncInterval is the period of the SyncAll job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PollInterval is the period of the remote change poller.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Metrics holds the client's Prometheus exposition settings.
type Metrics struct {
	// Address is the host:port /metrics is served on. Empty disables it.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources. For every field the first non-zero value wins, in
// this order:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
