package config

import (
	"fmt"
	"time"
)

// ServerApp holds the token settings of the sync server.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	HashKey       string

	// IssueTokenFor, when set, makes the server print a token and exit.
	IssueTokenFor string
}

// ServerConfig is the sync server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage DB
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			HashKey:       cfg.App.HashKey,
			IssueTokenFor: cfg.App.IssueTokenFor,
		},
		Server:  cfg.Server,
		Storage: cfg.Storage.DB,
	}

	if err := serverCfg.validate(); err != nil {
		return nil, err
	}
	return serverCfg, nil
}
