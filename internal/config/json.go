package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Token         string   `json:"token"`
		HashKey       string   `json:"hash_key"`
	} `json:"app,omitempty"`

	Storage struct {
		Kind string `json:"kind"`
		DB   struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Files struct {
			Path string `json:"path"`
		} `json:"files,omitempty"`
		Passphrase string `json:"passphrase"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		Kind           string   `json:"kind"`
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Minio          Minio    `json:"minio,omitempty"`
	} `json:"adapter,omitempty"`

	Sync struct {
		ConflictPolicy string `json:"conflict_policy"`
		EventCapacity  int    `json:"event_capacity"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		PollInterval Duration `json:"poll_interval"`
	} `json:"workers,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Token:         jsonCfg.App.Token,
			HashKey:       jsonCfg.App.HashKey,
		},
		Storage: Storage{
			Kind:       jsonCfg.Storage.Kind,
			DB:         DB{DSN: jsonCfg.Storage.DB.DSN},
			Files:      Files{Path: jsonCfg.Storage.Files.Path},
			Passphrase: jsonCfg.Storage.Passphrase,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Kind:           jsonCfg.Adapter.Kind,
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			GRPCAddress:    jsonCfg.Adapter.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Minio:          jsonCfg.Adapter.Minio,
		},
		Sync: Sync{
			ConflictPolicy: jsonCfg.Sync.ConflictPolicy,
			EventCapacity:  jsonCfg.Sync.EventCapacity,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			PollInterval: time.Duration(jsonCfg.Workers.PollInterval),
		},
		Metrics: Metrics{Address: jsonCfg.Metrics.Address},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
