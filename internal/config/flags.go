package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args. Positional arguments
// left after the flags end up in StructuredConfig.Args.
//
// Flags:
//
//	-a server HTTP address in format [host]:[port]
//	-grpc-address server gRPC address in format [host]:[port]
//	-d database DSN
//	-f file storage path
//	-storage local storage kind (sqlite, file, memory)
//	-passphrase at-rest encryption passphrase
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-token bearer token presented by the client
//	-issue-token print a token for the given owner and exit
//	-hash-key HashSHA256 header key
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-adapter remote provider kind (http, grpc, minio, memory)
//	-remote sync server base URL
//	-remote-grpc sync server gRPC address
//	-minio-endpoint, -minio-access-key, -minio-secret-key, -minio-bucket, -minio-ssl
//	-policy default conflict resolution
//	-events event bus capacity
//	-sync-interval period of the sync job
//	-poll-interval period of the remote poller
//	-metrics-address client /metrics listen address
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Files.Path, "f", "", "File storage path")
	fs.StringVar(&cfg.Storage.Kind, "storage", "", "Local storage kind")
	fs.StringVar(&cfg.Storage.Passphrase, "passphrase", "", "At-rest encryption passphrase")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&cfg.App.Token, "token", "", "Bearer token")
	fs.StringVar(&cfg.App.IssueTokenFor, "issue-token", "", "Print a token for the given owner and exit")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Security hash key")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Adapter.Kind, "adapter", "", "Remote provider kind")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "remote", "", "Sync server base URL")
	fs.StringVar(&cfg.Adapter.GRPCAddress, "remote-grpc", "", "Sync server gRPC address")
	fs.StringVar(&cfg.Adapter.Minio.Endpoint, "minio-endpoint", "", "Object storage endpoint")
	fs.StringVar(&cfg.Adapter.Minio.AccessKey, "minio-access-key", "", "Object storage access key")
	fs.StringVar(&cfg.Adapter.Minio.SecretKey, "minio-secret-key", "", "Object storage secret key")
	fs.StringVar(&cfg.Adapter.Minio.Bucket, "minio-bucket", "", "Object storage bucket")
	fs.BoolVar(&cfg.Adapter.Minio.UseSSL, "minio-ssl", false, "Use TLS for object storage")
	fs.StringVar(&cfg.Sync.ConflictPolicy, "policy", "", "Default conflict resolution")
	fs.IntVar(&cfg.Sync.EventCapacity, "events", 0, "Event bus capacity")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Sync job period")
	fs.DurationVar(&cfg.Workers.PollInterval, "poll-interval", 0, "Remote poller period")
	fs.StringVar(&cfg.Metrics.Address, "metrics-address", "", "Metrics listen address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()
	cfg.Adapter.RequestTimeout = cfg.Server.RequestTimeout
	cfg.Args = fs.Args()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(strings.Trim(host, "[]")) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
