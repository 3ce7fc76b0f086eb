package config

import (
	"fmt"
	"os"
	"time"
)

// Repository kinds.
const (
	RepositorySample = "sample"
	RepositoryGRPC   = "grpc"
	RepositoryS3     = "s3"
)

// Config holds runtime settings for the portfolio manager CLI.
//
// Durations are time.Duration values; in JSON they are written as Go
// duration strings ("750ms", "3s").
type Config struct {
	// Project source: "sample", "grpc" or "s3".
	Repository string

	ServerEndpointAddr  string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration

	SampleDelay time.Duration

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	// CachePath is the SQLite snapshot file used to serve the last fetched
	// portfolio while the remote source is unreachable. Empty disables it.
	CachePath string

	// Owner identity: a plain owner id, or a session token verified with
	// TokenSecret when the secret is set.
	OwnerID      string
	ProfileToken string
	TokenSecret  string

	LogBackend string
	LogFormat  string
	LogLevel   string

	// AssumeYes answers delete confirmations without prompting.
	AssumeYes bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Repository = RepositorySample
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 12 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.SampleDelay = time.Second
	c.S3Region = "us-east-1"
	c.S3Bucket = "portfolios"
	c.CachePath = ".gophfolio/snapshots.db"
	c.LogBackend = "slog"
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	switch c.Repository {
	case RepositorySample, RepositoryGRPC, RepositoryS3:
	default:
		return fmt.Errorf("unknown repository %q (want sample, grpc or s3)", c.Repository)
	}
	if c.Repository == RepositoryS3 && c.S3Bucket == "" {
		return fmt.Errorf("s3 repository needs a bucket")
	}
	if c.ProfileToken != "" && c.TokenSecret == "" {
		return fmt.Errorf("profile token given without token secret")
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then command-line flags. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
