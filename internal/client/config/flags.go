package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-r string   project source: sample, grpc or s3
//	-a string   backend gRPC address (grpc source)
//	-i int      backend reachability check interval, seconds
//	-delay dur  simulated latency of the sample source
//	-bucket s   S3 bucket (s3 source)
//	-endpoint s S3-compatible endpoint URL
//	-cache s    snapshot database path; empty disables offline fallback
//	-o string   owner id
//	-t string   session token (requires token secret)
//	-log s      log backend: slog or zap
//	-level s    minimum log level: debug, info, warn or error
//	-y          delete without asking
//
// Only these flags are considered; -c/-config is handled by parseJSON.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-r", "-a", "-i", "-delay", "-bucket", "-endpoint", "-cache", "-o", "-t", "-log", "-level", "-y",
	})

	fs := flag.NewFlagSet("gophfolio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Repository, "r", cfg.Repository, "project source: sample, grpc or s3")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the backend")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.SampleDelay, "delay", cfg.SampleDelay, "sample source latency")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "endpoint", cfg.S3BaseEndpoint, "S3 endpoint URL")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "snapshot database path")
	fs.StringVar(&cfg.OwnerID, "o", cfg.OwnerID, "owner id")
	fs.StringVar(&cfg.ProfileToken, "t", cfg.ProfileToken, "session token")
	fs.StringVar(&cfg.LogBackend, "log", cfg.LogBackend, "log backend: slog or zap")
	fs.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "minimum log level")
	fs.BoolVar(&cfg.AssumeYes, "y", cfg.AssumeYes, "confirm deletes without asking")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
