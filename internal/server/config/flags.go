package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophfolio/internal/flagx"
)

// parseFlags overlays Config with:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-seed path  projects to upsert at startup
//	-log string log backend: slog or zap
//	-format s   log format: text or json
//	-level s    minimum log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-seed", "-log", "-format", "-level"})

	fs := flag.NewFlagSet("gophfolio-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "seed file")
	fs.StringVar(&cfg.LogBackend, "log", cfg.LogBackend, "log backend")
	fs.StringVar(&cfg.LogFormat, "format", cfg.LogFormat, "log format")

	fs.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
