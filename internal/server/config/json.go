package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophfolio/internal/flagx"
)

// JsonConfig is the on-disk shape of the backend config file. Absent keys
// keep their defaults.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDSN      string `json:"database_dsn"`
	SeedFile         string `json:"seed_file"`
	LogBackend       string `json:"log_backend"`
	LogFormat        string `json:"log_format"`
	LogLevel         string `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, kv := range []struct {
		dst *string
		v   string
	}{
		{&cfg.EndpointAddrGRPC, jc.EndpointAddrGRPC},
		{&cfg.DatabaseDSN, jc.DatabaseDSN},
		{&cfg.SeedFile, jc.SeedFile},
		{&cfg.LogBackend, jc.LogBackend},
		{&cfg.LogFormat, jc.LogFormat},
		{&cfg.LogLevel, jc.LogLevel},
	} {
		if kv.v != "" {
			*kv.dst = kv.v
		}
	}
	return nil
}
