package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophfolio/internal/flagx"
	"github.com/dmitrijs2005/gophfolio/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys leave the
// corresponding Config field untouched.
type JsonConfig struct {
	Repository          string          `json:"repository"`
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SampleDelay         *timex.Duration `json:"sample_delay"`
	S3Region            string          `json:"s3_region"`
	S3Bucket            string          `json:"s3_bucket"`
	S3BaseEndpoint      string          `json:"s3_base_endpoint"`
	S3AccessKey         string          `json:"s3_access_key"`
	S3SecretKey         string          `json:"s3_secret_key"`
	S3Prefix            string          `json:"s3_prefix"`
	CachePath           *string         `json:"cache_path"`
	OwnerID             string          `json:"owner_id"`
	ProfileToken        string          `json:"profile_token"`
	TokenSecret         string          `json:"token_secret"`
	LogBackend          string          `json:"log_backend"`
	LogFormat           string          `json:"log_format"`
	LogLevel            string          `json:"log_level"`
	AssumeYes           *bool           `json:"assume_yes"`
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

	setString(&cfg.Repository, jc.Repository)
	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SampleDelay != nil {
		cfg.SampleDelay = jc.SampleDelay.Duration
	}
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	if jc.CachePath != nil {
		cfg.CachePath = *jc.CachePath
	}
	setString(&cfg.OwnerID, jc.OwnerID)
	setString(&cfg.ProfileToken, jc.ProfileToken)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.AssumeYes != nil {
		cfg.AssumeYes = *jc.AssumeYes
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
