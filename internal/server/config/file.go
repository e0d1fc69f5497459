package config

import (
	"github.com/dmitrijs2005/hireboard/internal/flagx"
	"github.com/dmitrijs2005/hireboard/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration, in JSON or
// YAML. Durations accept strings such as "15m" or integer nanoseconds.
// Fields left out of the file keep their current value.
type FileConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        string         `json:"secret_key" yaml:"secret_key"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	PublicBaseURL    string         `json:"public_base_url" yaml:"public_base_url"`
	PresignExpiry    timex.Duration `json:"presign_expiry" yaml:"presign_expiry"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
	SeedJobTitle     string         `json:"seed_job" yaml:"seed_job"`
}

// parseFile loads the file named by -c/-config, if any, into config.
// It panics when the file cannot be read or parsed.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeConfigFile(path, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.PublicBaseURL, c.PublicBaseURL)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.SeedJobTitle, c.SeedJobTitle)
	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
