package config

import (
	"github.com/dmitrijs2005/hireboard/internal/flagx"
	"github.com/dmitrijs2005/hireboard/internal/timex"
)

// FileConfig is the on-disk shape of the CLI configuration, in JSON or
// YAML. Durations accept strings like "30s" or integer nanoseconds.
type FileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	Mode               string         `json:"mode" yaml:"mode"`
	JobID              int64          `json:"job_id" yaml:"job_id"`
	AccessToken        string         `json:"access_token" yaml:"access_token"`
	LocalDBPath        string         `json:"local_db_path" yaml:"local_db_path"`
	FilesDir           string         `json:"files_dir" yaml:"files_dir"`
	ReconcileInterval  timex.Duration `json:"reconcile_interval" yaml:"reconcile_interval"`
	Rollback           *bool          `json:"rollback" yaml:"rollback"`
	RequestTimeout     timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Fields missing
// from the file keep their value. It panics on read or parse errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	overlay(&cfg.Mode, fc.Mode)
	overlay(&cfg.AccessToken, fc.AccessToken)
	overlay(&cfg.LocalDBPath, fc.LocalDBPath)
	overlay(&cfg.FilesDir, fc.FilesDir)
	overlay(&cfg.LogLevel, fc.LogLevel)
	if fc.JobID != 0 {
		cfg.JobID = fc.JobID
	}
	if fc.ReconcileInterval.Duration > 0 {
		cfg.ReconcileInterval = fc.ReconcileInterval.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.Rollback != nil {
		cfg.Rollback = *fc.Rollback
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
