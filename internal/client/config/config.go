package config

import (
	"fmt"
	"time"
)

// Modes select the board gateway.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Config holds runtime settings for the HireBoard CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the board gRPC endpoint.
//   - Mode: ModeRemote talks to the server, ModeLocal keeps the board in SQLite.
//   - JobID: the job whose board is opened.
//   - AccessToken: token sent with every remote request.
//   - LocalDBPath / FilesDir: SQLite file and upload directory in local mode.
//   - ReconcileInterval: periodic reload of the board; 0 disables it.
//   - Rollback: revert optimistic moves and deletes the gateway rejects.
//   - RequestTimeout: per-request deadline for remote calls; 0 means none.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr string
	Mode               string
	JobID              int64
	AccessToken        string
	LocalDBPath        string
	FilesDir           string
	ReconcileInterval  time.Duration
	Rollback           bool
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Mode = ModeRemote
	c.JobID = 1
	c.AccessToken = ""
	c.LocalDBPath = "hireboard.db"
	c.FilesDir = "files"
	c.ReconcileInterval = 0
	c.Rollback = false
	c.RequestTimeout = 0
	c.LogLevel = "warn"
}

// Validate rejects settings the CLI cannot start with.
func (c *Config) Validate() error {
	if c.Mode != ModeRemote && c.Mode != ModeLocal {
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeRemote, ModeLocal)
	}
	if c.JobID <= 0 {
		return fmt.Errorf("job id must be positive, got %d", c.JobID)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON or YAML file (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
