package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the board server
//	-m string   gateway mode: remote or local
//	-j int      job id
//	-t string   access token
//	-l string   local SQLite database path
//	-f string   local directory for uploaded files
//	-i int      reconcile interval in seconds (0 = off)
//	-rollback   revert optimistic changes the gateway rejects
//	-timeout int  request timeout in seconds (0 = none)
//	-v string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-m", "-j", "-t", "-l", "-f", "-i", "-timeout", "-v"},
		"-rollback")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "gateway mode (remote, local)")
	fs.Int64Var(&cfg.JobID, "j", cfg.JobID, "job id")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local database path")
	fs.StringVar(&cfg.FilesDir, "f", cfg.FilesDir, "local files directory")
	reconcile := fs.Int("i", int(cfg.ReconcileInterval.Seconds()), "reconcile interval (in seconds, 0 = off)")
	fs.BoolVar(&cfg.Rollback, "rollback", cfg.Rollback, "revert optimistic changes on failure")
	timeout := fs.Int("timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.ReconcileInterval = time.Duration(*reconcile) * time.Second
		case "timeout":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
