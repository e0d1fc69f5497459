// Package config loads runtime configuration for the HireBoard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config; the format
//     follows the extension.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations are timex.Duration values, either strings like "30s" or integer
// nanoseconds:
//
//	server_endpoint_addr: 127.0.0.1:50051
//	mode: local
//	job_id: 1
//	local_db_path: hireboard.db
//	reconcile_interval: 30s
//	rollback: true
package config
