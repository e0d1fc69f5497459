package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		start       Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-w", "https://cdn", "-x", "5", "-v", "debug", "-j", "Backend Engineer",
			},
			expected: &Config{
				EndpointAddrGRPC: "127.0.0.1:9090",
				DatabaseDSN:      "db",
				SecretKey:        "secret",
				S3RootUser:       "user",
				S3RootPassword:   "password",
				S3Bucket:         "bucket",
				S3Region:         "us-west-1",
				S3BaseEndpoint:   "http://endpoint",
				PublicBaseURL:    "https://cdn",
				PresignExpiry:    5 * time.Minute,
				LogLevel:         "debug",
				SeedJobTitle:     "Backend Engineer",
			},
		},
		{
			name:     "unset expiry keeps sub-minute value",
			start:    Config{PresignExpiry: 90 * time.Second},
			args:     []string{"cmd", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1", PresignExpiry: 90 * time.Second},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"cmd", "-c", "file.json", "-m", "local"},
			expected: &Config{},
		},
		{
			name:        "bad int panics",
			args:        []string{"cmd", "-x", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := tt.start

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(&config) })
				assert.Empty(t, cmp.Diff(tt.expected, &config))
			} else {
				require.Panics(t, func() { parseFlags(&config) })
			}
		})
	}
}
