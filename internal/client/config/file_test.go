package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTemp(t, "cli.json", `{
			"server_endpoint_addr": "www.example:9000",
			"mode": "local",
			"job_id": 3,
			"reconcile_interval": "10s",
			"request_timeout": "5s",
			"rollback": true
		}`)
		os.Args = []string{"cli", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, ModeLocal, cfg.Mode)
		assert.Equal(t, int64(3), cfg.JobID)
		assert.Equal(t, 10*time.Second, cfg.ReconcileInterval)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.Rollback)
		assert.Equal(t, "hireboard.db", cfg.LocalDBPath, "missing fields keep defaults")
	})

	t.Run("yaml rollback false overrides", func(t *testing.T) {
		path := writeTemp(t, "cli.yml", "rollback: false\nfiles_dir: /tmp/cv\n")
		os.Args = []string{"cli", "-c", path}

		cfg := &Config{Rollback: true}
		parseFile(cfg)

		assert.False(t, cfg.Rollback)
		assert.Equal(t, "/tmp/cv", cfg.FilesDir)
	})

	t.Run("no file → no changes", func(t *testing.T) {
		os.Args = []string{"cli"}

		cfg := &Config{ServerEndpointAddr: "defaults:1234"}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
	})

	t.Run("broken file panics", func(t *testing.T) {
		path := writeTemp(t, "cli.json", `{"job_id": "x"`)
		os.Args = []string{"cli", "-c", path}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
