package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "workorder-bridge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.URI)
	assert.Equal(t, "cmms", cfg.Store.Database)
	assert.Equal(t, "workorders", cfg.Store.Collection)
	assert.Equal(t, 10*time.Second, cfg.Store.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Store.OpTimeout)
	assert.Equal(t, "./data/inbound", cfg.Exchange.InboundDir)
	assert.Equal(t, "./data/outbound", cfg.Exchange.OutboundDir)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "./data/bridge-history.db", cfg.History.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
}

func TestLoad_FromTOMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
[app]
env = "production"

[store]
uri = "mongodb://db.internal:27017"
database = "maint"
op_timeout = "5s"

[exchange]
inbound_dir = "/srv/erp/in"
outbound_dir = "/srv/erp/out"

[history]
enabled = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Store.URI)
	assert.Equal(t, "maint", cfg.Store.Database)
	assert.Equal(t, 5*time.Second, cfg.Store.OpTimeout)
	assert.Equal(t, "/srv/erp/in", cfg.Exchange.InboundDir)
	assert.Equal(t, "/srv/erp/out", cfg.Exchange.OutboundDir)
	assert.False(t, cfg.History.Enabled)
	// Production defaults to json logs when the file does not say otherwise.
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BRIDGE_STORE_URI", "mongodb://env-host:27017")
	t.Setenv("BRIDGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env-host:27017", cfg.Store.URI)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown log level", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BRIDGE_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BRIDGE_LOG_FORMAT", "xml")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid log format")
	})

	t.Run("inbound and outbound directories must differ", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BRIDGE_EXCHANGE_INBOUND_DIR", "/srv/erp/shared")
		t.Setenv("BRIDGE_EXCHANGE_OUTBOUND_DIR", "/srv/erp/shared")

		_, err := Load()
		assert.ErrorContains(t, err, "must differ")
	})
}
