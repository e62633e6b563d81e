package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ".sceneflow", cfg.DataDir)
	assert.Equal(t, "novel-node-editor-flow", cfg.StorageKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.False(t, cfg.EnableCORS)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: \":7070\"\nlog_level: debug\n"), 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SCENEFLOW_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	// The file wins over both defaults and environment values.
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".sceneflow", cfg.DataDir)
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	t.Setenv("SCENEFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ServerAddress: ":8080", DataDir: "d", StorageKey: "k"}
	assert.NoError(t, cfg.Validate())

	cfg.StorageKey = ""
	assert.Error(t, cfg.Validate())
}
