package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	t.Setenv("SNSBOX_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Hostname)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "db.json", cfg.DatabasePath)
	assert.Equal(t, "resources/seed.json", cfg.SeedPath)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snsbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"hostname: 0.0.0.0\nport: 9000\ndatabase_path: /tmp/state.json\nlog_level: debug\n",
	), 0o644))
	t.Setenv("SNSBOX_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Hostname)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/state.json", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "resources/seed.json", cfg.SeedPath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snsbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))
	t.Setenv("SNSBOX_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("SNSBOX_DB_PATH", InMemoryPath)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, InMemoryPath, cfg.DatabasePath)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SNSBOX_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snsbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed\n"), 0o644))
	t.Setenv("SNSBOX_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestAddr(t *testing.T) {
	cfg := &Config{Hostname: "0.0.0.0", Port: 3000}
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", level)
	}
}
