package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// t.Setenv forbids t.Parallel, so these run sequentially.

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func unsetConfigPath(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	require.NoError(t, os.Unsetenv("CONFIG_PATH"))
}

func TestLoad_ReadsFileAndFillsDefaults(t *testing.T) {
	path := writeConfigFile(t, "database:\n  dsn: postgres://localhost/lexicon\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/lexicon", cfg.Database.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 0.85, cfg.Resolver.FuzzyAutoAccept, 1e-9)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8080\ndatabase:\n  dsn: postgres://localhost/lexicon\n")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOnlyWithoutFile(t *testing.T) {
	unsetConfigPath(t)
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DSN", "postgres://localhost/lexicon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/lexicon", cfg.Database.DSN)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_InvalidThresholdsRejected(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dsn: postgres://localhost/lexicon
resolver:
  fuzzy_auto_accept: 0.2
  fuzzy_display_floor: 0.3
`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy_display_floor")
}
