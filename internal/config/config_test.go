package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestDefaults(t *testing.T) {
	home := setupHome(t)
	Load()

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, filepath.Join(home, ".buildconf", "repository"), s.RepositoryPath)
	assert.Equal(t, 10*time.Minute, s.CacheTTL)
	assert.Equal(t, "none", s.TraceExporter)
}

func TestEnvironmentOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv("BUILDCONF_LOG_LEVEL", "debug")
	t.Setenv("BUILDCONF_CACHE_TTL", "30s")
	t.Setenv("BUILDCONF_REPOSITORY", "/srv/modules")
	Load()

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 30*time.Second, s.CacheTTL)
	assert.Equal(t, "/srv/modules", s.RepositoryPath)
}

func TestRepositoryEnvKeepsOtherDefaults(t *testing.T) {
	setupHome(t)
	t.Setenv("BUILDCONF_REPOSITORY", "/srv/modules")
	Load()

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "/srv/modules", s.RepositoryPath)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "localhost:4317", s.TraceEndpoint)
}

func TestRepositoryFromConfigFile(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, ".buildconf")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("repository: /opt/modules\n"), 0o644))
	Load()

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "/opt/modules", s.RepositoryPath)
}

func TestInvalidCacheTTL(t *testing.T) {
	setupHome(t)
	t.Setenv("BUILDCONF_CACHE_TTL", "soon")
	Load()

	_, err := Current()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyCacheTTL)
}

func TestSetWritesConfigFile(t *testing.T) {
	home := setupHome(t)
	Load()

	require.NoError(t, Set(KeyLogFormat, "json"))
	assert.Equal(t, "json", Get(KeyLogFormat))

	data, err := os.ReadFile(filepath.Join(home, ".buildconf", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: json")

	viper.Reset()
	Load()
	assert.Equal(t, "json", Get(KeyLogFormat))
}
