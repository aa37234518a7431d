package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLIX_CATALOG_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "en", cfg.Catalog.Language)
	assert.False(t, cfg.IsConfigured())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
catalog:
  api_key: from-file
  cache_ttl: 1m
  cache_max_entries: 200
search:
  debounce: 150ms
logging:
  level: DEBUG
`)
	t.Setenv("FLIX_CATALOG_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("FLIX_CATALOG_LANGUAGE", "fr")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Catalog.APIKey)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 200, cfg.Catalog.CacheMaxEntries)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "fr", cfg.Catalog.Language)
	assert.True(t, cfg.IsConfigured())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "catalog:\n  api_key: from-file\n")
	t.Setenv("FLIX_CATALOG_API_KEY", "from-env")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Catalog.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "catalog: [unterminated\n")

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func TestSave_RoundTripsUserID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLIX_CATALOG_API_KEY", "secret")

	loader := NewLoader(dir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.True(t, cfg.EnsureUserID())
	assert.False(t, cfg.EnsureUserID())
	_, err = uuid.Parse(cfg.User.ID)
	require.NoError(t, err)
	require.NoError(t, loader.Save(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	reloaded, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.User.ID, reloaded.User.ID)
	assert.Equal(t, cfg.Search.Debounce, reloaded.Search.Debounce)
}

func TestSave_PersistsPromptedAPIKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLIX_CATALOG_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	loader := NewLoader(dir)
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.False(t, cfg.IsConfigured())

	cfg.Catalog.APIKey = "typed-in"
	require.NoError(t, loader.Save(cfg))

	reloaded, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "typed-in", reloaded.Catalog.APIKey)
}
