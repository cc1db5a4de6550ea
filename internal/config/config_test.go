package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/movies/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABLE_NAME", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "MovieData", cfg.TableName)
	assert.Equal(t, "GS1", cfg.IndexName)
	assert.Equal(t, "https://www.omdbapi.com/", cfg.Omdb.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Omdb.Timeout)
	assert.Equal(t, uint(3), cfg.Omdb.MaxRetries)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, ":8080", cfg.Local.ListenAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TABLE_NAME", "MoviesTest")
	t.Setenv("OMDB_API_KEY", "secret")
	t.Setenv("OMDB_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("AUTH_POOL_URL", "https://auth.example.com/")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "MoviesTest", cfg.TableName)
	assert.Equal(t, "secret", cfg.Omdb.ApiKey)
	assert.Equal(t, 2*time.Second, cfg.Omdb.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "https://auth.example.com", cfg.AuthPoolURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "movies.env")
	require.NoError(t, os.WriteFile(file, []byte("OMDB_API_KEY=fromfile\nCACHE_SIZE=64\n"), 0600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("OMDB_API_KEY", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Omdb.ApiKey)
	assert.Equal(t, 64, cfg.Cache.Size)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	_, err := config.Load()
	assert.Error(t, err)
}
