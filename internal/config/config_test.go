package config_test

import (
	"testing"

	"github.com/questline/questline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data/dungeons.yaml", cfg.Catalog.Path)
	assert.Empty(t, cfg.Redis.Addr, "redis is opt-in")
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CATALOG_PATH", "/etc/questline/dungeons.yaml")
	t.Setenv("LOG_FILE", "/var/log/questline.log")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "/etc/questline/dungeons.yaml", cfg.Catalog.Path)
	assert.Equal(t, "/var/log/questline.log", cfg.Log.File)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
}
