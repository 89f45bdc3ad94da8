package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LCU_LOCKFILE", "")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_KEY_PREFIX", "")
	t.Setenv("HEALTH_ADDR", "")
	t.Setenv("DDRAGON_LOCALE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.LockfilePath)
	assert.Equal(t, "config.json", cfg.ConfigPath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "autopick", cfg.RedisKeyPrefix)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Equal(t, "en_US", cfg.DDragonLocale)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LCU_LOCKFILE", "/tmp/lockfile")
	t.Setenv("CONFIG_PATH", "/etc/autopick/config.json")
	t.Setenv("HEALTH_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lockfile", cfg.LockfilePath)
	assert.Equal(t, "/etc/autopick/config.json", cfg.ConfigPath)
	assert.Equal(t, ":9999", cfg.HealthAddr)
}
