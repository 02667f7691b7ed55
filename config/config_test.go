package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DefaultSecretKey, cfg.Session.Secret)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30, cfg.Login.RatePerMinute)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://hospital:secret@db:5432/hospital")
	t.Setenv("SECRET_KEY", "super-secret")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://hospital:secret@db:5432/hospital", cfg.DB.URL)
	assert.Equal(t, "super-secret", cfg.Session.Secret)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.IsProduction())
}
