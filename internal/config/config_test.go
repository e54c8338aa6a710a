package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skill-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "union_then_filter", cfg.Matching.Policy)
	assert.Equal(t, time.Second, cfg.Matching.SearchDebounce)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestFromEnv_PostgresNeedsBothDSNs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("USERS_DB_DSN", "postgres://localhost/users")
	t.Setenv("SKILLS_DB_DSN", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SKILLS_DB_DSN")
	assert.NotContains(t, err.Error(), "USERS_DB_DSN")
}

func TestFromEnv_InvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("NAME_CACHE_MAX", "-3")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "NAME_CACHE_MAX")
}

func TestFromEnv_DebounceAcceptsMillisAndDurations(t *testing.T) {
	setBaseEnv(t)

	t.Setenv("SEARCH_DEBOUNCE_MS", "250")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Matching.SearchDebounce)

	t.Setenv("SEARCH_DEBOUNCE_MS", "2s")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Matching.SearchDebounce)
}

func TestFromEnv_RedisEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_TTL", "30")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "6379", cfg.Redis.Port)
}
