package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "fyyur")
	t.Setenv("DB_NAME", "fyyur")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"GET"}, cfg.Cache.Methods)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.TTL)
	assert.Equal(t, "listing.events", cfg.Queue.Name)
	assert.Empty(t, cfg.Queue.URL)
}

func TestParseRequiresDatabase(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := Parse()
	assert.ErrorContains(t, err, "DB_USER")
}

func TestCacheMethodsNormalized(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_METHODS", "get, head,,")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "HEAD"}, cfg.Cache.Methods)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Cache.MethodSet())
}

func TestCacheRoutesExcludeTimeDependentPages(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	routes := cfg.Cache.RouteSet()
	assert.True(t, routes["/artists"])
	assert.True(t, routes["/venues/:id/edit"])
	for _, r := range []string{"/venues", "/venues/:id", "/artists/:id", "/shows"} {
		assert.False(t, routes[r], r)
	}
}

func TestCacheRoutesNormalized(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_ROUTES", " /artists/ ,,/venues/create")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"/artists", "/venues/create"}, cfg.Cache.Routes)
}

func TestRateLimitClamping(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2m")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "7")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := Parse()
	require.NoError(t, err)

	rl := cfg.RateLimit
	assert.Equal(t, 5, rl.Capacity)
	assert.Equal(t, 1, rl.RefillTokens)
	assert.Equal(t, 2*time.Minute, rl.RefillInterval)
	assert.Equal(t, 10*time.Minute, rl.TTL)
}

func TestRateLimitFloor(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Addr: "x:1", Host: "cache", Port: "6380"}.Address())
	assert.Equal(t, "x:1", RedisConfig{Addr: "x:1", Host: "cache"}.Address())
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NotNil(t, client)
	t.Cleanup(func() { client.Close() })

	mr.Close()
	assert.Nil(t, NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()}))
}
