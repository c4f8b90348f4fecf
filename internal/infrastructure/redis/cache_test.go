package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/infrastructure/redis"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCache(t *testing.T) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := redis.NewCache(mr.Addr(), "", 0, "logistica:")
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()))
	return c, mr
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "settings:current", payload{Name: "Logistica", Count: 3}, time.Minute))
	assert.True(t, mr.Exists("logistica:settings:current"), "la clave lleva prefijo")

	var got payload
	found, err := c.Get(ctx, "settings:current", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "Logistica", Count: 3}, got)
}

func TestCache_MissNoEsError(t *testing.T) {
	c, _ := newCache(t)

	var got payload
	found, err := c.Get(context.Background(), "nada", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Expira(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard:stats:u1", payload{Count: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	found, err := c.Get(ctx, "dashboard:stats:u1", &payload{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_DeleteYDeleteByPrefix(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "settings:current", payload{}, 0))
	require.NoError(t, c.Set(ctx, "dashboard:stats:u1", payload{}, 0))
	require.NoError(t, c.Set(ctx, "dashboard:stats:u2", payload{}, 0))

	require.NoError(t, c.Delete(ctx, "settings:current", "inexistente"))
	assert.False(t, mr.Exists("logistica:settings:current"))

	require.NoError(t, c.DeleteByPrefix(ctx, "dashboard:"))
	assert.False(t, mr.Exists("logistica:dashboard:stats:u1"))
	assert.False(t, mr.Exists("logistica:dashboard:stats:u2"))
}

func TestCache_ValorCorrupto(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("logistica:settings:current", "{no-json"))

	_, err := c.Get(context.Background(), "settings:current", &payload{})
	assert.Error(t, err)
}
