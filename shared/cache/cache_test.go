package cache_test

import (
	"context"
	"larisa/infras/otel/mocks"
	"larisa/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEntry struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestSaveAndGet(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:get:r-1", roomEntry{ID: "r-1", Price: 120}, 60))

	var got roomEntry
	require.NoError(t, c.Get(ctx, "room:get:r-1", &got))
	assert.Equal(t, roomEntry{ID: "r-1", Price: 120}, got)

	server.FastForward(61 * time.Second)

	err := c.Get(ctx, "room:get:r-1", &got)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestGetString(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "plain", "value", 60))

	var got string
	require.NoError(t, c.Get(ctx, "plain", &got))
	assert.Equal(t, "value", got)
}

func TestGetCorruptValue(t *testing.T) {
	c, server := newCache(t)

	require.NoError(t, server.Set("room:get:bad", "{not json"))

	var got roomEntry
	err := c.Get(context.Background(), "room:get:bad", &got)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal cache value")
}

func TestDeleteAndClear(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"room:gets:a", "room:gets:b", "room:get:r-1"} {
		require.NoError(t, c.Save(ctx, key, "x", 60))
	}

	require.NoError(t, c.Clear(ctx, "room:gets*"))
	assert.False(t, server.Exists("room:gets:a"))
	assert.False(t, server.Exists("room:gets:b"))
	assert.True(t, server.Exists("room:get:r-1"))

	require.NoError(t, c.Delete(ctx, "room:get:r-1"))
	assert.False(t, server.Exists("room:get:r-1"))
}
