package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workplan/backend/internal/infrastructure/config"
)

// configRedisUnreachable points at a port nothing listens on
func configRedisUnreachable() config.RedisConfig {
	return config.RedisConfig{Host: "127.0.0.1", Port: 1}
}

func TestInMemoryOutlineCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryOutlineCache()
	projectID := uuid.New()

	t.Run("miss returns nil payload and nil error", func(t *testing.T) {
		payload, err := c.Get(ctx, projectID, "missing")
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("roundtrips a payload", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, projectID, "k1", []byte(`{"rows":[]}`), time.Minute))

		payload, err := c.Get(ctx, projectID, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"rows":[]}`), payload)
	})

	t.Run("keys are scoped per project", func(t *testing.T) {
		otherProject := uuid.New()
		payload, err := c.Get(ctx, otherProject, "k1")
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("empty payload is not stored", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, projectID, "empty", nil, time.Minute))
		payload, err := c.Get(ctx, projectID, "empty")
		require.NoError(t, err)
		assert.Nil(t, payload)
	})
}

func TestInMemoryOutlineCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryOutlineCache()
	projectID := uuid.New()

	require.NoError(t, c.Set(ctx, projectID, "k1", []byte("payload"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	payload, err := c.Get(ctx, projectID, "k1")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestInMemoryOutlineCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryOutlineCache()
	projectID := uuid.New()
	otherProject := uuid.New()

	require.NoError(t, c.Set(ctx, projectID, "k1", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, projectID, "k2", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, otherProject, "k1", []byte("c"), time.Minute))

	require.NoError(t, c.Invalidate(ctx, projectID))

	for _, key := range []string{"k1", "k2"} {
		payload, err := c.Get(ctx, projectID, key)
		require.NoError(t, err)
		assert.Nil(t, payload)
	}

	// Other projects keep their entries
	payload, err := c.Get(ctx, otherProject, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), payload)
}

func TestInMemoryOutlineCache_Close(t *testing.T) {
	c := NewInMemoryOutlineCache()
	assert.NoError(t, c.Close())
}

func TestOutlineCacheFactory(t *testing.T) {
	t.Run("creates in-memory cache", func(t *testing.T) {
		f := NewOutlineCacheFactory(configRedisUnreachable())
		cache := f.CreateInMemoryCache()
		require.NotNil(t, cache)
		assert.NoError(t, cache.Close())
	})

	t.Run("falls back to in-memory when Redis is unreachable", func(t *testing.T) {
		f := NewOutlineCacheFactory(configRedisUnreachable())
		cache, err := f.CreateCache()
		require.NoError(t, err)
		require.NotNil(t, cache)
		_, ok := cache.(*InMemoryOutlineCache)
		assert.True(t, ok)
	})

	t.Run("errors when fallback is disabled", func(t *testing.T) {
		f := NewOutlineCacheFactory(configRedisUnreachable(), WithInMemoryFallback(false))
		_, err := f.CreateCache()
		assert.Error(t, err)
	})
}
