package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mealwise/core/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheRepository, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCacheRepository(0)
	cache.now = func() time.Time { return clock }
	t.Cleanup(func() { cache.Close() })
	return cache, &clock
}

func TestCacheRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	value := []byte(`{"weightKg":80}`)
	require.NoError(t, cache.Set(ctx, "profile:u1", value, time.Minute))
	value[0] = 'X'

	got, err := cache.Get(ctx, "profile:u1")
	require.NoError(t, err)
	assert.Equal(t, `{"weightKg":80}`, string(got), "stored value is a copy")

	exists, err := cache.Exists(ctx, "profile:u1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "profile:u1"))
	_, err = cache.Get(ctx, "profile:u1")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestCacheRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, clock := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "default", []byte("b"), 0))

	*clock = clock.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	exists, _ := cache.Exists(ctx, "short")
	assert.False(t, exists)

	got, err := cache.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))

	assert.Equal(t, 2, cache.Len())
	cache.sweep()
	assert.Equal(t, 1, cache.Len())
}

func TestCacheRepository_CloseIsIdempotent(t *testing.T) {
	cache := NewCacheRepository(time.Millisecond)
	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
