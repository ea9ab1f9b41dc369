package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedProduct struct {
	ID    string  `json:"_id"`
	Price float64 `json:"price"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:1", cachedProduct{ID: "1", Price: 9.5}, 0))

	var got cachedProduct
	hit, err := c.Get(ctx, "product:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cachedProduct{ID: "1", Price: 9.5}, got)

	require.NoError(t, c.Delete(ctx, "product:1"))
	hit, err = c.Get(ctx, "product:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_ExpiredIsMiss(t *testing.T) {
	c := NewInMemoryCache(time.Millisecond, time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	time.Sleep(5 * time.Millisecond)

	var got string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestAsyncCacheSet_WritesInBackground(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()

	AsyncCacheSet(c, "k", 42, 0, zap.NewNop())

	assert.Eventually(t, func() bool {
		var got int
		hit, _ := c.Get(context.Background(), "k", &got)
		return hit && got == 42
	}, time.Second, 5*time.Millisecond)

	AsyncCacheDelete(c, "k", zap.NewNop())
	assert.Eventually(t, func() bool {
		var got int
		hit, _ := c.Get(context.Background(), "k", &got)
		return !hit
	}, time.Second, 5*time.Millisecond)
}

func TestCacheDelete_IsVisibleOnReturn(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	CacheSet(ctx, c, "k", 42, 0, zap.NewNop())
	var got int
	hit, err := c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, got)

	CacheDelete(ctx, c, "k", zap.NewNop())
	hit, err = c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheHelpers_NilCacheIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		CacheSet(context.Background(), nil, "k", 1, 0, zap.NewNop())
		CacheDelete(context.Background(), nil, "k", zap.NewNop())
	})
}
