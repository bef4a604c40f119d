package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	assert.False(t, found)

	title := "Example"
	require.NoError(t, cache.Set(ctx, "https://example.com", &Metadata{Title: &title, URL: "https://example.com"}, time.Minute))

	got, found, err := cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Example", *got.Title)
	assert.Nil(t, got.Image)

	mr.FastForward(2 * time.Minute)
	_, found, err = cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	assert.False(t, found, "entry must expire after ttl")
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
