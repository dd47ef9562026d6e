package cachepkg

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*JSONCache[item], *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return NewJSONCache[item](client, ttl), mr
}

func TestJSONCache(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "item:1")
	require.False(t, ok)

	want := item{Name: "one", Count: 1}
	cache.Set(ctx, "item:1", want)

	got, ok := cache.Get(ctx, "item:1")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, time.Minute, mr.TTL("item:1"))

	cache.Delete(ctx, "item:1")

	_, ok = cache.Get(ctx, "item:1")
	require.False(t, ok)
}

func TestJSONCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	cache.Set(ctx, "item:1", item{Name: "one"})
	mr.FastForward(2 * time.Second)

	_, ok := cache.Get(ctx, "item:1")
	require.False(t, ok)
}

func TestJSONCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, 0)

	require.NoError(t, mr.Set("item:1", "{not json"))

	_, ok := cache.Get(context.Background(), "item:1")
	require.False(t, ok)
}

func TestJSONCacheUnavailable(t *testing.T) {
	cache, mr := newTestCache(t, 0)
	ctx := context.Background()

	mr.Close()

	cache.Set(ctx, "item:1", item{Name: "one"})
	cache.Delete(ctx, "item:1")

	_, ok := cache.Get(ctx, "item:1")
	require.False(t, ok)
}

func TestJSONCacheFill(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Fill(ctx, "item:1", item{Name: "first"})
	cache.Fill(ctx, "item:1", item{Name: "second"})

	got, ok := cache.Get(ctx, "item:1")
	require.True(t, ok)
	require.Equal(t, item{Name: "first"}, got)
}

func TestJSONCacheInvalidate(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "item:1", item{Name: "one"})
	cache.Invalidate(ctx, "item:1", 10*time.Second)

	_, ok := cache.Get(ctx, "item:1")
	require.False(t, ok)

	cache.Fill(ctx, "item:1", item{Name: "stale"})

	_, ok = cache.Get(ctx, "item:1")
	require.False(t, ok, "Fill overwrote the tombstone")

	mr.FastForward(11 * time.Second)

	cache.Fill(ctx, "item:1", item{Name: "fresh"})

	got, ok := cache.Get(ctx, "item:1")
	require.True(t, ok)
	require.Equal(t, item{Name: "fresh"}, got)
}
