package cachepkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// tombstone is written by Invalidate. It reads as a miss and makes Fill a no-op
// until it expires.
const tombstone = "\x00tombstone"

// JSONCache stores values of type T as JSON documents in redis.
//
// Failures are logged and reported as misses: the cache never fails a request.
type JSONCache[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJSONCache returns a JSONCache whose entries expire after ttl (0 keeps them forever).
func NewJSONCache[T any](client *redis.Client, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{client: client, ttl: ttl}
}

// Get returns the value stored under key.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var v T

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}

		return v, false
	}

	if string(data) == tombstone {
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache entry is corrupt")
		return v, false
	}

	return v, true
}

// Set stores value under key.
func (c *JSONCache[T]) Set(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Delete removes key.
func (c *JSONCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// Fill stores value under key only if the key is absent.
//
// Read-through paths use Fill so a value read before a concurrent
// Invalidate cannot overwrite the tombstone.
func (c *JSONCache[T]) Fill(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}

	if err := c.client.SetNX(ctx, key, data, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate replaces whatever is stored under key with a tombstone that
// lives for hold.
func (c *JSONCache[T]) Invalidate(ctx context.Context, key string, hold time.Duration) {
	if err := c.client.Set(ctx, key, tombstone, hold).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
