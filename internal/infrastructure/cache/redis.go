// Package cache stores dashboard payloads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tpremraj1312/ledger-admin/pkg/helpers"
)

type RedisCache struct {
	RDB    redis.Cmdable
	Prefix string
}

func NewRedisCache(rdb redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{RDB: rdb, Prefix: prefix}
}

func (c *RedisCache) key(k string) string {
	if c.Prefix == "" {
		return k
	}
	return c.Prefix + ":" + k
}

// Get decodes the cached JSON into dest. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw json.RawMessage
	ok, err := helpers.RedisGetJSON(ctx, c.RDB, c.key(key), &raw)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, c.RDB, c.key(key), value, ttl)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return helpers.RedisDel(ctx, c.RDB, full...)
}
