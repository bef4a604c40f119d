package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "metadata:"

// Cache stores successful scrapes keyed by page URL.
type Cache interface {
	Get(ctx context.Context, pageURL string) (*Metadata, bool, error)
	Set(ctx context.Context, pageURL string, meta *Metadata, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, pageURL string) (*Metadata, bool, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+pageURL).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, false, fmt.Errorf("decode cached metadata: %w", err)
	}
	return &meta, true, nil
}

func (c *RedisCache) Set(ctx context.Context, pageURL string, meta *Metadata, ttl time.Duration) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+pageURL, data, ttl).Err()
}
