package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openwave-social/openwave/internal/config"
)

// RedisProfileCache implements ProfileCache on Redis.
type RedisProfileCache struct {
	client *redis.Client
	prefix string
}

// NewRedisProfileCache connects to Redis and returns a profile cache.
func NewRedisProfileCache(cfg config.RedisConfig, prefix string) (*RedisProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisProfileCache{
		client: client,
		prefix: prefix,
	}, nil
}

func (c *RedisProfileCache) BuildKey(username string) string {
	return fmt.Sprintf("%s:username:%s", c.prefix, username)
}

func (c *RedisProfileCache) Get(ctx context.Context, key string) (*ProfileCacheResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var result ProfileCacheResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &result, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, key string, result *ProfileCacheResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisProfileCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisProfileCache) Close() error {
	return c.client.Close()
}

var _ ProfileCache = (*RedisProfileCache)(nil)
