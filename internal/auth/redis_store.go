package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "token:blacklist:"

// RedisTokenStore keeps the refresh-token blacklist in Redis, letting key
// expiry garbage-collect entries once the token itself would have expired.
type RedisTokenStore struct {
	client *redis.Client
}

// RedisStoreConfig holds Redis connection settings for the token store.
type RedisStoreConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisTokenStore connects to Redis and returns a token store.
func NewRedisTokenStore(cfg RedisStoreConfig) (*RedisTokenStore, error) {
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

	return &RedisTokenStore{client: client}, nil
}

func (s *RedisTokenStore) Blacklist(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired; nothing to record.
		return nil
	}
	if err := s.client.Set(ctx, blacklistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, blacklistPrefix+jti).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
