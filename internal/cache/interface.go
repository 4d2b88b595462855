package cache

import (
	"context"
	"errors"
	"time"

	"github.com/openwave-social/openwave/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// ProfileCacheResult wraps a cached public profile response.
type ProfileCacheResult struct {
	Profile domain.ProfileResponse `json:"profile"`
}

// ProfileCache is a short-TTL read-through cache for public profile views.
// Viewer-relative fields are never cached, so entries are keyed by username
// only.
type ProfileCache interface {
	Get(ctx context.Context, key string) (*ProfileCacheResult, error)
	Set(ctx context.Context, key string, result *ProfileCacheResult, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	BuildKey(username string) string
	Close() error
}
