package auth

import (
	"context"
	"sync"
	"time"
)

// TokenStore records blacklisted refresh-token ids until they expire.
type TokenStore interface {
	// Blacklist marks the jti as revoked until the given expiry.
	Blacklist(ctx context.Context, jti string, until time.Time) error
	// IsBlacklisted reports whether the jti has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	Close() error
}

// MemoryTokenStore keeps the blacklist in process memory. Suitable for a
// single-instance deployment and for tests; use the Redis store otherwise.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryTokenStore creates an in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Blacklist(ctx context.Context, jti string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = until
	return nil
}

func (s *MemoryTokenStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	s.mu.RLock()
	until, exists := s.revoked[jti]
	s.mu.RUnlock()
	if !exists {
		return false, nil
	}
	if time.Now().After(until) {
		s.mu.Lock()
		delete(s.revoked, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Close() error { return nil }
