package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwave-social/openwave/internal/domain"
)

func newTestManager(t *testing.T, accessTTL, refreshTTL time.Duration) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", accessTTL, refreshTTL, "openwave-test", NewMemoryTokenStore())
	require.NoError(t, err)
	return m
}

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Minute, time.Hour, "openwave-test", NewMemoryTokenStore())
	assert.Error(t, err)
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := newTestManager(t, 15*time.Minute, 24*time.Hour)

	access, refresh, exp, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := m.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	refreshClaims, err := m.ValidateRefresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.Type)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := newTestManager(t, 15*time.Minute, 24*time.Hour)

	access, refresh, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateRefresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := newTestManager(t, -time.Minute, 24*time.Hour)

	access, _, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateAccess(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestBlacklistRefreshRevokesToken(t *testing.T) {
	m := newTestManager(t, 15*time.Minute, 24*time.Hour)
	ctx := context.Background()

	_, refresh, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateRefresh(ctx, refresh)
	require.NoError(t, err)

	require.NoError(t, m.BlacklistRefresh(ctx, refresh))

	_, err = m.ValidateRefresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrRevokedToken)
}

func TestBlacklistDoesNotAffectOtherTokens(t *testing.T) {
	m := newTestManager(t, 15*time.Minute, 24*time.Hour)
	ctx := context.Background()

	_, first, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)
	_, second, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	require.NoError(t, m.BlacklistRefresh(ctx, first))

	_, err = m.ValidateRefresh(ctx, second)
	assert.NoError(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestManager(t, 15*time.Minute, 24*time.Hour)

	access, _, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other, err := NewManager("other-secret", 15*time.Minute, 24*time.Hour, "openwave-test", NewMemoryTokenStore())
	require.NoError(t, err)

	_, err = other.ValidateAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, s.Blacklist(ctx, "expired-jti", time.Now().Add(-time.Second)))
	require.NoError(t, s.Blacklist(ctx, "live-jti", time.Now().Add(time.Hour)))

	revoked, err := s.IsBlacklisted(ctx, "expired-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = s.IsBlacklisted(ctx, "live-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}
