package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
)

func TestRegisterIssuesTokens(t *testing.T) {
	env := newTestEnv(t)

	resp := env.register(t, "alice")
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := env.tokens.ValidateAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(context.Background(), &domain.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "short1",
		Password2: "short1",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 8 characters long", verr.Fields["password"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")

	_, err := env.authService.Register(context.Background(), &domain.RegisterRequest{
		Username:  "alice",
		Email:     "different@example.com",
		Password:  "secret123",
		Password2: "secret123",
	})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	ctx := context.Background()

	resp, err := env.authService.Login(ctx, &domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = env.authService.Login(ctx, &domain.LoginRequest{Username: "alice", Password: "wrongpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authService.Login(ctx, &domain.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "alice")
	ctx := context.Background()

	resp, err := env.authService.RefreshToken(ctx, &domain.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, resp.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "alice")

	_, err := env.authService.RefreshToken(context.Background(), &domain.RefreshTokenRequest{RefreshToken: registered.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutBlacklistsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "alice")
	ctx := context.Background()

	err := env.authService.Logout(ctx, registered.User.ID, &domain.LogoutRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)

	_, err = env.authService.RefreshToken(ctx, &domain.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "alice")

	err := env.authService.Logout(context.Background(), registered.User.ID, &domain.LogoutRequest{RefreshToken: "not-a-token"})
	assert.Error(t, err)
}
