package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/openwave-social/openwave/internal/audit"
	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
)

// authServiceImpl implements AuthService.
type authServiceImpl struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens *auth.Manager) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new user after enforcing the password rules.
func (s *authServiceImpl) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, accessExp, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to generate tokens after register")
		return nil, err
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
	}, nil
}

// Login authenticates a user by username and password.
func (s *authServiceImpl) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			audit.LogWithDetail(ctx, audit.ActionLoginFailed, "", req.Username, "login failed: user not found")
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Msg("failed to get user by username")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.LogWithDetail(ctx, audit.ActionLoginFailed, user.ID, req.Username, "login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, accessExp, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to generate tokens after login")
		return nil, err
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	claims, err := s.tokens.ValidateRefresh(ctx, req.RefreshToken)
	if err != nil {
		l.Warn().Err(err).Msg("failed to validate refresh token")
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Str(log.FieldUserID, claims.UserID).Msg("failed to get user after token refresh")
		return nil, err
	}

	accessToken, refreshToken, accessExp, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to generate tokens after refresh")
		return nil, err
	}

	audit.Log(ctx, audit.ActionRefreshToken, user.ID, "token refreshed")

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
	}, nil
}

// Logout blacklists the supplied refresh token until its natural expiry.
// The returned error carries the underlying cause for the client.
func (s *authServiceImpl) Logout(ctx context.Context, userID string, req *domain.LogoutRequest) error {
	if err := s.tokens.BlacklistRefresh(ctx, req.RefreshToken); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionLogout, userID, "user logged out")
	return nil
}
