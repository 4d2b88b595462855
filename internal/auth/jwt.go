package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openwave-social/openwave/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Type     string `json:"type"` // "access" or "refresh"
}

// Manager issues and validates token pairs. Refresh tokens carry a jti so
// logout can blacklist them individually until their natural expiry.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	store      TokenStore
}

// NewManager creates a new JWT manager.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, issuer string, store TokenStore) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		store:      store,
	}, nil
}

// GenerateTokenPair creates access and refresh tokens for a user.
func (m *Manager) GenerateTokenPair(user *domain.User) (accessToken, refreshToken string, accessExp int64, err error) {
	now := time.Now()

	accessExp = now.Add(m.accessTTL).Unix()
	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    m.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Type:     TokenTypeAccess,
	}

	accessToken, err = m.signToken(accessClaims)
	if err != nil {
		return "", "", 0, err
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    m.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		UserID: user.ID,
		Type:   TokenTypeRefresh,
	}

	refreshToken, err = m.signToken(refreshClaims)
	if err != nil {
		return "", "", 0, err
	}

	return accessToken, refreshToken, accessExp, nil
}

// ValidateAccess validates an access token and returns its claims.
func (m *Manager) ValidateAccess(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefresh validates a refresh token, rejecting blacklisted ones.
func (m *Manager) ValidateRefresh(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := m.store.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// BlacklistRefresh invalidates a refresh token until its natural expiry.
func (m *Manager) BlacklistRefresh(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		return err
	}
	if claims.Type != TokenTypeRefresh || claims.ID == "" {
		return ErrInvalidToken
	}

	return m.store.Blacklist(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *Manager) signToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
