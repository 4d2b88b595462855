package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/pkg/response"
)

const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	EmailKey      = "email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware validates bearer access tokens.
type AuthMiddleware struct {
	manager *auth.Manager
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(manager *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{manager: manager}
}

// RequireAuth returns a middleware that rejects requests without a valid
// bearer access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := m.manager.ValidateAccess(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuth returns a middleware that sets actor info when a valid bearer
// token is present but never rejects the request. Read endpoints use it so
// viewer-relative fields can be computed for authenticated callers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if strings.HasPrefix(authHeader, BearerPrefix) {
			if claims, err := m.manager.ValidateAccess(strings.TrimPrefix(authHeader, BearerPrefix)); err == nil {
				setActor(c, claims)
			}
		}
		c.Next()
	}
}

func setActor(c *gin.Context, claims *auth.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UsernameKey, claims.Username)
	c.Set(EmailKey, claims.Email)
}

// GetUserID extracts the acting user's ID from the Gin context. Empty when
// the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetUsername extracts the acting user's username from the Gin context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(UsernameKey); exists {
		return username.(string)
	}
	return ""
}
