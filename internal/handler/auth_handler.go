package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// Register handles user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(ctx, &req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			response.ValidationFailed(c, verr.Fields)
			return
		}
		if errors.Is(err, repository.ErrUsernameExists) {
			response.Conflict(c, "username already exists")
			return
		}
		if errors.Is(err, repository.ErrEmailExists) {
			response.Conflict(c, "email already exists")
			return
		}
		l.Error().Err(err).Msg("register failed")
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, result)
}

// Login handles user login.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "failed to login")
		return
	}

	response.Success(c, result)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (h *Handler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid refresh request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(ctx, &req)
	if err != nil {
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}

	response.Success(c, result)
}

// Logout blacklists the supplied refresh token.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.Logout(ctx, middleware.GetUserID(c), &req); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str(log.FieldUserID, middleware.GetUserID(c)).
			Str("username", middleware.GetUsername(c)).
			Msg("logout rejected")
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			response.BadRequest(c, "refresh token has expired")
		case errors.Is(err, auth.ErrRevokedToken):
			response.BadRequest(c, "refresh token has been revoked")
		case errors.Is(err, auth.ErrInvalidToken):
			response.BadRequest(c, "malformed or invalid refresh token")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{"detail": "Successfully logged out"})
}
