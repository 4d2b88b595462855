package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// Follow makes the acting user follow the named user.
func (h *Handler) Follow(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	err := h.socialService.Follow(ctx, middleware.GetUserID(c), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		if errors.Is(err, service.ErrSelfFollow) {
			response.BadRequest(c, "you cannot follow yourself")
			return
		}
		if errors.Is(err, service.ErrAlreadyFollowing) {
			response.Conflict(c, "already following this user")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("follow failed")
		response.InternalError(c, "failed to follow user")
		return
	}

	response.Success(c, gin.H{"detail": "Now following " + username})
}

// Unfollow removes the acting user's follow edge to the named user.
func (h *Handler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	err := h.socialService.Unfollow(ctx, middleware.GetUserID(c), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		if errors.Is(err, service.ErrNotFollowing) {
			response.Conflict(c, "not following this user")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("unfollow failed")
		response.InternalError(c, "failed to unfollow user")
		return
	}

	response.Success(c, gin.H{"detail": "Unfollowed " + username})
}

// ListFollowers returns the named user's followers.
func (h *Handler) ListFollowers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.socialService.Followers(ctx, middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("list followers failed")
		response.InternalError(c, "failed to list followers")
		return
	}
	response.Success(c, users)
}

// ListFollowing returns the users the named user follows.
func (h *Handler) ListFollowing(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.socialService.Following(ctx, middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("list following failed")
		response.InternalError(c, "failed to list following")
		return
	}
	response.Success(c, users)
}

// Feed returns posts by users the caller follows, newest first.
func (h *Handler) Feed(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.socialService.Feed(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("feed failed")
		response.InternalError(c, "failed to load feed")
		return
	}
	response.Success(c, posts)
}
