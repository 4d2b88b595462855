package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// GetOwnProfile returns the caller's profile.
func (h *Handler) GetOwnProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.profileService.GetOwnProfile(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("get own profile failed")
		response.InternalError(c, "failed to get profile")
		return
	}
	response.Success(c, profile)
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			response.Conflict(c, "username already exists")
			return
		}
		if errors.Is(err, repository.ErrEmailExists) {
			response.Conflict(c, "email already exists")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("update profile failed")
		response.InternalError(c, "failed to update profile")
		return
	}
	response.Success(c, profile)
}

// UploadAvatar accepts a multipart avatar image for the caller.
func (h *Handler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.BadRequest(c, "avatar exceeds the maximum allowed size")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded avatar")
		response.InternalError(c, "failed to read avatar")
		return
	}
	defer f.Close()

	profile, err := h.profileService.UploadAvatar(
		ctx,
		middleware.GetUserID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
		fileHeader.Size,
	)
	if err != nil {
		l.Error().Err(err).Msg("avatar upload failed")
		response.InternalError(c, "failed to upload avatar")
		return
	}
	response.Success(c, profile)
}

// GetUserProfile returns the named user's public profile.
func (h *Handler) GetUserProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.profileService.GetUserProfile(ctx, middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("get user profile failed")
		response.InternalError(c, "failed to get user profile")
		return
	}
	response.Success(c, profile)
}

// GetUserPosts returns the named user's posts, newest first.
func (h *Handler) GetUserPosts(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.profileService.GetUserPosts(ctx, c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("get user posts failed")
		response.InternalError(c, "failed to get user posts")
		return
	}
	response.Success(c, posts)
}
