package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// CreatePost handles post creation.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create post request")
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		l.Error().Err(err).Msg("create post failed")
		response.InternalError(c, "failed to create post")
		return
	}

	response.Created(c, post)
}

// ListPosts returns all posts, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.postService.ListPosts(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list posts failed")
		response.InternalError(c, "failed to list posts")
		return
	}
	response.Success(c, posts)
}

// GetPost returns a single post.
func (h *Handler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.postService.GetPost(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("get post failed")
		response.InternalError(c, "failed to get post")
		return
	}
	response.Success(c, post)
}

// ReplacePost handles full post replacement by its author.
func (h *Handler) ReplacePost(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.ReplacePost(ctx, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.postError(c, err, "replace post failed")
		return
	}
	response.Success(c, post)
}

// PatchPost handles partial post updates by its author.
func (h *Handler) PatchPost(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.PatchPost(ctx, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.postError(c, err, "patch post failed")
		return
	}
	response.Success(c, post)
}

// DeletePost handles post deletion by its author.
func (h *Handler) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.postService.DeletePost(ctx, middleware.GetUserID(c), c.Param("id")); err != nil {
		h.postError(c, err, "delete post failed")
		return
	}
	response.NoContent(c)
}

// LikePost records a like from the acting user.
func (h *Handler) LikePost(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.postService.Like(ctx, middleware.GetUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAlreadyLiked) {
			response.Conflict(c, "post already liked")
			return
		}
		h.postError(c, err, "like post failed")
		return
	}
	response.Success(c, gin.H{"detail": "Post liked"})
}

// UnlikePost removes the acting user's like.
func (h *Handler) UnlikePost(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.postService.Unlike(ctx, middleware.GetUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotLiked) {
			response.Conflict(c, "post not liked")
			return
		}
		h.postError(c, err, "unlike post failed")
		return
	}
	response.Success(c, gin.H{"detail": "Post unliked"})
}

// postError maps shared post error cases.
func (h *Handler) postError(c *gin.Context, err error, logMsg string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, verr.Fields)
		return
	}
	if errors.Is(err, service.ErrPostNotFound) {
		response.NotFound(c, "post not found")
		return
	}
	if errors.Is(err, service.ErrNotAuthor) {
		response.Forbidden(c, "only the author may modify this post")
		return
	}
	log.Ctx(c.Request.Context()).Error().Err(err).Msg(logMsg)
	response.InternalError(c, "request failed")
}
