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

// CreateComment adds a comment to a post.
func (h *Handler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.postService.CreateComment(ctx, middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.commentError(c, err, "create comment failed")
		return
	}
	response.Created(c, comment)
}

// ListComments returns a post's comments, newest first.
func (h *Handler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	comments, err := h.postService.ListComments(ctx, c.Param("id"))
	if err != nil {
		h.commentError(c, err, "list comments failed")
		return
	}
	response.Success(c, comments)
}

// GetComment returns a single comment scoped to its post.
func (h *Handler) GetComment(c *gin.Context) {
	ctx := c.Request.Context()
	comment, err := h.postService.GetComment(ctx, c.Param("id"), c.Param("cid"))
	if err != nil {
		h.commentError(c, err, "get comment failed")
		return
	}
	response.Success(c, comment)
}

// ReplaceComment updates a comment's content, author only.
func (h *Handler) ReplaceComment(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.postService.ReplaceComment(ctx, middleware.GetUserID(c), c.Param("id"), c.Param("cid"), &req)
	if err != nil {
		h.commentError(c, err, "replace comment failed")
		return
	}
	response.Success(c, comment)
}

// DeleteComment deletes a comment, author only.
func (h *Handler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.postService.DeleteComment(ctx, middleware.GetUserID(c), c.Param("id"), c.Param("cid")); err != nil {
		h.commentError(c, err, "delete comment failed")
		return
	}
	response.NoContent(c)
}

func (h *Handler) commentError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, service.ErrPostNotFound) {
		response.NotFound(c, "post not found")
		return
	}
	if errors.Is(err, service.ErrCommentNotFound) {
		response.NotFound(c, "comment not found")
		return
	}
	if errors.Is(err, service.ErrNotAuthor) {
		response.Forbidden(c, "only the author may modify this comment")
		return
	}
	log.Ctx(c.Request.Context()).Error().Err(err).Msg(logMsg)
	response.InternalError(c, "request failed")
}
