package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// ListNotifications returns the caller's notifications, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	notifications, err := h.notificationService.List(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list notifications failed")
		response.InternalError(c, "failed to list notifications")
		return
	}
	response.Success(c, notifications)
}

// MarkNotificationsRead marks all of the caller's notifications as read.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	ctx := c.Request.Context()
	updated, err := h.notificationService.MarkAllRead(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("mark notifications read failed")
		response.InternalError(c, "failed to mark notifications read")
		return
	}
	response.Success(c, gin.H{"updated": updated})
}
