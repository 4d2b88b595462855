package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/response"
)

// Search matches users and posts against the q query parameter.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	result, err := h.searchService.Search(ctx, middleware.GetUserID(c), c.Query("q"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			response.BadRequest(c, "query parameter q is required")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("search failed")
		response.InternalError(c, "search failed")
		return
	}
	response.Success(c, result)
}
