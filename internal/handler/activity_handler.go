package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler sets up the routing dependencies for the activity feed
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity", middleware.RequireAuth(), h.Recent)
}

// Recent handles GET /activity
// @Summary      Recent activity
// @Description  Returns the newest activity entries, optionally filtered by actor
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit    query     int     false  "Max entries (default 50)"
// @Param        user_id  query     string  false  "Filter by actor ID"
// @Success      200      {object}  response.Response{data=[]service.ActivityEntry}
// @Router       /activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := pagination.ParseLimit(c, 50)

	var actorID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "invalid user_id"))
			return
		}
		actorID = &id
	}

	entries, err := h.activityService.Recent(c.Request.Context(), limit, actorID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
