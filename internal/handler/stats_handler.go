package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler sets up the routing dependencies for dashboard statistics
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", middleware.RequireAuth(), h.Overview)
	router.GET("/admin/stats", middleware.RequireRole(model.RoleAdmin), h.Admin)
}

// Overview handles GET /stats
// @Summary      Dashboard statistics
// @Description  Returns key, language and translation counts
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.TranslationStats}
// @Router       /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// Admin handles GET /admin/stats
// @Summary      Admin statistics
// @Description  Returns the dashboard statistics plus user and API key counts
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *StatsHandler) Admin(c *gin.Context) {
	stats, err := h.statsService.Admin(c.Request.Context())
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
