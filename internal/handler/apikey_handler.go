package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiKeyHandler struct {
	apiKeyService service.ApiKeyService
}

// NewApiKeyHandler sets up the routing dependencies for API key endpoints
func NewApiKeyHandler(apiKeyService service.ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyService: apiKeyService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Any authenticated user manages their own keys.
func (h *ApiKeyHandler) RegisterRoutes(router *gin.RouterGroup) {
	keys := router.Group("/api-keys", middleware.RequireAuth())
	{
		keys.GET("", h.List)
		keys.POST("", h.Create)
		keys.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api-keys
// @Summary      List API keys
// @Description  Lists the caller's API keys
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.ApiKeyResponse}
// @Router       /api-keys [get]
func (h *ApiKeyHandler) List(c *gin.Context) {
	session, _ := middleware.CurrentSession(c)

	keys, err := h.apiKeyService.List(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, keys))
}

// Create handles POST /api-keys
// @Summary      Create API key
// @Description  Creates a key with a label and a subset of the permission vocabulary
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateApiKeyRequest  true  "Create Key Payload"
// @Success      201      {object}  response.Response{data=service.ApiKeyResponse}
// @Failure      400      {object}  response.Response
// @Router       /api-keys [post]
func (h *ApiKeyHandler) Create(c *gin.Context) {
	var req service.CreateApiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "Invalid request payload: "+err.Error()))
		return
	}

	session, _ := middleware.CurrentSession(c)
	key, err := h.apiKeyService.Create(c.Request.Context(), session.UserID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, key))
}

// Delete handles DELETE /api-keys/:id
// @Summary      Delete API key
// @Description  Deletes one of the caller's own keys
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api-keys/{id} [delete]
func (h *ApiKeyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "API key not found"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	if err := h.apiKeyService.Delete(c.Request.Context(), session.UserID, id); err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "API key deleted"))
}
