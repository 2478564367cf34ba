package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LanguageHandler struct {
	languageService service.LanguageService
}

// NewLanguageHandler sets up the routing dependencies for language endpoints
func NewLanguageHandler(languageService service.LanguageService) *LanguageHandler {
	return &LanguageHandler{languageService: languageService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *LanguageHandler) RegisterRoutes(router *gin.RouterGroup) {
	langs := router.Group("/languages")
	{
		langs.GET("", middleware.RequireAuth(), h.List)
		langs.POST("", middleware.RequirePermission(model.PermManageLanguages), h.Create)
		langs.PUT("/:id", middleware.RequirePermission(model.PermManageLanguages), h.Update)
		langs.DELETE("/:id", middleware.RequirePermission(model.PermManageLanguages), h.Delete)
	}
}

// List handles GET /languages
// @Summary      List languages
// @Description  Lists all languages, source language first
// @Tags         languages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.LanguageResponse}
// @Router       /languages [get]
func (h *LanguageHandler) List(c *gin.Context) {
	langs, err := h.languageService.List(c.Request.Context())
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, langs))
}

// Create handles POST /languages
// @Summary      Create language
// @Description  Adds a language with a unique code
// @Tags         languages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLanguageRequest  true  "Create Language Payload"
// @Success      201      {object}  response.Response{data=service.LanguageResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /languages [post]
func (h *LanguageHandler) Create(c *gin.Context) {
	var req service.CreateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "Invalid request payload: "+err.Error()))
		return
	}

	session, _ := middleware.CurrentSession(c)
	lang, err := h.languageService.Create(c.Request.Context(), session.UserID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lang))
}

// Update handles PUT /languages/:id
// @Summary      Update language
// @Description  Updates a language's code, name, source flag or head texture
// @Tags         languages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Language ID"
// @Param        payload  body      service.UpdateLanguageRequest  true  "Update Language Payload"
// @Success      200      {object}  response.Response{data=service.LanguageResponse}
// @Failure      404      {object}  response.Response
// @Router       /languages/{id} [put]
func (h *LanguageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "language not found"))
		return
	}

	var req service.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "Invalid request payload"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	lang, err := h.languageService.Update(c.Request.Context(), session.UserID, id, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lang))
}

// Delete handles DELETE /languages/:id
// @Summary      Delete language
// @Description  Removes a language and all its translations
// @Tags         languages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Language ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /languages/{id} [delete]
func (h *LanguageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "language not found"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	if err := h.languageService.Delete(c.Request.Context(), session.UserID, id); err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Language deleted"))
}
