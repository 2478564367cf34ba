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

type TranslationHandler struct {
	translationService service.TranslationService
}

// NewTranslationHandler sets up the routing dependencies for the translation
// workflow endpoints
func NewTranslationHandler(translationService service.TranslationService) *TranslationHandler {
	return &TranslationHandler{translationService: translationService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *TranslationHandler) RegisterRoutes(router *gin.RouterGroup) {
	keys := router.Group("/keys")
	{
		keys.GET("", middleware.RequireAuth(), h.ListKeys)
		keys.GET("/:id", middleware.RequireAuth(), h.GetKey)
		keys.POST("", middleware.RequirePermission(model.PermManageTranslations), h.CreateKey)
		keys.DELETE("/:id", middleware.RequirePermission(model.PermManageTranslations), h.DeleteKey)
		keys.POST("/:id/translations", middleware.RequirePermission(model.PermTranslate), h.Translate)
	}

	router.POST("/translations/:id/approve", middleware.RequirePermission(model.PermReview), h.Approve)
}

// ListKeys handles GET /keys
// @Summary      List translation keys
// @Description  Lists all keys with translation and approval counts
// @Tags         translations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.KeyResponse}
// @Router       /keys [get]
func (h *TranslationHandler) ListKeys(c *gin.Context) {
	keys, err := h.translationService.ListKeys(c.Request.Context())
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, keys))
}

// GetKey handles GET /keys/:id
// @Summary      Get translation key
// @Description  Fetches a key with all its translations and reviewer names
// @Tags         translations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key ID"
// @Success      200  {object}  response.Response{data=service.KeyDetailResponse}
// @Failure      404  {object}  response.Response
// @Router       /keys/{id} [get]
func (h *TranslationHandler) GetKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "translation key not found"))
		return
	}

	key, err := h.translationService.GetKey(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, key))
}

// CreateKey handles POST /keys
// @Summary      Create translation key
// @Description  Adds a new key with optional description and usage context
// @Tags         translations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateKeyRequest  true  "Create Key Payload"
// @Success      201      {object}  response.Response{data=service.KeyResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /keys [post]
func (h *TranslationHandler) CreateKey(c *gin.Context) {
	var req service.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "Invalid request payload: "+err.Error()))
		return
	}

	session, _ := middleware.CurrentSession(c)
	key, err := h.translationService.CreateKey(c.Request.Context(), session.UserID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, key))
}

// DeleteKey handles DELETE /keys/:id
// @Summary      Delete translation key
// @Description  Removes a key and all its translations
// @Tags         translations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /keys/{id} [delete]
func (h *TranslationHandler) DeleteKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "translation key not found"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	if err := h.translationService.DeleteKey(c.Request.Context(), session.UserID, id); err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Key deleted"))
}

// Translate handles POST /keys/:id/translations to create or overwrite a
// value for one language. The result is always pending, including when the
// previous value was approved.
// @Summary      Submit translation
// @Description  Creates or overwrites the value for a (key, language) pair; the result is pending
// @Tags         translations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Key ID"
// @Param        payload  body      service.TranslateRequest  true  "Translation Payload"
// @Success      200      {object}  response.Response{data=model.Translation}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /keys/{id}/translations [post]
func (h *TranslationHandler) Translate(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "translation key not found"))
		return
	}

	var req service.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "validation_error", "Invalid request payload: "+err.Error()))
		return
	}

	languageID, err := uuid.Parse(req.LanguageID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "language not found"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	t, err := h.translationService.Upsert(c.Request.Context(), session.UserID, keyID, languageID, req.Value)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}

// Approve handles POST /translations/:id/approve
// @Summary      Approve translation
// @Description  Marks a translation approved and stamps the reviewer; the value is untouched
// @Tags         translations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Translation ID"
// @Success      200  {object}  response.Response{data=model.Translation}
// @Failure      404  {object}  response.Response
// @Router       /translations/{id}/approve [post]
func (h *TranslationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "not_found", "translation not found"))
		return
	}

	session, _ := middleware.CurrentSession(c)
	t, err := h.translationService.Approve(c.Request.Context(), session.UserID, id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}
