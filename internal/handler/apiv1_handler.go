package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIv1Handler exposes the public integration surface authenticated by API
// keys. Its response and error shapes are a published contract and stay flat,
// unlike the enveloped session surface.
type APIv1Handler struct {
	translationService service.TranslationService
	languageService    service.LanguageService
	resolver           middleware.APIKeyResolver
}

func NewAPIv1Handler(translationService service.TranslationService, languageService service.LanguageService, resolver middleware.APIKeyResolver) *APIv1Handler {
	return &APIv1Handler{
		translationService: translationService,
		languageService:    languageService,
		resolver:           resolver,
	}
}

// RegisterRoutes binds the endpoints under /api/v1. The router requires the
// same wildcard name at one path position, so the first translations segment
// is ":id": the language code on GET, the key ID on PUT.
func (h *APIv1Handler) RegisterRoutes(router *gin.RouterGroup) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/translations/:id", middleware.RequireAPIKey(h.resolver, model.PermView), h.ExportLanguage)
		v1.PUT("/translations/:id/:lang", middleware.RequireAPIKey(h.resolver, model.PermTranslate), h.UpsertTranslation)

		v1.GET("/keys", middleware.RequireAPIKey(h.resolver, model.PermView), h.ListKeys)
		v1.POST("/keys", middleware.RequireAPIKey(h.resolver, model.PermManageTranslations), h.CreateKey)

		v1.GET("/languages", middleware.RequireAPIKey(h.resolver, model.PermView), h.ListLanguages)
		v1.GET("/languages/:code", middleware.RequireAPIKey(h.resolver, model.PermView), h.GetLanguage)
		v1.POST("/languages", middleware.RequireAPIKey(h.resolver, model.PermManageLanguages), h.CreateLanguage)
		v1.PUT("/languages/:code", middleware.RequireAPIKey(h.resolver, model.PermManageLanguages), h.UpdateLanguage)
		v1.DELETE("/languages/:code", middleware.RequireAPIKey(h.resolver, model.PermManageLanguages), h.DeleteLanguage)
	}
}

// ExportLanguage handles GET /api/v1/translations/:langCode
// @Summary      Export language
// @Description  Returns all translations for a language as a flat key to value map
// @Tags         public-api
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Language code"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/translations/{id} [get]
func (h *APIv1Handler) ExportLanguage(c *gin.Context) {
	langCode := c.Param("id")

	translations, err := h.translationService.ExportLanguage(c.Request.Context(), langCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":     langCode,
		"translations": translations,
	})
}

// UpsertTranslation handles PUT /api/v1/translations/:keyId/:langCode
// @Summary      Update translation
// @Description  Creates or overwrites the value for a (key, language) pair; the result is pending
// @Tags         public-api
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path  string  true  "Key ID"
// @Param        lang  path  string  true  "Language code"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/v1/translations/{id}/{lang} [put]
func (h *APIv1Handler) UpsertTranslation(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Translation key not found"})
		return
	}
	langCode := c.Param("lang")

	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value is required"})
		return
	}

	lang, err := h.languageService.GetByCode(c.Request.Context(), langCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}
	languageID, err := uuid.Parse(lang.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	key, _ := middleware.CurrentAPIKey(c)
	if _, err := h.translationService.Upsert(c.Request.Context(), key.UserID, keyID, languageID, body.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating translation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"key_id":   keyID.String(),
		"language": langCode,
		"value":    body.Value,
	})
}

// ListKeys handles GET /api/v1/keys
// @Summary      List all keys
// @Description  Returns every key with its translations nested by language code
// @Tags         public-api
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/keys [get]
func (h *APIv1Handler) ListKeys(c *gin.Context) {
	keys, err := h.translationService.ListKeysWithTranslations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	languages, err := h.languageService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	langs := make([]gin.H, 0, len(languages))
	for i := range languages {
		langs = append(langs, gin.H{
			"code":           languages[i].Code,
			"name":           languages[i].Name,
			"is_source":      languages[i].IsSource,
			"minecraft_head": languages[i].MinecraftHead,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"keys":      keys,
		"languages": langs,
	})
}

// CreateKey handles POST /api/v1/keys
// @Summary      Create translation key
// @Tags         public-api
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/v1/keys [post]
func (h *APIv1Handler) CreateKey(c *gin.Context) {
	var body struct {
		Key         string `json:"key"`
		Description string `json:"description"`
		Context     string `json:"context"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Key is required"})
		return
	}

	apiKey, _ := middleware.CurrentAPIKey(c)
	key, err := h.translationService.CreateKey(c.Request.Context(), apiKey.UserID, service.CreateKeyRequest{
		Key:         body.Key,
		Description: body.Description,
		Context:     body.Context,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Key already exists or invalid data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      key.ID,
		"key":     key.Key,
	})
}

// ListLanguages handles GET /api/v1/languages
// @Summary      List languages
// @Tags         public-api
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/languages [get]
func (h *APIv1Handler) ListLanguages(c *gin.Context) {
	languages, err := h.languageService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// GetLanguage handles GET /api/v1/languages/:code
// @Summary      Get language by code
// @Tags         public-api
// @Produce      json
// @Security     ApiKeyAuth
// @Param        code  path  string  true  "Language code"
// @Success      200   {object}  service.LanguageResponse
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/v1/languages/{code} [get]
func (h *APIv1Handler) GetLanguage(c *gin.Context) {
	lang, err := h.languageService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	c.JSON(http.StatusOK, lang)
}

// CreateLanguage handles POST /api/v1/languages
// @Summary      Create language
// @Tags         public-api
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/v1/languages [post]
func (h *APIv1Handler) CreateLanguage(c *gin.Context) {
	var body struct {
		Code          string  `json:"code"`
		Name          string  `json:"name"`
		IsSource      bool    `json:"is_source"`
		MinecraftHead *string `json:"minecraft_head"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Code == "" || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code and name are required"})
		return
	}

	apiKey, _ := middleware.CurrentAPIKey(c)
	lang, err := h.languageService.Create(c.Request.Context(), apiKey.UserID, service.CreateLanguageRequest{
		Code:          body.Code,
		Name:          body.Name,
		IsSource:      body.IsSource,
		MinecraftHead: body.MinecraftHead,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Language code already exists or invalid data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"id":             lang.ID,
		"code":           lang.Code,
		"name":           lang.Name,
		"is_source":      lang.IsSource,
		"minecraft_head": lang.MinecraftHead,
	})
}

// UpdateLanguage handles PUT /api/v1/languages/:code
// @Summary      Update language
// @Tags         public-api
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        code  path  string  true  "Language code"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/v1/languages/{code} [put]
func (h *APIv1Handler) UpdateLanguage(c *gin.Context) {
	code := c.Param("code")

	existing, err := h.languageService.GetByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	var body struct {
		Name          string  `json:"name"`
		IsSource      bool    `json:"is_source"`
		MinecraftHead *string `json:"minecraft_head"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	id, err := uuid.Parse(existing.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	apiKey, _ := middleware.CurrentAPIKey(c)
	lang, err := h.languageService.Update(c.Request.Context(), apiKey.UserID, id, service.UpdateLanguageRequest{
		Code:          code,
		Name:          body.Name,
		IsSource:      body.IsSource,
		MinecraftHead: body.MinecraftHead,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"id":             lang.ID,
		"code":           lang.Code,
		"name":           lang.Name,
		"is_source":      lang.IsSource,
		"minecraft_head": lang.MinecraftHead,
	})
}

// DeleteLanguage handles DELETE /api/v1/languages/:code
// @Summary      Delete language
// @Tags         public-api
// @Produce      json
// @Security     ApiKeyAuth
// @Param        code  path  string  true  "Language code"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/v1/languages/{code} [delete]
func (h *APIv1Handler) DeleteLanguage(c *gin.Context) {
	code := c.Param("code")

	existing, err := h.languageService.GetByCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	id, err := uuid.Parse(existing.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Language not found"})
		return
	}

	apiKey, _ := middleware.CurrentAPIKey(c)
	if err := h.languageService.Delete(c.Request.Context(), apiKey.UserID, id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error deleting language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Language deleted successfully",
	})
}
