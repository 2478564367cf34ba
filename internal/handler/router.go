package handler

import (
	"backend/internal/config"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires the full dependency graph (repository -> service ->
// handler) and returns the configured engine. Kept separate from main so
// route tests can stand up the whole surface against a test database.
func NewRouter(db *gorm.DB, cfg *config.Config, wsHub *websocket.Hub) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	middleware.Init([]byte(cfg.JWT.Secret))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	txm := repository.NewTransactionManager(db)

	// Services
	activityService := service.NewActivityService(activityRepo, wsHub)
	authService := service.NewAuthService(userRepo, activityService, cfg)
	userService := service.NewUserService(userRepo, activityService, cfg.Security.BcryptCost)
	apiKeyService := service.NewApiKeyService(apiKeyRepo, activityService)
	languageService := service.NewLanguageService(languageRepo, translationRepo, txm, activityService)
	translationService := service.NewTranslationService(translationRepo, languageRepo, txm, activityService)
	statsService := service.NewStatsService(db)

	// Handlers
	authHandler := NewAuthHandler(authService, int(cfg.TokenTTL().Seconds()))
	userHandler := NewUserHandler(userService)
	apiKeyHandler := NewApiKeyHandler(apiKeyService)
	languageHandler := NewLanguageHandler(languageService)
	translationHandler := NewTranslationHandler(translationService)
	activityHandler := NewActivityHandler(activityService)
	statsHandler := NewStatsHandler(statsService)
	apiV1Handler := NewAPIv1Handler(translationService, languageService, apiKeyService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-API-Key"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, []byte(cfg.JWT.Secret))
	})

	// Session-auth surface
	root := router.Group("")
	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	apiKeyHandler.RegisterRoutes(root)
	languageHandler.RegisterRoutes(root)
	translationHandler.RegisterRoutes(root)
	activityHandler.RegisterRoutes(root)
	statsHandler.RegisterRoutes(root)

	// Public API-key surface
	apiV1Handler.RegisterRoutes(root)

	return router
}
