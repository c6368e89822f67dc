package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"babounette/internal/api/handlers"
	"babounette/internal/api/handlers/health"
	"babounette/internal/api/middleware"
	aiservice "babounette/internal/core/ai/service"
	"babounette/internal/core/calendar"
	"babounette/internal/core/chat"
	"babounette/internal/core/recipe"
	"babounette/internal/core/shopping"
	"babounette/internal/infrastructure/config"
	"babounette/internal/infrastructure/database"
	"babounette/internal/pkg/common"
)

// maxBodySize plafond du corps des requêtes, les images de recettes passent
// en base64 dans le JSON
const maxBodySize = 10 << 20

// SetupRouter construit le moteur gin et câble tous les services
func SetupRouter(cfg *config.Config, db *database.DB, aiSvc *aiservice.Service) *gin.Engine {
	common.LogInfo("démarrage de l'application",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// dépôts
	shoppingRepo := database.NewShoppingRepo(db)
	pantryRepo := database.NewPantryRepo(db)
	categoryRepo := database.NewCategoryRepo(db)
	historyRepo := database.NewHistoryRepo(db)
	recipeRepo := database.NewRecipeRepo(db)
	calendarRepo := database.NewCalendarRepo(db)
	conversationRepo := database.NewConversationRepo(db)

	// services
	activeList := shopping.NewActiveListService(shoppingRepo, historyRepo, categoryRepo)
	pantry := shopping.NewPantryService(pantryRepo, categoryRepo)
	recipes := recipe.NewService(recipeRepo, activeList, cfg.Storage.ImageBudgetBytes)
	calendarSvc := calendar.NewService(calendarRepo)
	chatSvc := chat.NewService(conversationRepo, aiSvc, cfg.Chat)

	// handlers
	healthHandler := health.NewHandler(cfg, db)
	shoppingHandler := handlers.NewShoppingHandler(activeList)
	pantryHandler := handlers.NewPantryHandler(pantry)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	recipeHandler := handlers.NewRecipeHandler(recipes)
	calendarHandler := handlers.NewCalendarHandler(calendarSvc)
	chatHandler := handlers.NewChatHandler(chatSvc)

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	{
		shoppingGroup := api.Group("/shopping")
		{
			shoppingGroup.GET("/items", shoppingHandler.List)
			shoppingGroup.POST("/items", shoppingHandler.Add)
			shoppingGroup.POST("/items/import", shoppingHandler.Import)
			shoppingGroup.PUT("/items/:id", shoppingHandler.Update)
			shoppingGroup.DELETE("/items/:id", shoppingHandler.Remove)
			shoppingGroup.POST("/items/:id/toggle", shoppingHandler.Toggle)
			shoppingGroup.GET("/completed", shoppingHandler.Completed)
			shoppingGroup.GET("/suggestions", shoppingHandler.Suggestions)
		}

		pantryGroup := api.Group("/pantry")
		{
			pantryGroup.GET("/items", pantryHandler.List)
			pantryGroup.POST("/items", pantryHandler.Create)
			pantryGroup.PUT("/items/:id", pantryHandler.Update)
			pantryGroup.DELETE("/items/:id", pantryHandler.Delete)
			pantryGroup.POST("/items/:id/toggle", pantryHandler.Toggle)
		}

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", categoryHandler.Create)
		api.DELETE("/categories/:name", categoryHandler.Delete)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandler.List)
			recipeGroup.POST("", recipeHandler.Create)
			recipeGroup.GET("/:id", recipeHandler.Get)
			recipeGroup.DELETE("/:id", recipeHandler.Delete)
			recipeGroup.POST("/:id/to-shopping-list", recipeHandler.ToShoppingList)
		}

		calendarGroup := api.Group("/calendar")
		{
			calendarGroup.GET("/events", calendarHandler.List)
			calendarGroup.POST("/events", calendarHandler.Create)
			calendarGroup.GET("/events/:id", calendarHandler.Get)
			calendarGroup.PUT("/events/:id", calendarHandler.Update)
			calendarGroup.DELETE("/events/:id", calendarHandler.Delete)
		}

		api.POST("/chat", chatHandler.Stream)
		api.POST("/chat/session", chatHandler.NewSession)
		api.GET("/chat/history", chatHandler.History)
		api.DELETE("/chat/history", chatHandler.Clear)
	}

	common.LogInfo("routeur initialisé",
		zap.String("version", cfg.App.Version),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}
