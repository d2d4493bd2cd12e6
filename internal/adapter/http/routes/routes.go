package routes

import (
	"net/http"

	"todoboard/internal/adapter/http/handler"
	"todoboard/internal/adapter/http/middleware"
	"todoboard/internal/shared"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler
	NoteHandler *handler.NoteHandler
	PageHandler gin.HandlerFunc
	FormHandler gin.HandlerFunc

	// Cache is shared with the handlers so mutations can invalidate it.
	Cache *shared.ResponseCache
}

func SetupRouter(handlers HandlersConfig, metrics *shared.AppMetrics, logger *shared.AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, shared.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *shared.AppMetrics, logger *shared.AppLogger, config *shared.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	shared.SetupGinMiddleware(router, "todoboard", metrics, logger)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	if config.RateLimitEnabled {
		limiter := shared.NewRateLimiter(logger.Logger.Logger, metrics)
		router.Use(limiter.RateLimitMiddleware())
	}

	if config.CacheEnabled && handlers.Cache != nil {
		router.Use(handlers.Cache.CacheMiddleware())
	}

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if handlers.PageHandler != nil {
		router.GET("/", handlers.PageHandler)
	}

	if handlers.FormHandler != nil {
		router.POST("/", handlers.FormHandler)
	}

	api := router.Group("/api")
	{
		if handlers.UserHandler != nil {
			api.GET("/users", handlers.UserHandler.GetUsers)
		}

		if handlers.TodoHandler != nil {
			api.GET("/todos", handlers.TodoHandler.GetTodos)
			api.POST("/todos", handlers.TodoHandler.CreateTodo)
			api.GET("/todos/:id", handlers.TodoHandler.GetTodoByID)
			api.PUT("/todos/:id", handlers.TodoHandler.UpdateTodo)
			api.DELETE("/todos/:id", handlers.TodoHandler.DeleteTodo)
		}

		if handlers.NoteHandler != nil {
			api.POST("/todos/:id/notes", handlers.NoteHandler.CreateNote)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}
