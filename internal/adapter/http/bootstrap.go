package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"todoboard/internal/adapter/database/postgres"
	"todoboard/internal/adapter/database/sqlite"
	"todoboard/internal/adapter/http/routes"
	"todoboard/internal/shared"
	"todoboard/internal/ui"
	"todoboard/pkg/client"

	"github.com/gin-gonic/gin"
)

func StartServer(metrics *shared.AppMetrics, logger *shared.AppLogger) {
	StartServerWithConfig(metrics, logger, shared.GetDefaultConfig())
}

func StartServerWithConfig(metrics *shared.AppMetrics, logger *shared.AppLogger, config *shared.AppConfig) {
	container, closeDB, err := buildContainer(logger, metrics, config)

	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return
	}

	defer closeDB()

	pageHandler, formHandler := buildPageHandlers(config.ServerPort)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		UserHandler: container.UserHandler,
		TodoHandler: container.TodoHandler,
		NoteHandler: container.NoteHandler,
		PageHandler: pageHandler,
		FormHandler: formHandler,
		Cache:       container.Cache,
	}, metrics, logger, config)

	slog.Info("Server starting",
		"port", config.ServerPort,
		"environment", config.Environment,
		"rate_limit_enabled", config.RateLimitEnabled,
		"cache_enabled", config.CacheEnabled)

	srv := &http.Server{
		Addr:         ":" + config.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

func buildContainer(logger *shared.AppLogger, metrics *shared.AppMetrics, config *shared.AppConfig) (*Container, func(), error) {
	var cache *shared.ResponseCache

	if config.CacheEnabled {
		cache = shared.NewResponseCache(logger.Logger.Logger, metrics, config.CacheConfigs)
	}

	if os.Getenv("DB_BACKEND") == "sqlite" {
		db, err := sqlite.NewDB()

		if err != nil {
			return nil, nil, err
		}

		return NewSQLiteContainer(db, logger, metrics, cache), func() { db.Close() }, nil
	}

	db, err := postgres.NewDB(context.Background(), shared.DBConfigFromEnv())

	if err != nil {
		return nil, nil, err
	}

	return NewContainer(db, logger, metrics, cache), func() { db.Close() }, nil
}

func buildPageHandlers(port string) (gin.HandlerFunc, gin.HandlerFunc) {
	apiClient := client.New("http://localhost:" + port)

	return ui.PageHandler(apiClient), ui.FormHandler(apiClient)
}
