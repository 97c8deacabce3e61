// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/api"
	"github.com/Corphon/MangaStudioMCP/internal/app"
	"github.com/Corphon/MangaStudioMCP/internal/config"
	"github.com/Corphon/MangaStudioMCP/internal/logging"
)

func main() {
	// 1. Load base configuration from the environment.
	baseConfig, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	// 2. Create the directory layout.
	createDirectories(baseConfig)

	// 3. Initialize the configuration system (merges saved provider
	// credentials over the environment).
	if err := config.InitConfig(baseConfig.DataDir); err != nil {
		log.Fatalf("initializing configuration failed: %v", err)
	}
	cfg := config.GetCurrentConfig()

	// 4. Set up structured logging.
	logger, err := logging.New(cfg.LogDir, cfg.DebugMode)
	if err != nil {
		log.Fatalf("initializing logger failed: %v", err)
	}
	defer logger.Sync()

	// 5. Initialize all services in dependency order.
	container, err := app.InitServices(cfg, logger)
	if err != nil {
		logger.Fatal("initializing services failed", zap.Error(err))
	}

	// 6. Set up routing against the registered services.
	router, err := api.SetupRouter(container, logger, cfg.DebugMode)
	if err != nil {
		logger.Fatal("setting up router failed", zap.Error(err))
	}

	// 7. Start the server and wait for shutdown.
	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("url", "http://localhost:"+cfg.Port))
	runWithGracefulShutdown(router, cfg.Port, logger)
}

func runWithGracefulShutdown(router *gin.Engine, port string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func createDirectories(cfg *config.AppConfig) {
	dirs := []string{
		cfg.DataDir,
		filepath.Join(cfg.DataDir, "exports"),
		cfg.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("creating directory %s failed: %v", dir, err)
		}
	}
}
