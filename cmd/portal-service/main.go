package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratemynus-portal/internal/portal/config"
	delivery "ratemynus-portal/internal/portal/delivery/http"
	_ "ratemynus-portal/internal/portal/docs"
	"ratemynus-portal/internal/portal/repository"
	"ratemynus-portal/internal/portal/service"
	"ratemynus-portal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the portal service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Portal Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("catalog", cfg.Catalog.BaseURL))

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(cfg, appLogger)

	// Initialize services
	moduleSvc := service.NewModuleService(catalogRepo, appLogger)

	renderer, err := delivery.NewRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse templates", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(delivery.RequestID(appLogger))

	// Initialize handlers and routes
	moduleHandler := delivery.NewModuleHandler(moduleSvc, appLogger)
	moduleHandler.RegisterRoutes(e)
	apiV1 := e.Group("/api/v1")
	moduleHandler.RegisterAPIRoutes(apiV1.Group("/modules"))

	searchHandler := delivery.NewSearchHandler(catalogRepo, cfg.Search, appLogger)
	searchHandler.RegisterRoutes(e)

	delivery.NewHealthHandler().RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title RateMyNUS Portal API
// @version 1.0
// @description Composed module views for the RateMyNUS portal.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "portal-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-portal.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing portal-service CLI: %s\n", err)
		os.Exit(1)
	}
}
