package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"halal-atlas/backend/internal/api"
	"halal-atlas/backend/internal/api/handlers"
	"halal-atlas/backend/internal/auth"
	"halal-atlas/backend/internal/config"
	"halal-atlas/backend/internal/db"
	"halal-atlas/backend/internal/health"
	"halal-atlas/backend/internal/logger"
	"halal-atlas/backend/internal/matching"
	"halal-atlas/backend/internal/repository"
	"halal-atlas/backend/internal/scheduler"
	"halal-atlas/backend/internal/scrape"
	"halal-atlas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load and validate configuration first (before logger)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logger)

	logger.Info().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("configuration loaded successfully")

	logger.Info().Msg("running database migrations")
	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("database connected successfully")

	// Repositories
	restaurantRepo := repository.NewRestaurantRepository(database.Pool)
	evidenceRepo := repository.NewEvidenceRepository(database.Pool)
	overrideRepo := repository.NewOverrideRepository(database.Pool)
	listingRepo := repository.NewListingRepository(database.Pool)

	// Per-source configs from the tuned defaults, adjustable via env
	foodiesConfig := matching.SourceConfig{
		Source:    matching.VancouverFoodiesConfig.Source,
		Threshold: cfg.Sources.VancouverFoodiesThreshold,
	}
	mapsConfig := matching.SourceConfig{
		Source:    matching.GoogleMapsListConfig.Source,
		Threshold: cfg.Sources.GoogleMapsThreshold,
	}

	// Services
	scrapeClient := scrape.NewClient(cfg.Sources.FetchTimeout)
	foodiesScraper := scrape.NewFoodiesScraper(scrapeClient, cfg.Sources.VancouverFoodiesBaseURL)

	ingestService := service.NewIngestService(
		restaurantRepo, overrideRepo, evidenceRepo, foodiesScraper,
		foodiesConfig, mapsConfig, cfg.Sources.GoogleMapsHTMLPath)
	listingSyncService := service.NewListingSyncService(listingRepo, cfg.Sources.GoogleMapsHTMLPath)
	previewService := service.NewPreviewService(restaurantRepo, overrideRepo,
		[]matching.SourceConfig{foodiesConfig, mapsConfig})
	runLog := service.NewRunLog(20)

	// Scheduler (feature-flagged)
	if cfg.Features.EnableScheduler {
		cronScheduler := scheduler.NewScheduler(ingestService, runLog)
		if err := cronScheduler.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer cronScheduler.Stop()
	}

	// Handlers
	restaurantHandler := handlers.NewRestaurantHandler(restaurantRepo, evidenceRepo)
	matchHandler := handlers.NewMatchHandler(previewService)
	ingestHandler := handlers.NewIngestHandler(ingestService, listingSyncService, runLog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.CORSMiddleware(cfg.CORS))
	router.Use(api.ErrorHandlerMiddleware())

	healthChecker := health.NewHealthChecker(database, cfg.Database.HealthTimeout)
	router.GET("/health", healthChecker.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(auth.APIKeyMiddleware(cfg))
	{
		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", restaurantHandler.ListRestaurants)
			restaurants.GET("/:id", restaurantHandler.GetRestaurant)
			restaurants.GET("/:id/evidence", restaurantHandler.ListEvidence)
		}

		v1.POST("/match/preview", matchHandler.PreviewMatch)
		v1.POST("/sources/:source/ingest", ingestHandler.TriggerIngest)
		v1.GET("/ingest/runs", ingestHandler.ListRuns)
	}

	// Start server with configured bind address
	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to bind listener")
	}

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		logger.Fatal().Msg("failed to determine TCP address")
	}
	selectedPort := tcpAddr.Port

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: router,
	}

	go func() {
		logger.Info().
			Int("port", selectedPort).
			Str("addr", cfg.Server.Host).
			Msg("starting server")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")

	// Print the selected port on graceful exit for supervising processes
	fmt.Printf("PORT=%d\n", selectedPort)
}
