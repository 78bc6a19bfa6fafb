package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/feedharvest/internal/api"
	"github.com/bilgisen/feedharvest/internal/app"
	"github.com/bilgisen/feedharvest/internal/config"
	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.IsDevelopment(),
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	pipeline, err := app.Build(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}
	defer func() {
		log.Info().Msg("Closing probe cache...")
		if err := pipeline.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing probe cache")
		}
	}()

	// Create Fiber app with custom config
	server := api.NewApp(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	})

	routes := api.RouteOptions{AdminAPIKey: cfg.AdminAPIKey}
	if !cfg.MediaLibraryEnabled {
		routes.ImageDir = cfg.ImageStoragePath
	}
	handlers := api.NewHandlers(pipeline.Processor, pipeline.Content, pipeline.Fetcher, 0)
	api.SetupRoutes(server, handlers, routes)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
