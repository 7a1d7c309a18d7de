package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"location-map/internal/config"
	"location-map/internal/tracing"

	_ "location-map/docs" // Import generated docs
)

// @title Location Map API
// @version 1.0
// @description Serves the machine's geolocated position and renders it on an OpenStreetMap map
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run wires the application and serves until ctx is canceled. Resources are
// released before it returns, on every path.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Init(cfg.Tracing.ZipkinURL, cfg.Tracing.ServiceName, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush spans", "error", err)
		}
	}()

	// Create app
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}
	defer app.Close()

	if cfg.App.LocateOnStartup {
		if err := app.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to locate on startup: %w", err)
		}
	}

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	return app.Run(ctx, cfg.GetServerAddr())
}
