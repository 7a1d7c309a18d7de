package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"location-map/internal/cache"
	"location-map/internal/config"
	"location-map/internal/location"
	"location-map/internal/mapview"
	"location-map/internal/providers/ipify"
	"location-map/internal/providers/ipinfo"
	"location-map/internal/providers/openstreetmap"
	"location-map/internal/storage"
	"location-map/internal/timezone"

	"github.com/gin-gonic/gin"
)

// errLocate marks a refresh that failed upstream, before anything was saved
var errLocate = errors.New("failed to locate")

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	store           storage.Store
	locationService location.Service
	renderer        *mapview.Renderer
	cfg             *config.Config
	closers         []func() error
}

// NewApp creates a new application with real providers and the configured store
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	closers := []func() error{store.Close}

	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}

	var geoProvider location.GeolocationProvider = ipinfo.NewClientWithURL(
		cfg.Providers.IpinfoURL, cfg.Providers.IpinfoToken, httpClient, logger,
	)
	if cfg.Cache.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		closers = append(closers, client.Close)
		geoProvider = cache.NewGeolocationCache(client, geoProvider, cfg.Cache.TTL, logger)
		logger.Info("geolocation cache enabled", "redis_addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	tzSvc, err := timezone.NewService()
	if err != nil {
		// The timezone is an optional field of the record
		logger.Warn("timezone lookup disabled", "error", err)
	}

	locationSvc := location.NewLocationService(
		ipify.NewClientWithURL(cfg.Providers.IpifyURL, httpClient, logger),
		geoProvider,
		openstreetmap.NewClientWithURL(cfg.Providers.NominatimURL, httpClient, logger),
		tzSvc,
		cfg.App.MachineName,
		logger,
	)

	app := NewAppWithDependencies(cfg, logger, store, locationSvc)
	app.closers = closers
	return app, nil
}

// NewAppWithDependencies wires the router around the given store and location service.
// This is useful for testing with mock dependencies.
func NewAppWithDependencies(cfg *config.Config, logger *slog.Logger, store storage.Store, locationSvc location.Service) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracingMiddleware())
	router.Use(loggingMiddleware(logger))

	app := &App{
		router:          router,
		logger:          logger,
		store:           store,
		locationService: locationSvc,
		renderer:        mapview.NewRenderer(mapview.NewStoreSource(store), mapview.OptionsFromConfig(cfg.Map), logger),
		cfg:             cfg,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized", "storage", cfg.Storage.Backend)

	return app
}

// Refresh locates this machine and persists the result
func (app *App) Refresh(ctx context.Context) error {
	loc, err := app.locationService.Locate(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errLocate, err)
	}
	if err := app.store.Save(ctx, loc); err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	app.logger.Info("location saved", "cidade", loc.Cidade, "coordenadas", loc.Coordenadas)
	return nil
}

// Run serves HTTP until ctx is canceled, then drains in-flight requests
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("received termination signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close releases the store and cache connections
func (app *App) Close() {
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			app.logger.Warn("failed to close resource", "error", err)
		}
	}
}
