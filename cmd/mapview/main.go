// Command mapview fetches the location record from a /dados endpoint and
// writes the map page to a file or stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"location-map/internal/config"
	"location-map/internal/mapview"
	"location-map/internal/providers/dados"
	"location-map/internal/tracing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	flags := pflag.NewFlagSet("mapview", pflag.ExitOnError)
	flags.String("map.sourceurl", "", "URL of the /dados endpoint")
	flags.Int("map.zoom", 0, "initial zoom level")
	flags.String("map.containerid", "", "id of the map container element")
	flags.String("log.level", "", "log level (debug, info, warn, error)")
	out := flags.StringP("out", "o", "", "write the page to this file instead of stdout")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	// Only flags given on the command line override config and env
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed && f.Name != "out" {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	cfg, err := config.LoadFrom(v)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// stdout may carry the page, so logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(cfg.Log.Level)}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg.Tracing.ZipkinURL, cfg.Tracing.ServiceName, logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush spans", "error", err)
		}
	}()

	if err := run(ctx, cfg, *out, logger); err != nil {
		logger.Error("failed to write map page", "error", err)
		os.Exit(1)
	}
}

// createOutput opens the page destination; replaced in tests
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func run(ctx context.Context, cfg *config.Config, out string, logger *slog.Logger) (err error) {
	source := dados.NewClient(cfg.Map.SourceURL, &http.Client{Timeout: cfg.Providers.Timeout}, logger)
	renderer := mapview.NewRenderer(source, mapview.OptionsFromConfig(cfg.Map), logger)

	var w io.Writer = os.Stdout
	if out != "" {
		f, createErr := createOutput(out)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}()
		w = f
	}

	// Load failures are logged by RenderPage and still produce a page
	if err := renderer.RenderPage(ctx, w); err != nil {
		return err
	}
	if out != "" {
		logger.Info("map page written", "path", out, "source", cfg.Map.SourceURL)
	}
	return nil
}
