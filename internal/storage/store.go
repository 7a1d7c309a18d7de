package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"location-map/internal/config"
	"location-map/internal/types"
)

// ErrNotFound is returned by Load when no location has been saved yet
var ErrNotFound = errors.New("location not found")

// Store persists the single current location record
type Store interface {
	Save(ctx context.Context, loc *types.Location) error
	Load(ctx context.Context) (*types.Location, error)
	Close() error
}

// New builds the store selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.File.Path, logger), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg.Postgres.URL, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
