package mapview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"location-map/internal/config"
	"location-map/internal/types"
)

var (
	// ErrLoad covers every failure to obtain the payload: network, status and JSON errors
	ErrLoad = errors.New("failed to load location payload")
	// ErrMalformedPayload is returned when the payload has no usable coordinate pair
	ErrMalformedPayload = errors.New("malformed location payload")
)

// PayloadSource yields the /dados payload for one rendering pass
type PayloadSource interface {
	FetchPayload(ctx context.Context) (*types.LocationPayload, error)
}

// Options are the fixed parameters of every map view
type Options struct {
	ContainerID string
	Zoom        int
	TileURL     string
	MaxZoom     int
	Attribution string
}

// DefaultOptions returns the OpenStreetMap view used when nothing is configured
func DefaultOptions() Options {
	return Options{
		ContainerID: "map",
		Zoom:        13,
		TileURL:     config.DefaultTileURL,
		MaxZoom:     18,
		Attribution: config.DefaultAttribution,
	}
}

// OptionsFromConfig maps the map section of the configuration
func OptionsFromConfig(cfg config.MapConfig) Options {
	return Options{
		ContainerID: cfg.ContainerID,
		Zoom:        cfg.Zoom,
		TileURL:     cfg.TileURL,
		MaxZoom:     cfg.MaxZoom,
		Attribution: cfg.Attribution,
	}
}

// Renderer turns a location payload into a single-marker map view
type Renderer struct {
	source PayloadSource
	opts   Options
	logger *slog.Logger
}

func NewRenderer(source PayloadSource, opts Options, logger *slog.Logger) *Renderer {
	return &Renderer{
		source: source,
		opts:   opts,
		logger: logger.With("component", "map-renderer"),
	}
}

// Render fetches the payload once and builds the view. It keeps no state
// between calls, so every call yields an independent view.
func (r *Renderer) Render(ctx context.Context) (*types.MapView, error) {
	payload, err := r.source.FetchPayload(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return r.Build(payload)
}

// Build validates the payload and lays out the view
func (r *Renderer) Build(payload *types.LocationPayload) (*types.MapView, error) {
	if payload == nil || payload.Coordenadas == nil {
		return nil, fmt.Errorf("%w: coordenadas is missing", ErrMalformedPayload)
	}

	coords, err := types.ParseCoordinates(*payload.Coordenadas)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	center := coords.LatLng()
	view := &types.MapView{
		Container: r.opts.ContainerID,
		Center:    center,
		Zoom:      r.opts.Zoom,
		TileLayer: types.TileLayer{
			URLTemplate: r.opts.TileURL,
			MaxZoom:     r.opts.MaxZoom,
			Attribution: r.opts.Attribution,
		},
		Markers: []types.Marker{
			{
				Position:  center,
				Popup:     PopupContent(payloadCidade(payload), *payload.Coordenadas),
				PopupOpen: true,
			},
		},
	}

	r.logger.Debug("built map view",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"zoom", view.Zoom,
	)

	return view, nil
}
