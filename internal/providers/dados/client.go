package dados

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"location-map/internal/tracing"
	"location-map/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client reads the location payload from a /dados endpoint
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewClient(url string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		logger:     logger.With("component", "dados-client"),
		tracer:     tracing.Tracer("location-map/dados"),
	}
}

// FetchPayload issues one GET against the endpoint and decodes the JSON body
func (c *Client) FetchPayload(ctx context.Context) (*types.LocationPayload, error) {
	ctx, span := c.tracer.Start(ctx, "dados.FetchPayload")
	defer span.End()
	span.SetAttributes(attribute.String("url", c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, req)

	c.logger.Debug("fetching location payload", "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Debug("location endpoint returned error",
			"status_code", resp.StatusCode,
			"url", c.url,
		)
		err := fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
		span.RecordError(err)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return nil, err
	}

	var payload types.LocationPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched location payload",
		"url", c.url,
		"has_coordenadas", payload.Coordenadas != nil,
		"has_cidade", payload.Cidade != nil,
	)

	return &payload, nil
}
