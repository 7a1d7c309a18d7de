package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"location-map/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// API Docs: https://ipinfo.io/developers
// Sample request: https://ipinfo.io/8.8.8.8?token=TOKEN
const (
	baseURL = "https://ipinfo.io"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewClient(token string, logger *slog.Logger) *Client {
	return NewClientWithURL(baseURL, token, &http.Client{}, logger)
}

func NewClientWithURL(base, token string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		token:      token,
		logger:     logger.With("component", "ipinfo-client"),
		tracer:     tracing.Tracer("location-map/ipinfo"),
	}
}

// Lookup geolocates an IP address
func (c *Client) Lookup(ctx context.Context, ip string) (*LookupAPIResponse, error) {
	ctx, span := c.tracer.Start(ctx, "ipinfo.Lookup")
	defer span.End()
	span.SetAttributes(attribute.String("ip", ip))

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u = u.JoinPath(ip)
	if c.token != "" {
		q := u.Query()
		q.Set("token", c.token)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// The token is a credential, so only the IP is logged
	c.logger.Debug("fetching ipinfo geolocation", "ip", ip)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("failed to fetch ipinfo data", "ip", ip, "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ipinfo API returned error",
			"status_code", resp.StatusCode,
			"ip", ip,
			"response_body", string(body),
		)
		err := fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
		span.RecordError(err)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return nil, err
	}

	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("failed to decode ipinfo response", "ip", ip, "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched ipinfo geolocation",
		"ip", ip,
		"city", apiResp.City,
		"loc", apiResp.Loc,
	)

	return &apiResp, nil
}
