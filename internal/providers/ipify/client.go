package ipify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"location-map/internal/tracing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// API Docs: https://www.ipify.org/
// Sample request: https://api.ipify.org?format=text
const (
	baseURL = "https://api.ipify.org"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewClient(logger *slog.Logger) *Client {
	return NewClientWithURL(baseURL, &http.Client{}, logger)
}

func NewClientWithURL(base string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		logger:     logger.With("component", "ipify-client"),
		tracer:     tracing.Tracer("location-map/ipify"),
	}
}

// PublicIP returns the public address the request originates from
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	ctx, span := c.tracer.Start(ctx, "ipify.PublicIP")
	defer span.End()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("format", "text")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	c.logger.Debug("fetching public IP", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("failed to fetch public IP", "error", err)
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ipify API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		err := fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
		span.RecordError(err)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return "", err
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("response is not an IP address: %q", ip)
	}

	c.logger.Debug("successfully fetched public IP", "ip", ip)

	return ip, nil
}
