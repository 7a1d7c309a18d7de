package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"location-map/internal/providers/ipinfo"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "location-map:ipinfo:"

// GeolocationProvider looks up the geolocation of an IP address
type GeolocationProvider interface {
	Lookup(ctx context.Context, ip string) (*ipinfo.LookupAPIResponse, error)
}

// GeolocationCache is a read-through redis cache in front of a GeolocationProvider.
// Redis failures are logged and fall through to the provider.
type GeolocationCache struct {
	client   redis.UniversalClient
	provider GeolocationProvider
	ttl      time.Duration
	logger   *slog.Logger
}

func NewGeolocationCache(client redis.UniversalClient, provider GeolocationProvider, ttl time.Duration, logger *slog.Logger) *GeolocationCache {
	return &GeolocationCache{
		client:   client,
		provider: provider,
		ttl:      ttl,
		logger:   logger.With("component", "geolocation-cache"),
	}
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *GeolocationCache) Lookup(ctx context.Context, ip string) (*ipinfo.LookupAPIResponse, error) {
	key := keyPrefix + ip

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached ipinfo.LookupAPIResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.logger.Debug("geolocation cache hit", "ip", ip)
			return &cached, nil
		}
		c.logger.Warn("discarding unreadable cache entry", "ip", ip)
	case errors.Is(err, redis.Nil):
		c.logger.Debug("geolocation cache miss", "ip", ip)
	default:
		c.logger.Warn("geolocation cache read failed", "ip", ip, "error", err)
	}

	resp, err := c.provider.Lookup(ctx, ip)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("geolocation cache write failed", "ip", ip, "error", err)
	}

	return resp, nil
}
