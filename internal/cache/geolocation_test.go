package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"location-map/internal/providers/ipinfo"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockGeolocationProvider struct {
	response *ipinfo.LookupAPIResponse
	err      error
	calls    int
}

func (m *mockGeolocationProvider) Lookup(ctx context.Context, ip string) (*ipinfo.LookupAPIResponse, error) {
	m.calls++
	return m.response, m.err
}

func newTestCache(t *testing.T, provider GeolocationProvider) (*GeolocationCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGeolocationCache(client, provider, time.Hour, logger), mr
}

func TestGeolocationCache_Lookup_ReadThrough(t *testing.T) {
	provider := &mockGeolocationProvider{
		response: &ipinfo.LookupAPIResponse{IP: "203.0.113.7", City: "London", Loc: "51.5,-0.12"},
	}
	c, mr := newTestCache(t, provider)
	ctx := context.Background()

	first, err := c.Lookup(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	second, err := c.Lookup(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if first.City != "London" || second.City != "London" {
		t.Errorf("City = %q/%q, want London", first.City, second.City)
	}
	if second.Loc != "51.5,-0.12" {
		t.Errorf("cached Loc = %q, want 51.5,-0.12", second.Loc)
	}
	if !mr.Exists(keyPrefix + "203.0.113.7") {
		t.Error("cache key was not written")
	}
	if ttl := mr.TTL(keyPrefix + "203.0.113.7"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
}

func TestGeolocationCache_Lookup_Expiry(t *testing.T) {
	provider := &mockGeolocationProvider{
		response: &ipinfo.LookupAPIResponse{IP: "203.0.113.7", City: "London"},
	}
	c, mr := newTestCache(t, provider)
	ctx := context.Background()

	if _, err := c.Lookup(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	mr.FastForward(2 * time.Hour)
	if _, err := c.Lookup(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}

	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}

func TestGeolocationCache_Lookup_ProviderError(t *testing.T) {
	provider := &mockGeolocationProvider{err: errors.New("ipinfo down")}
	c, mr := newTestCache(t, provider)

	if _, err := c.Lookup(context.Background(), "203.0.113.7"); err == nil {
		t.Fatal("Lookup() expected error but got none")
	}
	if mr.Exists(keyPrefix + "203.0.113.7") {
		t.Error("failed lookup must not be cached")
	}
}

func TestGeolocationCache_Lookup_RedisDown(t *testing.T) {
	provider := &mockGeolocationProvider{
		response: &ipinfo.LookupAPIResponse{IP: "203.0.113.7", City: "London"},
	}
	c, mr := newTestCache(t, provider)
	mr.Close()

	got, err := c.Lookup(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	if got.City != "London" {
		t.Errorf("City = %q, want London", got.City)
	}
}

func TestGeolocationCache_Lookup_CorruptEntry(t *testing.T) {
	provider := &mockGeolocationProvider{
		response: &ipinfo.LookupAPIResponse{IP: "203.0.113.7", City: "London"},
	}
	c, mr := newTestCache(t, provider)
	if err := mr.Set(keyPrefix+"203.0.113.7", "{not json"); err != nil {
		t.Fatalf("miniredis Set() error = %v", err)
	}

	got, err := c.Lookup(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if got.City != "London" {
		t.Errorf("City = %q, want London", got.City)
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := NewRedisClient(context.Background(), addr)
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := NewRedisClient(context.Background(), addr); err == nil {
		t.Error("NewRedisClient() expected error for stopped server")
	}
}
