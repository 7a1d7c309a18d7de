package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"location-map/internal/providers/ipinfo"
	"location-map/internal/providers/openstreetmap"
	"location-map/internal/timezone"
	"location-map/internal/types"
)

// ErrNoCoordinates is returned when the geolocation provider has no position for the address
var ErrNoCoordinates = errors.New("geolocation returned no coordinates")

// Service determines where this machine is
type Service interface {
	// Locate resolves the public IP to a city and coordinate pair
	Locate(ctx context.Context) (*types.Location, error)
}

// PublicIPProvider returns the public address of this machine
type PublicIPProvider interface {
	PublicIP(ctx context.Context) (string, error)
}

// GeolocationProvider geolocates an IP address
type GeolocationProvider interface {
	Lookup(ctx context.Context, ip string) (*ipinfo.LookupAPIResponse, error)
}

// ReverseGeocodeProvider names the place at a coordinate
type ReverseGeocodeProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

type locationService struct {
	ipProvider      PublicIPProvider
	geoProvider     GeolocationProvider
	reverseProvider ReverseGeocodeProvider
	timezoneService timezone.Service
	machineName     string
	logger          *slog.Logger
}

// NewLocationService creates a location service. reverseProvider and
// timezoneService may be nil, which skips that enrichment.
func NewLocationService(
	ipProvider PublicIPProvider,
	geoProvider GeolocationProvider,
	reverseProvider ReverseGeocodeProvider,
	timezoneService timezone.Service,
	machineName string,
	logger *slog.Logger,
) Service {
	return &locationService{
		ipProvider:      ipProvider,
		geoProvider:     geoProvider,
		reverseProvider: reverseProvider,
		timezoneService: timezoneService,
		machineName:     machineName,
		logger:          logger.With("component", "location-service"),
	}
}

func (s *locationService) Locate(ctx context.Context) (*types.Location, error) {
	ip, err := s.ipProvider.PublicIP(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get public IP: %w", err)
	}

	geo, err := s.geoProvider.Lookup(ctx, ip)
	if err != nil {
		return nil, fmt.Errorf("failed to get geolocation: %w", err)
	}
	if geo.Loc == "" {
		return nil, fmt.Errorf("%w for %s", ErrNoCoordinates, ip)
	}

	coords, err := types.ParseCoordinates(geo.Loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geolocation: %w", err)
	}

	s.logger.Debug("geolocated public IP",
		"ip", ip,
		"city", geo.City,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	loc := &types.Location{
		Cidade:      geo.City,
		Coordenadas: geo.Loc,
		NomePC:      s.machineName,
		Estado:      geo.Region,
		Pais:        geo.Country,
	}

	s.enrich(ctx, coords, loc)

	return loc, nil
}

// enrich fills the timezone and, when the geolocation had no city, the reverse
// geocoded locality. Both lookups run in parallel and are best-effort.
func (s *locationService) enrich(ctx context.Context, coords types.Coords, loc *types.Location) {
	var (
		wg          sync.WaitGroup
		tz          string
		reverseResp *openstreetmap.LookupAPIResponse
	)

	if s.timezoneService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := s.timezoneService.GetTimezone(coords.Latitude, coords.Longitude)
			if err != nil {
				s.logger.Warn("failed to determine timezone", "error", err)
				return
			}
			tz = name
		}()
	}

	if s.reverseProvider != nil && loc.Cidade == "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := s.reverseProvider.Lookup(ctx, coords.Latitude, coords.Longitude)
			if err != nil {
				s.logger.Warn("failed to reverse geocode", "error", err)
				return
			}
			reverseResp = resp
		}()
	}

	wg.Wait()

	loc.FusoHorario = tz
	if reverseResp != nil {
		loc.Cidade = reverseResp.Address.Locality()
		if loc.Estado == "" {
			loc.Estado = reverseResp.Address.State
		}
		if loc.Pais == "" {
			loc.Pais = strings.ToUpper(reverseResp.Address.CountryCode)
		}
	}
}
