package mapview

import (
	"context"

	"location-map/internal/types"
)

// LocationLoader reads the persisted location record
type LocationLoader interface {
	Load(ctx context.Context) (*types.Location, error)
}

// StoreSource serves the payload straight from the location store
type StoreSource struct {
	loader LocationLoader
}

func NewStoreSource(loader LocationLoader) *StoreSource {
	return &StoreSource{loader: loader}
}

func (s *StoreSource) FetchPayload(ctx context.Context) (*types.LocationPayload, error) {
	loc, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	payload := loc.Payload()
	return &payload, nil
}
