package mapview

import (
	"context"
	"errors"
	"testing"

	"location-map/internal/types"
)

type mockLoader struct {
	loc *types.Location
	err error
}

func (m *mockLoader) Load(ctx context.Context) (*types.Location, error) {
	return m.loc, m.err
}

func TestStoreSource_FetchPayload(t *testing.T) {
	source := NewStoreSource(&mockLoader{loc: &types.Location{Cidade: "London", Coordenadas: "51.5,-0.12"}})

	payload, err := source.FetchPayload(context.Background())
	if err != nil {
		t.Fatalf("FetchPayload() error = %v", err)
	}
	if *payload.Cidade != "London" || *payload.Coordenadas != "51.5,-0.12" {
		t.Errorf("FetchPayload() = %q/%q", *payload.Cidade, *payload.Coordenadas)
	}
}

func TestStoreSource_FetchPayload_Error(t *testing.T) {
	wantErr := errors.New("not found")
	source := NewStoreSource(&mockLoader{err: wantErr})

	if _, err := source.FetchPayload(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("FetchPayload() error = %v, want %v", err, wantErr)
	}
}
