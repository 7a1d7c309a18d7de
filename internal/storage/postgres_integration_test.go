//go:build integration

package storage

import (
	"context"
	"os"
	"testing"

	"location-map/internal/types"
)

func TestPostgresStore_Integration(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, databaseURL, newTestLogger())
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}
	defer store.Close()

	for _, want := range []*types.Location{
		{Cidade: "London", Coordenadas: "51.5,-0.12", NomePC: "pc"},
		{Cidade: "São Paulo", Coordenadas: "-23.55,-46.63", NomePC: "pc", FusoHorario: "America/Sao_Paulo"},
	} {
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if *got != *want {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	}
}
