package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"location-map/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS localizacao (
	id           SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	cidade       TEXT NOT NULL,
	coordenadas  TEXT NOT NULL,
	nome_pc      TEXT NOT NULL,
	estado       TEXT NOT NULL DEFAULT '',
	pais         TEXT NOT NULL DEFAULT '',
	fuso_horario TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresStore keeps the location as the single row of the localizacao table
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore connects, verifies the connection and creates the table if needed
func NewPostgresStore(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres storage requires a database URL")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger.With("component", "postgres-store"),
	}, nil
}

func (s *PostgresStore) Save(ctx context.Context, loc *types.Location) error {
	q := `
	INSERT INTO localizacao (id, cidade, coordenadas, nome_pc, estado, pais, fuso_horario, updated_at)
	VALUES (1, $1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (id) DO UPDATE SET
		cidade = EXCLUDED.cidade,
		coordenadas = EXCLUDED.coordenadas,
		nome_pc = EXCLUDED.nome_pc,
		estado = EXCLUDED.estado,
		pais = EXCLUDED.pais,
		fuso_horario = EXCLUDED.fuso_horario,
		updated_at = now();
	`
	_, err := s.pool.Exec(ctx, q, loc.Cidade, loc.Coordenadas, loc.NomePC, loc.Estado, loc.Pais, loc.FusoHorario)
	if err != nil {
		return fmt.Errorf("save location: upsert localizacao: %w", err)
	}

	s.logger.Debug("saved location", "cidade", loc.Cidade)
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*types.Location, error) {
	q := `
	SELECT cidade, coordenadas, nome_pc, estado, pais, fuso_horario
	FROM localizacao
	WHERE id = 1;
	`

	var loc types.Location
	err := s.pool.QueryRow(ctx, q).Scan(&loc.Cidade, &loc.Coordenadas, &loc.NomePC, &loc.Estado, &loc.Pais, &loc.FusoHorario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load location: query localizacao: %w", err)
	}
	return &loc, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
