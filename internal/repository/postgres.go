package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	providersTable = "providers"
	reviewsTable   = "reviews"
	locationsTable = "locations"
)

// Repository reads and loads the provider catalog, reviews and the gazetteer in PostgreSQL
type Repository struct {
	db      *pgxpool.Pool
	dialect goqu.DialectWrapper
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db, dialect: goqu.Dialect("postgres")}
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("repository: ping failed: %w", err)
	}
	return nil
}

const schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS providers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		services TEXT[] NOT NULL DEFAULT '{}',
		availability TEXT NOT NULL DEFAULT 'available',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		province TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		verified BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE INDEX IF NOT EXISTS providers_role_idx ON providers (role);
	CREATE INDEX IF NOT EXISTS providers_region_idx ON providers (city, province);

	CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		provider_id TEXT NOT NULL,
		rating SMALLINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS reviews_provider_id_idx ON reviews (provider_id);

	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		province TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		address_line TEXT NOT NULL DEFAULT '',
		full_address_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('simple', address_line || ' ' || city || ' ' || province)
		) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS locations_geom_idx ON locations USING GIST (geom);
	CREATE INDEX IF NOT EXISTS locations_full_address_tsvector_idx ON locations USING GIN (full_address_tsvector);
`

// EnsureSchema creates the tables and indexes if they do not exist yet
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to ensure schema: %w", err)
	}
	return nil
}

// Count returns the number of rows in table
func (r *Repository) Count(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.dialect.From(table).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count %s: %w", table, err)
	}
	return count, nil
}
