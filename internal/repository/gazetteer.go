package repository

import (
	"context"
	"fmt"
	"strings"

	"provider-match-api/internal/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

// SearchGazetteer performs a full-text search on the locations table, best match first
func (r *Repository) SearchGazetteer(ctx context.Context, query string, limit uint) ([]models.GazetteerEntry, error) {
	tsquery := goqu.L("plainto_tsquery('simple', ?)", query)

	sql, args, err := r.dialect.From(locationsTable).
		Select(
			"id",
			"province",
			"city",
			"address_line",
			goqu.L("ST_Y(geom::geometry)").As("latitude"),
			goqu.L("ST_X(geom::geometry)").As("longitude"),
		).
		Where(goqu.L("full_address_tsvector @@ ?", tsquery)).
		Order(goqu.L("ts_rank(full_address_tsvector, ?)", tsquery).Desc(), goqu.I("id").Asc()).
		Limit(limit).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	entries := []models.GazetteerEntry{}
	for rows.Next() {
		var e models.GazetteerEntry
		err := rows.Scan(
			&e.ID,
			&e.Province,
			&e.City,
			&e.AddressLine,
			&e.Latitude,
			&e.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return entries, nil
}

// Geocode resolves address to the coordinates of its best gazetteer match
func (r *Repository) Geocode(ctx context.Context, address string) (models.Coordinate, bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Coordinate{}, false, nil
	}

	entries, err := r.SearchGazetteer(ctx, address, 1)
	if err != nil {
		return models.Coordinate{}, false, err
	}
	if len(entries) == 0 {
		return models.Coordinate{}, false, nil
	}
	return models.Coordinate{Latitude: entries[0].Latitude, Longitude: entries[0].Longitude}, true, nil
}

// CopyGazetteer bulk loads gazetteer entries and returns the number of rows written
func (r *Repository) CopyGazetteer(ctx context.Context, entries []models.GazetteerEntry) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{locationsTable},
		[]string{"province", "city", "address_line", "geom"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", e.Longitude, e.Latitude) // PostGIS order: lon lat
			return []any{e.Province, e.City, e.AddressLine, geom}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy locations: %w", err)
	}
	return n, nil
}
