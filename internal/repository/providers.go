package repository

import (
	"context"
	"fmt"

	"provider-match-api/internal/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
)

var providerColumns = []any{
	"id", "name", "bio", "photo_url", "role", "services", "availability",
	"address", "city", "province", "latitude", "longitude", "verified",
}

// FetchByRole returns every provider whose role is one of roles
func (r *Repository) FetchByRole(ctx context.Context, roles []models.Role) ([]models.Provider, error) {
	if len(roles) == 0 {
		return []models.Provider{}, nil
	}
	return r.queryProviders(ctx, roleIn(roles))
}

// FetchByRegion returns the matchable providers registered in city and province.
// An empty city or province is not used as a filter.
func (r *Repository) FetchByRegion(ctx context.Context, city, province string) ([]models.Provider, error) {
	return r.queryProviders(ctx, regionFilter(city, province)...)
}

func regionFilter(city, province string) []exp.Expression {
	where := []exp.Expression{roleIn(models.MatchableRoles)}
	if city != "" {
		where = append(where, goqu.Ex{"city": city})
	}
	if province != "" {
		where = append(where, goqu.Ex{"province": province})
	}
	return where
}

func (r *Repository) providerQuery(where ...exp.Expression) (string, []any, error) {
	sql, args, err := r.dialect.From(providersTable).
		Select(providerColumns...).
		Where(where...).
		Order(goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("repository: failed to build provider query: %w", err)
	}
	return sql, args, nil
}

func (r *Repository) queryProviders(ctx context.Context, where ...exp.Expression) ([]models.Provider, error) {
	sql, args, err := r.providerQuery(where...)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute provider query: %w", err)
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		var (
			p        models.Provider
			lat, lng *float64
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Bio,
			&p.PhotoURL,
			&p.Role,
			&p.Services,
			&p.Availability,
			&p.Location.Address,
			&p.Location.City,
			&p.Location.Province,
			&lat,
			&lng,
			&p.Verified,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan provider: %w", err)
		}
		if lat != nil && lng != nil {
			p.Location.Coordinates = &models.Coordinate{Latitude: *lat, Longitude: *lng}
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return providers, nil
}

// CopyProviders bulk loads providers and returns the number of rows written
func (r *Repository) CopyProviders(ctx context.Context, providers []models.Provider) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{providersTable},
		[]string{"id", "name", "bio", "photo_url", "role", "services", "availability", "address", "city", "province", "latitude", "longitude", "verified"},
		pgx.CopyFromSlice(len(providers), func(i int) ([]any, error) {
			p := providers[i]
			var lat, lng *float64
			if c := p.Location.Coordinates; c != nil {
				lat, lng = &c.Latitude, &c.Longitude
			}
			services := p.Services
			if services == nil {
				services = []string{}
			}
			return []any{
				p.ID, p.Name, p.Bio, p.PhotoURL, string(p.Role), services, string(p.Availability),
				p.Location.Address, p.Location.City, p.Location.Province, lat, lng, p.Verified,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy providers: %w", err)
	}
	return n, nil
}

func roleIn(roles []models.Role) exp.Expression {
	values := make([]string, len(roles))
	for i, role := range roles {
		values[i] = string(role)
	}
	return goqu.C("role").In(values)
}
