package repository

import (
	"context"
	"fmt"

	"provider-match-api/internal/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

// FetchRatingsFor returns the star ratings of the given providers keyed by provider id.
// Providers without reviews are absent from the result.
func (r *Repository) FetchRatingsFor(ctx context.Context, providerIDs []string) (map[string][]int, error) {
	ratings := make(map[string][]int, len(providerIDs))
	if len(providerIDs) == 0 {
		return ratings, nil
	}

	sql, args, err := r.dialect.From(reviewsTable).
		Select("provider_id", "rating").
		Where(goqu.C("provider_id").In(providerIDs)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build review query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute review query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     string
			rating int
		)
		if err := rows.Scan(&id, &rating); err != nil {
			return nil, fmt.Errorf("repository: failed to scan review: %w", err)
		}
		ratings[id] = append(ratings[id], rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return ratings, nil
}

// CopyReviews bulk loads reviews and returns the number of rows written
func (r *Repository) CopyReviews(ctx context.Context, reviews []models.Review) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{reviewsTable},
		[]string{"provider_id", "rating"},
		pgx.CopyFromSlice(len(reviews), func(i int) ([]any, error) {
			return []any{reviews[i].ProviderID, int16(reviews[i].Rating)}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy reviews: %w", err)
	}
	return n, nil
}
