package service

import (
	"context"
	"fmt"
	"sync"

	"provider-match-api/internal/models"
	"provider-match-api/internal/observability"

	"golang.org/x/sync/errgroup"
)

// DefaultRatingBatchSize matches the IN-list ceiling of common document stores.
const DefaultRatingBatchSize = 30

// MaxConcurrentRatingFetches caps the review lookups in flight for one request.
const MaxConcurrentRatingFetches = 4

// ReviewStore returns the raw rating values of the given providers, keyed by provider id.
type ReviewStore interface {
	FetchRatingsFor(ctx context.Context, providerIDs []string) (map[string][]int, error)
}

// RatingSummary is the aggregated rating of a single provider.
type RatingSummary struct {
	Rating      float64
	ReviewCount int
}

// RatingAggregator computes mean ratings with batched review lookups.
type RatingAggregator struct {
	store     ReviewStore
	batchSize int
	metrics   *observability.Metrics
}

// NewRatingAggregator creates an aggregator that queries at most batchSize ids per lookup.
func NewRatingAggregator(store ReviewStore, batchSize int, metrics *observability.Metrics) *RatingAggregator {
	if batchSize <= 0 {
		batchSize = DefaultRatingBatchSize
	}
	return &RatingAggregator{store: store, batchSize: batchSize, metrics: metrics}
}

// Aggregate returns a summary for every id. Ids without reviews get a zero summary.
func (a *RatingAggregator) Aggregate(ctx context.Context, ids []string) (map[string]RatingSummary, error) {
	ids = uniqueIDs(ids)
	summaries := make(map[string]RatingSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	var mu sync.Mutex
	ratings := make(map[string][]int, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentRatingFetches)
	for _, chunk := range chunkIDs(ids, a.batchSize) {
		chunk := chunk
		g.Go(func() error {
			batch, err := a.store.FetchRatingsFor(gctx, chunk)
			if err != nil {
				return fmt.Errorf("service: fetch ratings for %d providers: %w", len(chunk), err)
			}
			mu.Lock()
			defer mu.Unlock()
			for id, values := range batch {
				ratings[id] = append(ratings[id], values...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		summaries[id] = summarize(ratings[id])
	}
	return summaries, nil
}

// Apply annotates ranked in place with aggregated ratings. It never fails: when
// aggregation errors, every provider keeps a zero rating and the failure is logged.
func (a *RatingAggregator) Apply(ctx context.Context, ranked []models.RankedProvider) {
	if len(ranked) == 0 {
		return
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}

	summaries, err := a.Aggregate(ctx, ids)
	if err != nil {
		for i := range ranked {
			ranked[i].Rating = 0
			ranked[i].ReviewCount = 0
		}
		if ctx.Err() != nil {
			// Abandoned by the caller, not degraded.
			return
		}
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Int("providers", len(ids)).
			Msg("rating aggregation degraded, returning zero ratings")
		a.metrics.RatingDegraded.Inc()
		return
	}

	for i := range ranked {
		s := summaries[ranked[i].ID]
		ranked[i].Rating = s.Rating
		ranked[i].ReviewCount = s.ReviewCount
	}
}

// summarize ignores values outside the 1..5 star scale.
func summarize(values []int) RatingSummary {
	sum, count := 0, 0
	for _, v := range values {
		if v < 1 || v > 5 {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return RatingSummary{}
	}
	return RatingSummary{
		Rating:      float64(sum) / float64(count),
		ReviewCount: count,
	}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func chunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
