package location

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"provider-match-api/internal/models"
	"provider-match-api/internal/observability"
)

// Cache is the byte cache the geocoder decorator writes through.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGeocoder wraps a Geocoder and remembers positive results.
type CachedGeocoder struct {
	inner   Geocoder
	cache   Cache
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner Geocoder, cache Cache, ttl time.Duration, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (models.Coordinate, bool, error) {
	key := geocodeCacheKey(address)

	if payload, err := g.cache.Get(ctx, key); err == nil {
		var coord models.Coordinate
		if err := json.Unmarshal(payload, &coord); err == nil {
			g.metrics.GeocodeCache.WithLabelValues("hit").Inc()
			return coord, true, nil
		}
	}
	g.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	coord, ok, err := g.inner.Geocode(ctx, address)
	if err != nil || !ok {
		return coord, ok, err
	}

	// Misses are not cached.
	if payload, err := json.Marshal(coord); err == nil {
		if err := g.cache.Set(ctx, key, payload, g.ttl); err != nil {
			observability.LoggerFromContext(ctx).Debug().Err(err).Msg("failed to cache geocode")
		}
	}
	return coord, true, nil
}

func geocodeCacheKey(address string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	sum := sha256.Sum256([]byte(normalized))
	return "geocode:" + hex.EncodeToString(sum[:])
}
