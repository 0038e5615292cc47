// Package location obtains query points for matching. Every strategy reports
// absence as (Coordinate{}, false); a missing location is an expected outcome.
package location

import (
	"context"
	"strings"
	"time"

	"provider-match-api/internal/geo"
	"provider-match-api/internal/models"
	"provider-match-api/internal/observability"
)

// DefaultTimeout bounds a single resolution attempt.
const DefaultTimeout = 10 * time.Second

// Geocoder converts free-text addresses to coordinates. ok is false when the address is unknown.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, bool, error)
}

// FromCoordinate passes an explicit coordinate through when it is valid.
func FromCoordinate(c models.Coordinate) (models.Coordinate, bool) {
	if !geo.IsValidCoordinate(c) {
		return models.Coordinate{}, false
	}
	return c, true
}

// AddressResolver resolves addresses through an optional Geocoder.
type AddressResolver struct {
	geocoder Geocoder
	timeout  time.Duration
}

// NewAddressResolver creates an address resolver. geocoder may be nil, in which case
// every address resolves to "no location".
func NewAddressResolver(geocoder Geocoder, timeout time.Duration) *AddressResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AddressResolver{geocoder: geocoder, timeout: timeout}
}

// Available reports whether a geocoder is configured.
func (r *AddressResolver) Available() bool {
	return r != nil && r.geocoder != nil
}

// Resolve geocodes address. Failures are logged and reported as absence.
func (r *AddressResolver) Resolve(ctx context.Context, address string) (models.Coordinate, bool) {
	address = strings.TrimSpace(address)
	if address == "" || !r.Available() {
		return models.Coordinate{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	coord, ok, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("address", address).
			Msg("address geocoding failed")
		return models.Coordinate{}, false
	}
	if !ok {
		return models.Coordinate{}, false
	}
	return FromCoordinate(coord)
}
