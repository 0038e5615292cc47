package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"provider-match-api/internal/apperrors"
	"provider-match-api/internal/geo"
	"provider-match-api/internal/location"
	"provider-match-api/internal/models"
	"provider-match-api/internal/observability"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTieBandKm is the width of the distance bands inside which rating decides the order.
// It is a tuning knob, not a property of the domain.
const DefaultTieBandKm = 5.0

const (
	pathNearby = "nearby"
	pathRegion = "region"
)

var tracer = otel.Tracer("provider-match-api/internal/service")

// CatalogStore reads provider records from the catalog.
type CatalogStore interface {
	FetchByRole(ctx context.Context, roles []models.Role) ([]models.Provider, error)
	FetchByRegion(ctx context.Context, city, province string) ([]models.Provider, error)
}

// MatchingOptions tunes a MatchingService. Zero values select the defaults.
type MatchingOptions struct {
	TieBandKm       float64
	RatingBatchSize int
	LocationTimeout time.Duration
	LocationMaxAge  time.Duration
	Clock           clockwork.Clock
}

// MatchingService answers "nearby providers" queries.
type MatchingService struct {
	catalog   CatalogStore
	ratings   *RatingAggregator
	addresses *location.AddressResolver
	device    *location.DeviceLocator
	metrics   *observability.Metrics
	tieBandKm float64
}

// NewMatchingService creates a matching service. geocoder and position may be nil
// when the deployment has no such capability.
func NewMatchingService(
	catalog CatalogStore,
	reviews ReviewStore,
	geocoder location.Geocoder,
	position location.PositionSource,
	metrics *observability.Metrics,
	opts MatchingOptions,
) *MatchingService {
	if opts.TieBandKm <= 0 {
		opts.TieBandKm = DefaultTieBandKm
	}
	maxAge := opts.LocationMaxAge
	if maxAge <= 0 {
		maxAge = location.DefaultMaxAge
	}

	return &MatchingService{
		catalog:   catalog,
		ratings:   NewRatingAggregator(reviews, opts.RatingBatchSize, metrics),
		addresses: location.NewAddressResolver(geocoder, opts.LocationTimeout),
		device:    location.NewDeviceLocator(position, opts.LocationTimeout, maxAge, opts.Clock),
		metrics:   metrics,
		tieBandKm: opts.TieBandKm,
	}
}

// FindNearby returns providers around point. An invalid point is rejected before any I/O.
func (s *MatchingService) FindNearby(ctx context.Context, point models.Coordinate, params models.SearchParams) ([]models.RankedProvider, error) {
	return s.findNearby(ctx, point, params, s.fetchByRole)
}

// FindByRegion returns providers registered in city and province, best rated first.
func (s *MatchingService) FindByRegion(ctx context.Context, city, province string, params models.SearchParams) (ranked []models.RankedProvider, err error) {
	ctx, span := tracer.Start(ctx, "MatchingService.FindByRegion")
	defer span.End()
	start := time.Now()
	defer func() { s.record(span, pathRegion, start, ranked, err) }()

	params = params.WithDefaults()
	city, province = strings.TrimSpace(city), strings.TrimSpace(province)
	if city == "" && province == "" {
		return []models.RankedProvider{}, nil
	}

	providers, err := s.catalog.FetchByRegion(ctx, city, province)
	if err != nil {
		return nil, s.catalogError(ctx, "failed to fetch providers by region", err)
	}

	ranked = FilterEligible(annotateAll(providers), params)
	s.ratings.Apply(ctx, ranked)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked = filterMinRating(ranked, params.MinRating)
	slices.SortStableFunc(ranked, func(a, b models.RankedProvider) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return truncate(ranked, params.ResultLimit), nil
}

// Match resolves descriptor to a query point and runs the nearby search, or falls
// back to the region search when no point can be established.
func (s *MatchingService) Match(ctx context.Context, descriptor models.LocationDescriptor, params models.SearchParams) ([]models.RankedProvider, error) {
	ctx, span := tracer.Start(ctx, "MatchingService.Match")
	defer span.End()

	if descriptor.Coordinates != nil {
		if point, ok := location.FromCoordinate(*descriptor.Coordinates); ok {
			s.countResolution("coordinate", true)
			return s.FindNearby(ctx, point, params)
		}
		s.countResolution("coordinate", false)
	}

	if s.canResolve(descriptor) {
		// The catalog query does not depend on the point, so it runs while we resolve.
		fetchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		pending := s.startCatalogFetch(fetchCtx)

		if point, ok := s.resolvePoint(ctx, descriptor); ok {
			return s.findNearby(ctx, point, params, func(ctx context.Context) ([]models.Provider, error) {
				return pending.wait(ctx)
			})
		}
		cancel()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	span.AddEvent("region fallback")
	return s.FindByRegion(ctx, descriptor.City, descriptor.Province, params)
}

func (s *MatchingService) findNearby(
	ctx context.Context,
	point models.Coordinate,
	params models.SearchParams,
	fetch func(context.Context) ([]models.Provider, error),
) (ranked []models.RankedProvider, err error) {
	ctx, span := tracer.Start(ctx, "MatchingService.FindNearby")
	defer span.End()
	start := time.Now()
	defer func() { s.record(span, pathNearby, start, ranked, err) }()

	if !geo.IsValidCoordinate(point) {
		return nil, apperrors.NewInvalidCoordinateError(point.Latitude, point.Longitude)
	}
	params = params.WithDefaults()

	providers, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	ranked = GetNearbyProviders(providers, point, params)
	s.ratings.Apply(ctx, ranked)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked = filterMinRating(ranked, params.MinRating)
	slices.SortStableFunc(ranked, s.compareNearby)
	return truncate(ranked, params.ResultLimit), nil
}

// compareNearby groups distances into consecutive bands of tieBandKm (0 to 5 km,
// 5 to 10 km, ...). Nearer bands come first; inside a band the better rated
// provider wins and equal ratings fall back to distance.
func (s *MatchingService) compareNearby(a, b models.RankedProvider) int {
	da, db := *a.DistanceKm, *b.DistanceKm
	if c := cmp.Compare(s.band(da), s.band(db)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
		return c
	}
	return cmp.Compare(da, db)
}

func (s *MatchingService) band(km float64) float64 {
	return math.Floor(km / s.tieBandKm)
}

func (s *MatchingService) fetchByRole(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.catalog.FetchByRole(ctx, models.MatchableRoles)
	if err != nil {
		return nil, s.catalogError(ctx, "failed to fetch providers by role", err)
	}
	return providers, nil
}

func (s *MatchingService) catalogError(ctx context.Context, msg string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("service: %s: %w", msg, ctxErr)
	}
	observability.LoggerFromContext(ctx).Error().Err(err).Msg(msg)
	return apperrors.NewCatalogUnavailableError(msg, err)
}

func (s *MatchingService) canResolve(d models.LocationDescriptor) bool {
	return (s.addresses.Available() && strings.TrimSpace(d.Address) != "") || s.device.Available()
}

// resolvePoint tries the address first, then the device position.
func (s *MatchingService) resolvePoint(ctx context.Context, d models.LocationDescriptor) (models.Coordinate, bool) {
	if s.addresses.Available() && strings.TrimSpace(d.Address) != "" {
		point, ok := s.addresses.Resolve(ctx, d.Address)
		s.countResolution("address", ok)
		if ok {
			return point, true
		}
	}
	if s.device.Available() {
		point, ok := s.device.CurrentPosition(ctx)
		s.countResolution("device", ok)
		if ok {
			return point, true
		}
	}
	return models.Coordinate{}, false
}

type pendingCatalog <-chan catalogResult

type catalogResult struct {
	providers []models.Provider
	err       error
}

func (s *MatchingService) startCatalogFetch(ctx context.Context) pendingCatalog {
	ch := make(chan catalogResult, 1)
	go func() {
		providers, err := s.fetchByRole(ctx)
		ch <- catalogResult{providers: providers, err: err}
	}()
	return ch
}

func (p pendingCatalog) wait(ctx context.Context) ([]models.Provider, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("service: waiting for catalog: %w", ctx.Err())
	case r := <-p:
		return r.providers, r.err
	}
}

func (s *MatchingService) countResolution(strategy string, resolved bool) {
	outcome := "absent"
	if resolved {
		outcome = "resolved"
	}
	s.metrics.LocationResolutions.WithLabelValues(strategy, outcome).Inc()
}

func (s *MatchingService) record(span trace.Span, path string, start time.Time, ranked []models.RankedProvider, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("match.results", len(ranked)))
		s.metrics.MatchResults.Observe(float64(len(ranked)))
	}
	s.metrics.MatchRequests.WithLabelValues(path, outcome).Inc()
	s.metrics.MatchDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

func filterMinRating(ranked []models.RankedProvider, minRating float64) []models.RankedProvider {
	if minRating <= 0 {
		return ranked
	}
	out := ranked[:0]
	for _, r := range ranked {
		if r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}

func truncate(ranked []models.RankedProvider, limit int) []models.RankedProvider {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// IsUnavailable reports whether err means the catalog could not be reached.
func IsUnavailable(err error) bool {
	return apperrors.IsType(err, apperrors.ErrorTypeCatalogUnavailable)
}

// IsCanceled reports whether err stems from the caller abandoning the request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
