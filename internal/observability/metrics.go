package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for matching requests and their collaborators.
type Metrics struct {
	MatchRequests  *prometheus.CounterVec   // labels: path={nearby,region}, outcome={success,error}
	MatchDuration  *prometheus.HistogramVec // labels: path
	MatchResults   prometheus.Histogram
	RatingDegraded prometheus.Counter

	// Location resolution and geocoding.
	LocationResolutions *prometheus.CounterVec // labels: strategy={coordinate,address,device}, outcome={resolved,absent}
	GeocodeCache        *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.MatchRequests,
		m.MatchDuration,
		m.MatchResults,
		m.RatingDegraded,
		m.LocationResolutions,
		m.GeocodeCache,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MatchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provider_match",
			Name:      "requests_total",
			Help:      "Matching requests by path and outcome.",
		}, []string{"path", "outcome"}),
		MatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "provider_match",
			Name:      "request_duration_seconds",
			Help:      "Duration of a complete matching request.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"path"}),
		MatchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "provider_match",
			Name:      "results_returned",
			Help:      "Number of providers returned per matching request.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		RatingDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "provider_match",
			Name:      "rating_aggregation_degraded_total",
			Help:      "Requests answered with zero ratings because review aggregation failed.",
		}),
		LocationResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provider_match",
			Name:      "location_resolutions_total",
			Help:      "Query point resolution attempts by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provider_match",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
	}
}
