package models

const (
	DefaultMaxDistanceKm = 50.0
	DefaultResultLimit   = 20
)

// SearchParams tunes a matching request.
type SearchParams struct {
	MaxDistanceKm      float64  `json:"max_distance_km"`
	ResultLimit        int      `json:"result_limit"`
	IncludeUnavailable bool     `json:"include_unavailable"`
	ServiceFilter      []string `json:"service_filter,omitempty"`
	MinRating          float64  `json:"min_rating"`
}

// DefaultSearchParams returns the parameters used when the caller supplies none.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		MaxDistanceKm: DefaultMaxDistanceKm,
		ResultLimit:   DefaultResultLimit,
	}
}

// WithDefaults fills unset (zero or negative) radius and limit with the defaults.
func (p SearchParams) WithDefaults() SearchParams {
	if p.MaxDistanceKm <= 0 {
		p.MaxDistanceKm = DefaultMaxDistanceKm
	}
	if p.ResultLimit <= 0 {
		p.ResultLimit = DefaultResultLimit
	}
	if p.MinRating < 0 {
		p.MinRating = 0
	}
	return p
}
