package service

import (
	"testing"

	"provider-match-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortProvidersByDistance(t *testing.T) {
	providers := []models.Provider{
		providerWithoutLocation("C"),
		providerAt("B", northOf(manila, 2)),
		providerAt("A", northOf(manila, 1)),
	}

	ranked := SortProvidersByDistance(providers, manila)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"A", "B", "C"}, ids(ranked))
	require.NotNil(t, ranked[0].DistanceKm)
	require.NotNil(t, ranked[1].DistanceKm)
	assert.InDelta(t, 1.0, *ranked[0].DistanceKm, 1e-6)
	assert.InDelta(t, 2.0, *ranked[1].DistanceKm, 1e-6)
	assert.NotEmpty(t, ranked[0].DistanceLabel)
	assert.Nil(t, ranked[2].DistanceKm)
	assert.Empty(t, ranked[2].DistanceLabel)
}

func TestSortProvidersByDistance_KeepsInputOrderWithoutDistance(t *testing.T) {
	providers := []models.Provider{
		providerWithoutLocation("X"),
		providerAt("A", northOf(manila, 3)),
		providerWithoutLocation("Y"),
		providerWithoutLocation("Z"),
	}

	ranked := SortProvidersByDistance(providers, manila)

	assert.Equal(t, []string{"A", "X", "Y", "Z"}, ids(ranked))
}

func TestAnnotateDistances_InvalidCoordinates(t *testing.T) {
	bad := models.Coordinate{Latitude: 95, Longitude: 10}
	providers := []models.Provider{
		providerAt("valid", northOf(manila, 1)),
		providerAt("invalid", bad),
	}

	t.Run("invalid provider coordinates", func(t *testing.T) {
		ranked := AnnotateDistances(providers, manila)
		require.Len(t, ranked, 2)
		assert.NotNil(t, ranked[0].DistanceKm)
		assert.Nil(t, ranked[1].DistanceKm)
	})

	t.Run("invalid query point", func(t *testing.T) {
		ranked := AnnotateDistances(providers, bad)
		require.Len(t, ranked, 2)
		for _, r := range ranked {
			assert.Nil(t, r.DistanceKm)
		}
	})
}

func TestAnnotateDistances_DoesNotMutateSource(t *testing.T) {
	providers := []models.Provider{providerAt("A", northOf(manila, 1))}
	original := *providers[0].Location.Coordinates

	ranked := AnnotateDistances(providers, manila)
	ranked[0].Services[0] = "changed"
	ranked[0].Location.Coordinates.Latitude = 0

	assert.Equal(t, "House Cleaning", providers[0].Services[0])
	assert.Equal(t, original, *providers[0].Location.Coordinates)
}

func TestGetNearbyProviders_Radius(t *testing.T) {
	providers := []models.Provider{
		providerAt("far", northOf(manila, 30)),
		providerAt("near", northOf(manila, 1)),
		providerAt("mid", northOf(manila, 15)),
		providerWithoutLocation("nowhere"),
	}

	tests := []struct {
		name          string
		maxDistanceKm float64
		expected      []string
	}{
		{name: "10 km", maxDistanceKm: 10, expected: []string{"near"}},
		{name: "50 km", maxDistanceKm: 50, expected: []string{"near", "mid", "far"}},
		{name: "50 m", maxDistanceKm: 0.05, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := models.DefaultSearchParams()
			params.MaxDistanceKm = tt.maxDistanceKm

			ranked := GetNearbyProviders(providers, manila, params)

			assert.Equal(t, tt.expected, ids(ranked))
			for _, r := range ranked {
				require.NotNil(t, r.DistanceKm)
				assert.LessOrEqual(t, *r.DistanceKm, tt.maxDistanceKm)
			}
		})
	}
}

func TestGetNearbyProviders_ExcludesAntipodalProvider(t *testing.T) {
	point := models.Coordinate{Latitude: -88.3, Longitude: -179}
	providers := []models.Provider{
		providerAt("antipode", models.Coordinate{Latitude: 88.3, Longitude: 1}),
		providerAt("near", northOf(point, 1)),
	}

	ranked := GetNearbyProviders(providers, point, models.DefaultSearchParams())

	assert.Equal(t, []string{"near"}, ids(ranked))

	all := SortProvidersByDistance(providers, point)
	require.NotNil(t, all[1].DistanceKm)
	assert.Equal(t, "antipode", all[1].ID)
	assert.Equal(t, "20015km", all[1].DistanceLabel)
}

func TestGetNearbyProviders_InvalidPoint(t *testing.T) {
	providers := []models.Provider{providerAt("A", northOf(manila, 1))}

	ranked := GetNearbyProviders(providers, models.Coordinate{Latitude: 14, Longitude: 200}, models.DefaultSearchParams())

	assert.Empty(t, ranked)
}

func TestFilterEligible(t *testing.T) {
	available := providerAt("available", northOf(manila, 1))
	limited := providerAt("limited", northOf(manila, 2))
	limited.Availability = models.AvailabilityLimited
	limited.Services = []string{"Plumbing Repair"}
	unavailable := providerAt("unavailable", northOf(manila, 3))
	unavailable.Availability = models.AvailabilityUnavailable
	unavailable.Services = []string{"Electrical Wiring"}

	ranked := AnnotateDistances([]models.Provider{available, limited, unavailable}, manila)

	tests := []struct {
		name     string
		params   models.SearchParams
		expected []string
	}{
		{
			name:     "unavailable excluded by default",
			params:   models.SearchParams{},
			expected: []string{"available", "limited"},
		},
		{
			name:     "unavailable included on request",
			params:   models.SearchParams{IncludeUnavailable: true},
			expected: []string{"available", "limited", "unavailable"},
		},
		{
			name:     "service filter is a case-insensitive substring match",
			params:   models.SearchParams{ServiceFilter: []string{"CLEAN"}},
			expected: []string{"available"},
		},
		{
			name:     "any filter term matches",
			params:   models.SearchParams{IncludeUnavailable: true, ServiceFilter: []string{"plumb", "wiring"}},
			expected: []string{"limited", "unavailable"},
		},
		{
			name:     "blank terms are ignored",
			params:   models.SearchParams{ServiceFilter: []string{"  ", ""}},
			expected: []string{"available", "limited"},
		},
		{
			name:     "no service matches",
			params:   models.SearchParams{ServiceFilter: []string{"gardening"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(FilterEligible(ranked, tt.params)))
		})
	}
}
