package geo

import (
	"math"
	"testing"

	"provider-match-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manila    = models.Coordinate{Latitude: 14.5995, Longitude: 120.9842}
	quezon    = models.Coordinate{Latitude: 14.6760, Longitude: 121.0437}
	makati    = models.Coordinate{Latitude: 14.5547, Longitude: 121.0244}
	tokyo     = models.Coordinate{Latitude: 35.681236, Longitude: 139.767125}
	antipodes = models.Coordinate{Latitude: -14.5995, Longitude: -59.0158}
)

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]models.Coordinate{
		{manila, quezon},
		{manila, tokyo},
		{quezon, makati},
		{tokyo, antipodes},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	for _, c := range []models.Coordinate{manila, tokyo, {Latitude: 90, Longitude: 180}} {
		assert.Equal(t, 0.0, Distance(c, c))
	}
}

func TestDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name     string
		a, b     models.Coordinate
		expected float64
	}{
		{name: "manila to quezon city", a: manila, b: quezon, expected: 10.6},
		{name: "manila to makati", a: manila, b: makati, expected: 6.5},
		{name: "manila to tokyo", a: manila, b: tokyo, expected: 2999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 2)
		})
	}
}

func TestDistance_NonNegative(t *testing.T) {
	assert.GreaterOrEqual(t, Distance(manila, antipodes), 0.0)
	assert.InDelta(t, math.Pi*EarthRadiusKm, Distance(manila, antipodes), 1)
}

func TestDistance_AntipodalPairsStayFinite(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Coordinate
	}{
		{name: "near the poles", a: models.Coordinate{Latitude: -88.3, Longitude: -179}, b: models.Coordinate{Latitude: 88.3, Longitude: 1}},
		{name: "equator", a: models.Coordinate{Latitude: 0, Longitude: -90}, b: models.Coordinate{Latitude: 0, Longitude: 90}},
		{name: "mid latitude", a: models.Coordinate{Latitude: 45.5, Longitude: -120.25}, b: models.Coordinate{Latitude: -45.5, Longitude: 59.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.a, tt.b)
			assert.False(t, math.IsNaN(d))
			assert.InDelta(t, 20015, d, 1)
			assert.Equal(t, "20015km", FormatDistance(d))
		})
	}

	// A sweep of antipodal pairs never yields NaN.
	for lat := -90.0; lat <= 90; lat += 0.7 {
		for lng := -180.0; lng <= 0; lng += 1.3 {
			d := Distance(models.Coordinate{Latitude: lat, Longitude: lng}, models.Coordinate{Latitude: -lat, Longitude: lng + 180})
			require.False(t, math.IsNaN(d), "lat=%v lng=%v", lat, lng)
			require.GreaterOrEqual(t, d, 0.0)
		}
	}
}

func TestIsValidCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		coord models.Coordinate
		valid bool
	}{
		{name: "manila", coord: manila, valid: true},
		{name: "bounds", coord: models.Coordinate{Latitude: -90, Longitude: 180}, valid: true},
		{name: "latitude too high", coord: models.Coordinate{Latitude: 91, Longitude: 0}},
		{name: "longitude too high", coord: models.Coordinate{Latitude: 0, Longitude: 181}},
		{name: "longitude too low", coord: models.Coordinate{Latitude: 0, Longitude: -180.5}},
		{name: "nan latitude", coord: models.Coordinate{Latitude: math.NaN(), Longitude: 0}},
		{name: "infinite longitude", coord: models.Coordinate{Latitude: 0, Longitude: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCoordinate(tt.coord))
		})
	}
}

func TestHasValidCoordinates(t *testing.T) {
	assert.False(t, HasValidCoordinates(models.LocationDescriptor{City: "Manila"}))
	assert.False(t, HasValidCoordinates(models.LocationDescriptor{Coordinates: &models.Coordinate{Latitude: 91}}))
	assert.True(t, HasValidCoordinates(models.LocationDescriptor{Coordinates: &manila}))
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km       float64
		expected string
	}{
		{km: 0, expected: "0m"},
		{km: 0.1, expected: "100m"},
		{km: 0.5, expected: "500m"},
		{km: 0.9996, expected: "1000m"},
		{km: 1, expected: "1.0km"},
		{km: 5.5, expected: "5.5km"},
		{km: 9.9, expected: "9.9km"},
		{km: 10, expected: "10km"},
		{km: 10.5, expected: "11km"},
		{km: 25.7, expected: "26km"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDistance(tt.km))
		})
	}
}
