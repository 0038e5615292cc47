// Package geo holds the pure great-circle helpers used by matching.
package geo

import (
	"fmt"
	"math"
	"strconv"

	"provider-match-api/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Distance returns the Haversine great-circle distance between a and b in kilometers.
// Both points must already be valid; see IsValidCoordinate.
func Distance(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// IsValidCoordinate reports whether both components are finite and in range.
func IsValidCoordinate(c models.Coordinate) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// HasValidCoordinates reports whether the descriptor carries a usable coordinate.
func HasValidCoordinates(d models.LocationDescriptor) bool {
	return d.Coordinates != nil && IsValidCoordinate(*d.Coordinates)
}

// FormatDistance renders a distance for display: meters below 1 km, one decimal
// below 10 km, whole kilometers beyond.
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%dm", int64(math.Round(km*1000)))
	case km < 10:
		return strconv.FormatFloat(math.Round(km*10)/10, 'f', 1, 64) + "km"
	default:
		return fmt.Sprintf("%dkm", int64(math.Round(km)))
	}
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
