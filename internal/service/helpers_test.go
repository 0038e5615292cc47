package service

import (
	"math"

	"provider-match-api/internal/geo"
	"provider-match-api/internal/models"
)

var manila = models.Coordinate{Latitude: 14.5995, Longitude: 120.9842}

// northOf returns the point km kilometres due north of origin.
func northOf(origin models.Coordinate, km float64) models.Coordinate {
	return models.Coordinate{
		Latitude:  origin.Latitude + km/(geo.EarthRadiusKm*math.Pi/180),
		Longitude: origin.Longitude,
	}
}

func providerAt(id string, c models.Coordinate) models.Provider {
	return models.Provider{
		ID:           id,
		Name:         "Provider " + id,
		Role:         models.RoleProvider,
		Services:     []string{"House Cleaning"},
		Availability: models.AvailabilityAvailable,
		Location:     models.LocationDescriptor{Coordinates: &c, City: "Manila", Province: "Metro Manila"},
	}
}

func providerWithoutLocation(id string) models.Provider {
	return models.Provider{
		ID:           id,
		Name:         "Provider " + id,
		Role:         models.RoleProvider,
		Availability: models.AvailabilityAvailable,
		Location:     models.LocationDescriptor{City: "Manila", Province: "Metro Manila"},
	}
}

func ids(ranked []models.RankedProvider) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}
