package service

import (
	"slices"
	"strings"

	"provider-match-api/internal/geo"
	"provider-match-api/internal/models"
)

// AnnotateDistances returns annotated copies of providers. A provider gets a distance
// and label only when both point and its own coordinates are valid.
func AnnotateDistances(providers []models.Provider, point models.Coordinate) []models.RankedProvider {
	pointValid := geo.IsValidCoordinate(point)

	ranked := make([]models.RankedProvider, len(providers))
	for i, p := range providers {
		ranked[i] = annotate(p)
		if !pointValid || !geo.HasValidCoordinates(p.Location) {
			continue
		}
		d := geo.Distance(point, *p.Location.Coordinates)
		ranked[i].DistanceKm = &d
		ranked[i].DistanceLabel = geo.FormatDistance(d)
	}
	return ranked
}

// SortProvidersByDistance annotates providers and orders them nearest first.
// Providers without a distance keep their input order after all others.
func SortProvidersByDistance(providers []models.Provider, point models.Coordinate) []models.RankedProvider {
	ranked := AnnotateDistances(providers, point)
	slices.SortStableFunc(ranked, compareDistance)
	return ranked
}

// GetNearbyProviders returns the providers within params.MaxDistanceKm of point,
// nearest first, after availability and service filtering. Ratings are not applied.
func GetNearbyProviders(providers []models.Provider, point models.Coordinate, params models.SearchParams) []models.RankedProvider {
	sorted := SortProvidersByDistance(providers, point)

	nearby := make([]models.RankedProvider, 0, len(sorted))
	for _, r := range sorted {
		if r.DistanceKm == nil || *r.DistanceKm > params.MaxDistanceKm {
			continue
		}
		nearby = append(nearby, r)
	}
	return FilterEligible(nearby, params)
}

// FilterEligible applies the availability and service filters, preserving order.
func FilterEligible(ranked []models.RankedProvider, params models.SearchParams) []models.RankedProvider {
	terms := normalizeTerms(params.ServiceFilter)

	out := make([]models.RankedProvider, 0, len(ranked))
	for _, r := range ranked {
		if !params.IncludeUnavailable && r.Availability == models.AvailabilityUnavailable {
			continue
		}
		if len(terms) > 0 && !offersAny(r.Services, terms) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func annotate(p models.Provider) models.RankedProvider {
	p.Services = slices.Clone(p.Services)
	if p.Location.Coordinates != nil {
		c := *p.Location.Coordinates
		p.Location.Coordinates = &c
	}
	return models.RankedProvider{Provider: p}
}

func compareDistance(a, b models.RankedProvider) int {
	switch {
	case a.DistanceKm == nil && b.DistanceKm == nil:
		return 0
	case a.DistanceKm == nil:
		return 1
	case b.DistanceKm == nil:
		return -1
	case *a.DistanceKm < *b.DistanceKm:
		return -1
	case *a.DistanceKm > *b.DistanceKm:
		return 1
	default:
		return 0
	}
}

func normalizeTerms(filter []string) []string {
	terms := make([]string, 0, len(filter))
	for _, f := range filter {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// offersAny reports whether any service contains any of the lower-cased terms.
func offersAny(services []string, terms []string) bool {
	for _, s := range services {
		s = strings.ToLower(s)
		for _, term := range terms {
			if strings.Contains(s, term) {
				return true
			}
		}
	}
	return false
}

func annotateAll(providers []models.Provider) []models.RankedProvider {
	ranked := make([]models.RankedProvider, len(providers))
	for i, p := range providers {
		ranked[i] = annotate(p)
	}
	return ranked
}
