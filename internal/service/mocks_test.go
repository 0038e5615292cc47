package service

import (
	"context"

	"provider-match-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCatalogStore is a mock implementation of the CatalogStore interface
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) FetchByRole(ctx context.Context, roles []models.Role) ([]models.Provider, error) {
	args := m.Called(ctx, roles)
	providers, _ := args.Get(0).([]models.Provider)
	return providers, args.Error(1)
}

func (m *MockCatalogStore) FetchByRegion(ctx context.Context, city, province string) ([]models.Provider, error) {
	args := m.Called(ctx, city, province)
	providers, _ := args.Get(0).([]models.Provider)
	return providers, args.Error(1)
}

// MockReviewStore is a mock implementation of the ReviewStore interface
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) FetchRatingsFor(ctx context.Context, providerIDs []string) (map[string][]int, error) {
	args := m.Called(ctx, providerIDs)
	ratings, _ := args.Get(0).(map[string][]int)
	return ratings, args.Error(1)
}

// MockGeocoder is a mock implementation of the location.Geocoder interface
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (models.Coordinate, bool, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.Coordinate), args.Bool(1), args.Error(2)
}
