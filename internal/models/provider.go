package models

// Role is the catalog role of a provider account.
type Role string

const (
	RoleProvider Role = "provider"
	RoleAgency   Role = "agency"
)

// MatchableRoles are the roles eligible for nearby matching.
var MatchableRoles = []Role{RoleProvider, RoleAgency}

// Availability is the booking availability a provider advertises.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityLimited     Availability = "limited"
	AvailabilityUnavailable Availability = "unavailable"
)

// Provider is a catalog record as stored by the catalog. The matching engine treats it as read-only.
type Provider struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Bio          string             `json:"bio,omitempty"`
	PhotoURL     string             `json:"photo_url,omitempty"`
	Role         Role               `json:"role"`
	Services     []string           `json:"services"`
	Availability Availability       `json:"availability"`
	Location     LocationDescriptor `json:"location"`
	Verified     bool               `json:"verified"`
}

// RankedProvider is an annotated copy of a Provider returned by matching.
// DistanceKm is nil unless both the query point and the provider coordinates were valid.
type RankedProvider struct {
	Provider
	DistanceKm    *float64 `json:"distance_km,omitempty"`
	DistanceLabel string   `json:"distance_label,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
}

// HasDistance reports whether a distance was computed for the provider.
func (r RankedProvider) HasDistance() bool {
	return r.DistanceKm != nil
}

// Review is a single raw rating left for a provider.
type Review struct {
	ProviderID string `json:"provider_id"`
	Rating     int    `json:"rating"`
}
