package models

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationDescriptor describes where something is. Any subset of the fields may be set;
// a descriptor with only City and Province is still usable for region matching.
type LocationDescriptor struct {
	Address     string      `json:"address,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	City        string      `json:"city,omitempty"`
	Province    string      `json:"province,omitempty"`
}

// GazetteerEntry is a row of the self-hosted address gazetteer used for geocoding.
type GazetteerEntry struct {
	ID          int64   `json:"id"`
	Province    string  `json:"province"`
	City        string  `json:"city"`
	AddressLine string  `json:"address_line"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
