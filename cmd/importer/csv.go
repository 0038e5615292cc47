package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"provider-match-api/internal/models"
)

// Provider CSV columns: id, name, role, services (";" separated), availability,
// address, city, province, latitude, longitude, verified, bio, photo_url.
// latitude and longitude may both be empty; bio and photo_url are optional.
const providerColumns = 11

func parseProviders(r io.Reader) ([]models.Provider, error) {
	var providers []models.Provider
	err := readRecords(r, providerColumns, func(line int, record []string) error {
		role := models.Role(strings.TrimSpace(record[2]))
		if role == "" {
			return fmt.Errorf("line %d: missing role", line)
		}

		availability := models.Availability(strings.TrimSpace(record[4]))
		switch availability {
		case "":
			availability = models.AvailabilityAvailable
		case models.AvailabilityAvailable, models.AvailabilityLimited, models.AvailabilityUnavailable:
		default:
			return fmt.Errorf("line %d: invalid availability %q", line, record[4])
		}

		p := models.Provider{
			ID:           strings.TrimSpace(record[0]),
			Name:         strings.TrimSpace(record[1]),
			Role:         role,
			Services:     splitServices(record[3]),
			Availability: availability,
			Location: models.LocationDescriptor{
				Address:  strings.TrimSpace(record[5]),
				City:     strings.TrimSpace(record[6]),
				Province: strings.TrimSpace(record[7]),
			},
		}
		if p.ID == "" {
			return fmt.Errorf("line %d: missing id", line)
		}

		coord, err := parseOptionalCoordinate(record[8], record[9])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		p.Location.Coordinates = coord

		if v := strings.TrimSpace(record[10]); v != "" {
			verified, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("line %d: invalid verified flag %q", line, v)
			}
			p.Verified = verified
		}
		if len(record) > 11 {
			p.Bio = strings.TrimSpace(record[11])
		}
		if len(record) > 12 {
			p.PhotoURL = strings.TrimSpace(record[12])
		}

		providers = append(providers, p)
		return nil
	})
	return providers, err
}

// Review CSV columns: provider_id, rating (1 to 5).
func parseReviews(r io.Reader) ([]models.Review, error) {
	var reviews []models.Review
	err := readRecords(r, 2, func(line int, record []string) error {
		rating, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("line %d: invalid rating %q", line, record[1])
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			return fmt.Errorf("line %d: missing provider_id", line)
		}
		reviews = append(reviews, models.Review{ProviderID: id, Rating: rating})
		return nil
	})
	return reviews, err
}

// Location CSV columns: province, city, address_line, latitude, longitude.
func parseLocations(r io.Reader) ([]models.GazetteerEntry, error) {
	var entries []models.GazetteerEntry
	err := readRecords(r, 5, func(line int, record []string) error {
		coord, err := parseOptionalCoordinate(record[3], record[4])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if coord == nil {
			return fmt.Errorf("line %d: missing coordinates", line)
		}
		entries = append(entries, models.GazetteerEntry{
			Province:    strings.TrimSpace(record[0]),
			City:        strings.TrimSpace(record[1]),
			AddressLine: strings.TrimSpace(record[2]),
			Latitude:    coord.Latitude,
			Longitude:   coord.Longitude,
		})
		return nil
	})
	return entries, err
}

// readRecords skips the header and calls fn for every record with at least minColumns fields.
func readRecords(r io.Reader, minColumns int, fn func(line int, record []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < minColumns {
			return fmt.Errorf("line %d: invalid record length %d, expected at least %d columns", line, len(record), minColumns)
		}
		if err := fn(line, record); err != nil {
			return err
		}
	}
}

func parseOptionalCoordinate(latStr, lngStr string) (*models.Coordinate, error) {
	latStr, lngStr = strings.TrimSpace(latStr), strings.TrimSpace(lngStr)
	if latStr == "" && lngStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %s", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %s", lngStr)
	}
	return &models.Coordinate{Latitude: lat, Longitude: lng}, nil
}

func splitServices(s string) []string {
	services := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			services = append(services, part)
		}
	}
	return services
}
