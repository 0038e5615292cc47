package handler

import (
	"math"
	"strconv"
	"strings"

	"provider-match-api/internal/apperrors"
	"provider-match-api/internal/models"

	"github.com/gin-gonic/gin"
)

// MaxResultLimit caps the limit a client may ask for
const MaxResultLimit = 100

func parseCoordinate(latStr, lngStr string) (models.Coordinate, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinate{}, apperrors.NewValidationError("invalid latitude format")
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return models.Coordinate{}, apperrors.NewValidationError("invalid longitude format")
	}

	return models.Coordinate{Latitude: lat, Longitude: lng}, nil
}

// parseSearchParams reads the optional search parameters from the query string.
func parseSearchParams(c *gin.Context) (models.SearchParams, error) {
	params := models.DefaultSearchParams()

	if v := c.Query("max_distance_km"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, apperrors.NewValidationError("invalid max_distance_km")
		}
		params.MaxDistanceKm = d
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, apperrors.NewValidationError("invalid limit")
		}
		params.ResultLimit = n
	}

	if v := c.Query("include_unavailable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, apperrors.NewValidationError("invalid include_unavailable")
		}
		params.IncludeUnavailable = b
	}

	if v := c.Query("services"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				params.ServiceFilter = append(params.ServiceFilter, s)
			}
		}
	}

	if v := c.Query("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, apperrors.NewValidationError("invalid min_rating")
		}
		params.MinRating = r
	}

	return params, validateSearchParams(params)
}

func validateSearchParams(p models.SearchParams) error {
	switch {
	case math.IsNaN(p.MaxDistanceKm) || math.IsInf(p.MaxDistanceKm, 0) || p.MaxDistanceKm < 0:
		return apperrors.NewValidationError("max_distance_km must be a non-negative number")
	case p.ResultLimit < 0 || p.ResultLimit > MaxResultLimit:
		return apperrors.NewValidationError("limit must be between 1 and " + strconv.Itoa(MaxResultLimit))
	case math.IsNaN(p.MinRating) || p.MinRating < 0 || p.MinRating > 5:
		return apperrors.NewValidationError("min_rating must be between 0 and 5")
	}
	return nil
}
