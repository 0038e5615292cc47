package handler

import (
	"context"
	"net/http"

	"provider-match-api/internal/models"

	"github.com/gin-gonic/gin"
)

// MatchService finds providers for a location
type MatchService interface {
	FindNearby(context.Context, models.Coordinate, models.SearchParams) ([]models.RankedProvider, error)
	FindByRegion(ctx context.Context, city, province string, params models.SearchParams) ([]models.RankedProvider, error)
	Match(context.Context, models.LocationDescriptor, models.SearchParams) ([]models.RankedProvider, error)
}

// ProviderHandler handles provider matching requests
type ProviderHandler struct {
	service MatchService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(svc MatchService) *ProviderHandler {
	return &ProviderHandler{service: svc}
}

// RegisterRoutes mounts the provider endpoints on rg
func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	providers := rg.Group("/providers")
	providers.GET("/nearby", h.Nearby)
	providers.GET("/region", h.Region)
	providers.POST("/match", h.Match)
}

// MatchRequest is the body of POST /providers/match
type MatchRequest struct {
	Location models.LocationDescriptor `json:"location"`
	Params   *models.SearchParams      `json:"params,omitempty"`
}

// Nearby handles GET /providers/nearby requests
//
//	@Summary	Providers near a coordinate
//	@Tags		providers
//	@Produce	json
//	@Param		lat					query		number	true	"Latitude"
//	@Param		lng					query		number	true	"Longitude"
//	@Param		max_distance_km		query		number	false	"Search radius in km"
//	@Param		limit				query		int		false	"Maximum number of results"
//	@Param		include_unavailable	query		bool	false	"Include unavailable providers"
//	@Param		services			query		string	false	"Comma separated service filter"
//	@Param		min_rating			query		number	false	"Minimum mean rating"
//	@Success	200					{array}		models.RankedProvider
//	@Failure	400					{object}	ErrorResponse
//	@Failure	503					{object}	ErrorResponse
//	@Router		/providers/nearby [get]
func (h *ProviderHandler) Nearby(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")

	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameters 'lat' and 'lng'"})
		return
	}

	point, err := parseCoordinate(latStr, lngStr)
	if err != nil {
		respondError(c, err)
		return
	}

	params, err := parseSearchParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.service.FindNearby(c.Request.Context(), point, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Region handles GET /providers/region requests
//
//	@Summary	Providers registered in a city or province
//	@Tags		providers
//	@Produce	json
//	@Param		city		query		string	false	"City, matched exactly"
//	@Param		province	query		string	false	"Province, matched exactly"
//	@Param		limit		query		int		false	"Maximum number of results"
//	@Param		services	query		string	false	"Comma separated service filter"
//	@Param		min_rating	query		number	false	"Minimum mean rating"
//	@Success	200			{array}		models.RankedProvider
//	@Failure	400			{object}	ErrorResponse
//	@Failure	503			{object}	ErrorResponse
//	@Router		/providers/region [get]
func (h *ProviderHandler) Region(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.service.FindByRegion(c.Request.Context(), c.Query("city"), c.Query("province"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Match handles POST /providers/match requests
//
//	@Summary	Providers for a free-form location
//	@Tags		providers
//	@Accept		json
//	@Produce	json
//	@Param		request	body		MatchRequest	true	"Location and search parameters"
//	@Success	200		{array}		models.RankedProvider
//	@Failure	400		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/providers/match [post]
func (h *ProviderHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	params := models.DefaultSearchParams()
	if req.Params != nil {
		params = *req.Params
	}
	if err := validateSearchParams(params); err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.service.Match(c.Request.Context(), req.Location, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}
