package handler

import (
	"errors"
	"net/http"

	"provider-match-api/internal/apperrors"
	"provider-match-api/internal/observability"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err to a status code. Internal details are logged, not returned.
func respondError(c *gin.Context, err error) {
	logger := observability.LoggerFromContext(c.Request.Context())

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidCoordinate:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: messageOf(err)})
	case apperrors.ErrorTypeCatalogUnavailable:
		logger.Warn().Err(err).Msg("catalog unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "provider catalog unavailable, please retry"})
	default:
		if c.Request.Context().Err() != nil {
			// Client went away, nobody reads the response.
			c.Status(499)
			return
		}
		logger.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
