package apperrors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewCatalogUnavailableError("failed to fetch providers", assert.AnError)
	assert.Equal(t, "CATALOG_UNAVAILABLE: failed to fetch providers: "+assert.AnError.Error(), err.Error())

	assert.Equal(t, "VALIDATION: limit must be positive", NewValidationError("limit must be positive").Error())
}

func TestIsType_WrappedChain(t *testing.T) {
	err := fmt.Errorf("service: find nearby: %w", NewCatalogUnavailableError("catalog down", context.DeadlineExceeded))

	assert.True(t, IsType(err, ErrorTypeCatalogUnavailable))
	assert.False(t, IsType(err, ErrorTypeInvalidCoordinate))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTypeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(assert.AnError))
	assert.Equal(t, ErrorTypeInvalidCoordinate, TypeOf(NewInvalidCoordinateError(91, 0)))
}
