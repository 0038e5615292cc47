package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures surfaced to callers of the matching service.
type ErrorType string

const (
	// ErrorTypeInvalidCoordinate indicates an out-of-range or non-numeric query point
	ErrorTypeInvalidCoordinate ErrorType = "INVALID_COORDINATE"

	// ErrorTypeValidation indicates malformed request input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeCatalogUnavailable indicates the provider catalog could not be read; callers may retry
	ErrorTypeCatalogUnavailable ErrorType = "CATALOG_UNAVAILABLE"

	// ErrorTypeInternal indicates an unexpected failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidCoordinateError creates a new invalid coordinate error
func NewInvalidCoordinateError(lat, lng float64) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidCoordinate,
		Message: fmt.Sprintf("invalid coordinate (%v, %v)", lat, lng),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewCatalogUnavailableError creates a new catalog unavailable error
func NewCatalogUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCatalogUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the type of the first AppError in err's chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain contains an AppError of type t.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}
