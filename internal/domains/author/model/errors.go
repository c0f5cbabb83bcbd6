package model

import (
	"errors"
	"net/http"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidID      = errors.New("author id must be a positive integer")
	ErrMissingSurname = errors.New("surname query parameter is required")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, catalog.ErrMultipleMatches):
		return "AUTHOR_AMBIGUOUS"
	case errors.Is(err, shared.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrMissingSurname):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrMultipleMatches):
		return http.StatusConflict
	case errors.Is(err, shared.ErrValidation), errors.Is(err, ErrInvalidID), errors.Is(err, ErrMissingSurname):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
