package model

import (
	"errors"
	"net/http"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreHasBooks = errors.New("genre still has books")
	ErrInvalidID     = errors.New("genre id must be a positive integer")
	ErrMissingName   = errors.New("name query parameter is required")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrGenreNotFound):
		return "GENRE_NOT_FOUND"
	case errors.Is(err, ErrGenreHasBooks):
		return "GENRE_HAS_BOOKS"
	case errors.Is(err, catalog.ErrMultipleMatches):
		return "GENRE_AMBIGUOUS"
	case errors.Is(err, shared.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrMissingName):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrGenreNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGenreHasBooks), errors.Is(err, catalog.ErrMultipleMatches):
		return http.StatusConflict
	case errors.Is(err, shared.ErrValidation), errors.Is(err, ErrInvalidID), errors.Is(err, ErrMissingName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
