package model

import (
	"errors"
	"net/http"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrGenreNotFound  = errors.New("genre not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidID      = errors.New("book id must be a positive integer")
	ErrMissingName    = errors.New("name query parameter is required")
)

var bookErrorMap = []struct {
	Err    error
	Status int
	Code   string
}{
	{ErrBookNotFound, http.StatusNotFound, "BOOK_NOT_FOUND"},
	{ErrGenreNotFound, http.StatusNotFound, "GENRE_NOT_FOUND"},
	{ErrAuthorNotFound, http.StatusNotFound, "AUTHOR_NOT_FOUND"},
	{catalog.ErrMultipleMatches, http.StatusConflict, "BOOK_AMBIGUOUS"},
	{shared.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidID, http.StatusBadRequest, "BAD_REQUEST"},
	{ErrMissingName, http.StatusBadRequest, "BAD_REQUEST"},
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	for _, e := range bookErrorMap {
		if errors.Is(err, e.Err) {
			return e.Code
		}
	}
	return "INTERNAL_ERROR"
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	for _, e := range bookErrorMap {
		if errors.Is(err, e.Err) {
			return e.Status
		}
	}
	return http.StatusInternalServerError
}
