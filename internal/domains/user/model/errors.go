package model

import (
	"errors"
	"fmt"
	"net/http"

	"library-catalog/internal/shared"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid login or password", shared.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", shared.ErrUnauthorized)
	ErrAccountLocked      = fmt.Errorf("%w: account locked, try again later", shared.ErrTooManyAttempts)
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, shared.ErrTooManyAttempts):
		return "ACCOUNT_LOCKED"
	case errors.Is(err, shared.ErrValidation):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
