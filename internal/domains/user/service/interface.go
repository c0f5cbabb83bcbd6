package service

import (
	"context"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared"
)

// ServiceInterface authenticates callers for the HTTP layer.
type ServiceInterface interface {
	// Authenticate checks a login/password pair. Repeated failures lock the
	// login for a while (ErrAccountLocked).
	Authenticate(ctx context.Context, login, password string) (*shared.Principal, error)

	// Login authenticates and issues an access token.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// ParseToken resolves a bearer token to its principal.
	ParseToken(token string) (*shared.Principal, error)

	// EnsureUser creates or resets a user with a freshly encoded password.
	EnsureUser(ctx context.Context, login, rawPassword string, roles ...string) (*model.User, error)
}
