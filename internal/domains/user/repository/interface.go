package repository

import (
	"context"

	"library-catalog/internal/domains/user/model"
)

type RepositoryInterface interface {
	// FindByLogin returns ErrUserNotFound if absent.
	FindByLogin(ctx context.Context, login string) (*model.User, error)

	// Upsert creates the user or replaces password and roles of an existing login.
	Upsert(ctx context.Context, user model.User) (*model.User, error)
}
