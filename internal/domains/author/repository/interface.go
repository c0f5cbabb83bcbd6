package repository

import (
	"context"

	"library-catalog/internal/domains/catalog"
)

// RepositoryInterface is the persistence gateway for authors.
// Every returned author has its books loaded.
type RepositoryInterface interface {
	// FindByID returns ErrAuthorNotFound if absent.
	FindByID(ctx context.Context, id int64) (*catalog.Author, error)

	// FindAll returns every author in storage order.
	FindAll(ctx context.Context) ([]catalog.Author, error)

	// FindBySurname resolves an author by surname with the given strategy.
	// Returns ErrAuthorNotFound if absent, catalog.ErrMultipleMatches if the
	// surname is not unique.
	FindBySurname(ctx context.Context, surname string, strategy catalog.Strategy) (*catalog.Author, error)

	// Save inserts the author when it has no id, otherwise replaces the row.
	Save(ctx context.Context, author catalog.Author) (*catalog.Author, error)

	// DeleteByID removes the author and its book links.
	// Returns ErrAuthorNotFound if absent.
	DeleteByID(ctx context.Context, id int64) error

	// ExistingIDs returns the subset of ids that exist.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
