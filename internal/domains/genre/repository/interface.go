package repository

import (
	"context"

	"library-catalog/internal/domains/catalog"
)

// RepositoryInterface is the persistence gateway for genres.
// Returned genres carry their books, each book with its authors.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*catalog.Genre, error)
	FindAll(ctx context.Context) ([]catalog.Genre, error)
	FindByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.Genre, error)
	Save(ctx context.Context, genre catalog.Genre) (*catalog.Genre, error)
	DeleteByID(ctx context.Context, id int64) error

	// CountBooks returns how many books reference the genre.
	CountBooks(ctx context.Context, id int64) (int, error)
}
