package repository

import (
	"context"

	"library-catalog/internal/domains/catalog"
)

// RepositoryInterface is the persistence gateway for books.
// Every returned book has its genre and authors loaded; the authors carry no books.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*catalog.Book, error)
	FindAll(ctx context.Context) ([]catalog.Book, error)

	// FindByName resolves a book by name with the given strategy.
	FindByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.Book, error)

	// Save writes the book row and, when Authors is non-nil, replaces its
	// author links, in one transaction.
	Save(ctx context.Context, book catalog.Book) (*catalog.Book, error)

	DeleteByID(ctx context.Context, id int64) error

	// FindGenre returns ErrGenreNotFound if the genre does not exist.
	FindGenre(ctx context.Context, id int64) (*catalog.Genre, error)
}
