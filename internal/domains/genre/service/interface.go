package service

import (
	"context"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/genre/model"
)

type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*catalog.GenreDto, error)
	GetByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.GenreDto, error)
	Create(ctx context.Context, req model.CreateGenreRequest) (*catalog.GenreDto, error)
	Update(ctx context.Context, req model.UpdateGenreRequest) (*catalog.GenreDto, error)
	// Delete refuses with ErrGenreHasBooks while books still reference the genre.
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]catalog.GenreDto, error)
}
