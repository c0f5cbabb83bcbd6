package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/catalog"
)

// ServiceInterface defines the book use cases.
type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*catalog.BookDto, error)
	GetByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.BookDto, error)
	Create(ctx context.Context, req model.CreateBookRequest) (*catalog.BookDto, error)
	Update(ctx context.Context, req model.UpdateBookRequest) (*catalog.BookDto, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]catalog.BookDto, error)
}
