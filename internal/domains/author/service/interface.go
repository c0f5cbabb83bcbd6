package service

import (
	"context"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/catalog"
)

// ServiceInterface defines the author use cases. Every result is projected
// to an AuthorDto.
type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*catalog.AuthorDto, error)
	GetBySurname(ctx context.Context, surname string, strategy catalog.Strategy) (*catalog.AuthorDto, error)
	Create(ctx context.Context, req model.CreateAuthorRequest) (*catalog.AuthorDto, error)
	Update(ctx context.Context, req model.UpdateAuthorRequest) (*catalog.AuthorDto, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]catalog.AuthorDto, error)
}
