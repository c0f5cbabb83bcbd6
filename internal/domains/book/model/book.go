package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

const MaxNameLength = 80

// CreateBookRequest - POST /book/create
type CreateBookRequest struct {
	Name    string `json:"name"`
	GenreID int64  `json:"genre_id"`
	// AuthorIDs is optional; every id must refer to an existing author.
	AuthorIDs []int64 `json:"author_ids"`
}

func (r *CreateBookRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateBookRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength).Error("name must be at most 80 characters"),
		),
		validation.Field(&r.GenreID,
			validation.Required.Error("genre_id is required"),
			validation.Min(int64(1)).Error("genre_id must be positive"),
		),
		validation.Field(&r.AuthorIDs,
			validation.Each(validation.Min(int64(1)).Error("author ids must be positive")),
		),
	))
}

// ToEntity builds a new book linked to the given authors.
func (r CreateBookRequest) ToEntity() catalog.Book {
	return catalog.Book{
		Name:    r.Name,
		GenreID: r.GenreID,
		Authors: authorRefs(r.AuthorIDs),
	}
}

// UpdateBookRequest - PUT /book/update
// Name and genre are replaced. A missing or null author_ids keeps the current
// authors, a present list (even empty) replaces them.
type UpdateBookRequest struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	GenreID   int64   `json:"genre_id"`
	AuthorIDs []int64 `json:"author_ids"`
}

func (r *UpdateBookRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r UpdateBookRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			validation.Min(int64(1)).Error("id must be positive"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength).Error("name must be at most 80 characters"),
		),
		validation.Field(&r.GenreID,
			validation.Required.Error("genre_id is required"),
			validation.Min(int64(1)).Error("genre_id must be positive"),
		),
		validation.Field(&r.AuthorIDs,
			validation.Each(validation.Min(int64(1)).Error("author ids must be positive")),
		),
	))
}

// ReplacesAuthors reports whether the request carries an author list.
func (r UpdateBookRequest) ReplacesAuthors() bool {
	return r.AuthorIDs != nil
}

// ApplyTo returns current with the request's fields.
func (r UpdateBookRequest) ApplyTo(current catalog.Book) catalog.Book {
	current.Name = r.Name
	current.GenreID = r.GenreID
	current.Genre = nil
	if r.ReplacesAuthors() {
		current.Authors = authorRefs(r.AuthorIDs)
	}
	return current
}

func authorRefs(ids []int64) []catalog.Author {
	return lo.Map(lo.Uniq(ids), func(id int64, _ int) catalog.Author {
		return catalog.Author{ID: id}
	})
}
