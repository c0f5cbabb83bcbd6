package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

const MaxNameLength = 80

var nameRules = []validation.Rule{
	validation.Required.Error("name is required"),
	validation.RuneLength(1, MaxNameLength).Error("name must be at most 80 characters"),
}

// CreateGenreRequest - POST /genre/create
type CreateGenreRequest struct {
	Name string `json:"name"`
}

func (r *CreateGenreRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CreateGenreRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
	))
}

func (r CreateGenreRequest) ToEntity() catalog.Genre {
	return catalog.Genre{Name: r.Name}
}

// UpdateGenreRequest - PUT /genre/update
type UpdateGenreRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r *UpdateGenreRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r UpdateGenreRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			validation.Min(int64(1)).Error("id must be positive"),
		),
		validation.Field(&r.Name, nameRules...),
	))
}

func (r UpdateGenreRequest) ApplyTo(current catalog.Genre) catalog.Genre {
	current.Name = r.Name
	return current
}
