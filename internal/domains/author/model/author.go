package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared"
)

// Constants for validation
const (
	MinNameLength = 3
	MaxNameLength = 10
)

// CreateAuthorRequest - POST /author/create
type CreateAuthorRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
}

func (r CreateAuthorRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(MinNameLength, MaxNameLength).Error("name must be 3-10 characters"),
		),
		validation.Field(&r.Surname,
			validation.Required.Error("surname is required"),
		),
	))
}

// ToEntity builds a new, not yet stored author.
func (r CreateAuthorRequest) ToEntity() catalog.Author {
	return catalog.Author{Name: r.Name, Surname: r.Surname}
}

// UpdateAuthorRequest - PUT /author/update
// Every scalar field is replaced.
type UpdateAuthorRequest struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (r *UpdateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
}

func (r UpdateAuthorRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			validation.Min(int64(1)).Error("id must be positive"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(MinNameLength, MaxNameLength).Error("name must be 3-10 characters"),
		),
		validation.Field(&r.Surname,
			validation.Required.Error("surname is required"),
		),
	))
}

// ApplyTo returns a copy of current with the request's fields; relations are kept.
func (r UpdateAuthorRequest) ApplyTo(current catalog.Author) catalog.Author {
	current.Name = r.Name
	current.Surname = r.Surname
	return current
}
