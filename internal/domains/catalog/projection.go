package catalog

import "github.com/samber/lo"

// Relations use omitzero: a relation that was not loaded is absent from the
// JSON, a loaded empty relation is rendered as [].

type AuthorDto struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Surname string    `json:"surname"`
	Books   []BookDto `json:"books,omitzero"`
}

type BookDto struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Genre   string      `json:"genre,omitempty"`
	Authors []AuthorDto `json:"authors,omitzero"`
}

type GenreDto struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Books []BookDto `json:"books,omitzero"`
}

// ToAuthorDto maps an author and its books. Each book carries its genre name
// but not its authors.
func ToAuthorDto(a Author) AuthorDto {
	dto := authorScalars(a)
	if a.Books != nil {
		dto.Books = lo.Map(a.Books, func(b Book, _ int) BookDto {
			return bookScalars(b)
		})
	}
	return dto
}

// ToBookDto maps a book, flattening its genre to the genre name. Authors are
// mapped without their books.
func ToBookDto(b Book) BookDto {
	dto := bookScalars(b)
	if b.Authors != nil {
		dto.Authors = lo.Map(b.Authors, func(a Author, _ int) AuthorDto {
			return authorScalars(a)
		})
	}
	return dto
}

// ToGenreDto maps a genre with its books; every book lists its authors
// (id, name and surname only).
func ToGenreDto(g Genre) GenreDto {
	dto := GenreDto{ID: g.ID, Name: g.Name}
	if g.Books != nil {
		dto.Books = lo.Map(g.Books, func(b Book, _ int) BookDto {
			nested := BookDto{ID: b.ID, Name: b.Name}
			if b.Authors != nil {
				nested.Authors = lo.Map(b.Authors, func(a Author, _ int) AuthorDto {
					return authorScalars(a)
				})
			}
			return nested
		})
	}
	return dto
}

func ToAuthorDtos(authors []Author) []AuthorDto {
	return lo.Map(authors, func(a Author, _ int) AuthorDto { return ToAuthorDto(a) })
}

func ToBookDtos(books []Book) []BookDto {
	return lo.Map(books, func(b Book, _ int) BookDto { return ToBookDto(b) })
}

func ToGenreDtos(genres []Genre) []GenreDto {
	return lo.Map(genres, func(g Genre, _ int) GenreDto { return ToGenreDto(g) })
}

func authorScalars(a Author) AuthorDto {
	return AuthorDto{ID: a.ID, Name: a.Name, Surname: a.Surname}
}

func bookScalars(b Book) BookDto {
	dto := BookDto{ID: b.ID, Name: b.Name}
	if b.Genre != nil {
		dto.Genre = b.Genre.Name
	}
	return dto
}
