package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	authorModel "library-catalog/internal/domains/author/model"
	bookModel "library-catalog/internal/domains/book/model"
	genreModel "library-catalog/internal/domains/genre/model"
	"library-catalog/pkg/container"
)

type demoBook struct {
	name    string
	genre   string
	authors []string // surnames
}

var (
	demoGenres  = []string{"Роман", "Повесть", "Поэзия"}
	demoAuthors = []authorModel.CreateAuthorRequest{
		{Name: "Александр", Surname: "Грин"},
		{Name: "Илья", Surname: "Ильф"},
		{Name: "Евгений", Surname: "Петров"},
		{Name: "Лев", Surname: "Толстой"},
		{Name: "Анна", Surname: "Ахматова"},
	}
	demoBooks = []demoBook{
		{"Алые паруса", "Повесть", []string{"Грин"}},
		{"Двенадцать стульев", "Роман", []string{"Ильф", "Петров"}},
		{"Золотой телёнок", "Роман", []string{"Ильф", "Петров"}},
		{"Война и мир", "Роман", []string{"Толстой"}},
		{"Вечер", "Поэзия", []string{"Ахматова"}},
	}
)

// seedCatalog fills an empty catalog through the services, so demo data passes
// the same validation as API writes.
func seedCatalog(ctx context.Context, c *container.Container) error {
	existing, err := c.GenreService.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("genres", len(existing)).Msg("Catalog not empty, skipping demo data")
		return nil
	}

	genres := make(map[string]int64, len(demoGenres))
	for _, name := range demoGenres {
		g, err := c.GenreService.Create(ctx, genreModel.CreateGenreRequest{Name: name})
		if err != nil {
			return fmt.Errorf("seed genre %s: %w", name, err)
		}
		genres[name] = g.ID
	}

	authors := make(map[string]int64, len(demoAuthors))
	for _, req := range demoAuthors {
		a, err := c.AuthorService.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed author %s: %w", req.Surname, err)
		}
		authors[req.Surname] = a.ID
	}

	for _, b := range demoBooks {
		ids := make([]int64, 0, len(b.authors))
		for _, surname := range b.authors {
			ids = append(ids, authors[surname])
		}
		if _, err := c.BookService.Create(ctx, bookModel.CreateBookRequest{
			Name:      b.name,
			GenreID:   genres[b.genre],
			AuthorIDs: ids,
		}); err != nil {
			return fmt.Errorf("seed book %s: %w", b.name, err)
		}
	}

	log.Info().
		Int("genres", len(demoGenres)).
		Int("authors", len(demoAuthors)).
		Int("books", len(demoBooks)).
		Msg("Demo catalog inserted")
	return nil
}
