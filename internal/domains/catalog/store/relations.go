package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"library-catalog/internal/domains/catalog"
)

// Relations are loaded eagerly, one IN query per relation.
// Every requested owner id gets an entry, so a loaded but empty relation is
// a non-nil empty slice.

type authorOfBook struct {
	OwnerID int64 `db:"owner_id"`
	catalog.Author
}

type bookOfOwner struct {
	OwnerID   int64  `db:"owner_id"`
	GenreName string `db:"genre_name"`
	catalog.Book
}

const (
	authorsByBookSQL = `SELECT ab.book_id AS owner_id, a.id, a.name, a.surname
FROM author_book ab
JOIN author a ON a.id = ab.author_id
WHERE ab.book_id IN (?)
ORDER BY a.id`

	booksByAuthorSQL = `SELECT ab.author_id AS owner_id, b.id, b.name, b.genre_id, g.name AS genre_name
FROM author_book ab
JOIN book b ON b.id = ab.book_id
JOIN genre g ON g.id = b.genre_id
WHERE ab.author_id IN (?)
ORDER BY b.id`

	booksByGenreSQL = `SELECT b.genre_id AS owner_id, b.id, b.name, b.genre_id, g.name AS genre_name
FROM book b
JOIN genre g ON g.id = b.genre_id
WHERE b.genre_id IN (?)
ORDER BY b.id`

	genresByIDSQL = `SELECT id, name FROM genre WHERE id IN (?)`
)

func selectIn(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, ids []int64) error {
	query, args, err := sqlx.In(query, lo.Uniq(ids))
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}

func emptyGroups[T any](ids []int64) map[int64][]T {
	groups := make(map[int64][]T, len(ids))
	for _, id := range ids {
		groups[id] = []T{}
	}
	return groups
}

// AuthorsByBook returns the authors of each book, without their books.
func AuthorsByBook(ctx context.Context, q sqlx.ExtContext, bookIDs []int64) (map[int64][]catalog.Author, error) {
	groups := emptyGroups[catalog.Author](bookIDs)
	if len(bookIDs) == 0 {
		return groups, nil
	}

	var rows []authorOfBook
	if err := selectIn(ctx, q, &rows, authorsByBookSQL, bookIDs); err != nil {
		return nil, fmt.Errorf("load authors of books: %w", err)
	}
	for owner, group := range lo.GroupBy(rows, func(r authorOfBook) int64 { return r.OwnerID }) {
		groups[owner] = lo.Map(group, func(r authorOfBook, _ int) catalog.Author { return r.Author })
	}
	return groups, nil
}

// BooksByAuthor returns the books of each author with their genre attached.
func BooksByAuthor(ctx context.Context, q sqlx.ExtContext, authorIDs []int64) (map[int64][]catalog.Book, error) {
	groups := emptyGroups[catalog.Book](authorIDs)
	if len(authorIDs) == 0 {
		return groups, nil
	}

	var rows []bookOfOwner
	if err := selectIn(ctx, q, &rows, booksByAuthorSQL, authorIDs); err != nil {
		return nil, fmt.Errorf("load books of authors: %w", err)
	}
	fillBookGroups(groups, rows)
	return groups, nil
}

// BooksByGenre returns the books of each genre with their authors attached.
func BooksByGenre(ctx context.Context, q sqlx.ExtContext, genreIDs []int64) (map[int64][]catalog.Book, error) {
	groups := emptyGroups[catalog.Book](genreIDs)
	if len(genreIDs) == 0 {
		return groups, nil
	}

	var rows []bookOfOwner
	if err := selectIn(ctx, q, &rows, booksByGenreSQL, genreIDs); err != nil {
		return nil, fmt.Errorf("load books of genres: %w", err)
	}

	authors, err := AuthorsByBook(ctx, q, lo.Map(rows, func(r bookOfOwner, _ int) int64 { return r.ID }))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Authors = authors[rows[i].ID]
	}

	fillBookGroups(groups, rows)
	return groups, nil
}

// GenresByID returns the genres with the given ids, keyed by id.
func GenresByID(ctx context.Context, q sqlx.ExtContext, ids []int64) (map[int64]catalog.Genre, error) {
	if len(ids) == 0 {
		return map[int64]catalog.Genre{}, nil
	}

	var rows []catalog.Genre
	if err := selectIn(ctx, q, &rows, genresByIDSQL, ids); err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	return lo.KeyBy(rows, func(g catalog.Genre) int64 { return g.ID }), nil
}

func fillBookGroups(groups map[int64][]catalog.Book, rows []bookOfOwner) {
	for owner, group := range lo.GroupBy(rows, func(r bookOfOwner) int64 { return r.OwnerID }) {
		groups[owner] = lo.Map(group, func(r bookOfOwner, _ int) catalog.Book {
			b := r.Book
			b.Genre = &catalog.Genre{ID: r.GenreID, Name: r.GenreName}
			return b
		})
	}
}
