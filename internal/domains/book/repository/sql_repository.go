package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/catalog/store"
	"library-catalog/pkg/database"
)

const table = "book"

const (
	selectByIDSQL = `SELECT id, name, genre_id FROM book WHERE id = ?`
	selectAllSQL  = `SELECT id, name, genre_id FROM book ORDER BY id`
)

var nameLookup = store.Lookup{
	Table:    table,
	Columns:  []string{"id", "name", "genre_id"},
	Field:    "name",
	RawQuery: `SELECT id, name, genre_id FROM book WHERE name = ? ORDER BY id LIMIT 2`,
}

type SQLRepository struct {
	db *sqlx.DB
	sb store.Builder
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, sb: store.NewBuilder(db.DriverName())}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*catalog.Book, error) {
	var b catalog.Book
	err := r.db.GetContext(ctx, &b, r.db.Rebind(selectByIDSQL), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}

	if err := r.attachRelations(ctx, []*catalog.Book{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]catalog.Book, error) {
	books := []catalog.Book{}
	if err := r.db.SelectContext(ctx, &books, selectAllSQL); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	ptrs := lo.Map(books, func(_ catalog.Book, i int) *catalog.Book { return &books[i] })
	if err := r.attachRelations(ctx, ptrs); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *SQLRepository) FindByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.Book, error) {
	var rows []catalog.Book
	if err := r.sb.FindBy(ctx, r.db, &rows, nameLookup, name, strategy); err != nil {
		return nil, err
	}

	b, err := store.One(rows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachRelations(ctx, []*catalog.Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLRepository) Save(ctx context.Context, b catalog.Book) (*catalog.Book, error) {
	values := map[string]interface{}{
		"name":     b.Name,
		"genre_id": b.GenreID,
	}

	id, err := database.WithTransactionResult(ctx, r.db, func(tx *sqlx.Tx) (int64, error) {
		id := b.ID
		if b.IsNew() {
			newID, err := r.sb.Insert(ctx, tx, table, values)
			if err != nil {
				return 0, err
			}
			id = newID
		} else {
			err := r.sb.Update(ctx, tx, table, id, values)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, model.ErrBookNotFound
			}
			if err != nil {
				return 0, err
			}
		}

		if b.Authors != nil {
			if err := r.sb.ReplaceBookAuthors(ctx, tx, id, b.AuthorIDs()); err != nil {
				return 0, err
			}
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// DeleteByID removes the book; its author links go with it.
func (r *SQLRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.sb.Delete(ctx, r.db, table, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrBookNotFound
	}
	return err
}

func (r *SQLRepository) FindGenre(ctx context.Context, id int64) (*catalog.Genre, error) {
	genres, err := store.GenresByID(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	g, ok := genres[id]
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	return &g, nil
}

func (r *SQLRepository) attachRelations(ctx context.Context, books []*catalog.Book) error {
	ids := lo.Map(books, func(b *catalog.Book, _ int) int64 { return b.ID })
	genreIDs := lo.Map(books, func(b *catalog.Book, _ int) int64 { return b.GenreID })

	genres, err := store.GenresByID(ctx, r.db, genreIDs)
	if err != nil {
		return err
	}
	authors, err := store.AuthorsByBook(ctx, r.db, ids)
	if err != nil {
		return err
	}

	for _, b := range books {
		if g, ok := genres[b.GenreID]; ok {
			b.Genre = &g
		}
		b.Authors = authors[b.ID]
	}
	return nil
}
