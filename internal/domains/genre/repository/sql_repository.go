package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/catalog/store"
	"library-catalog/internal/domains/genre/model"
)

const table = "genre"

const (
	selectByIDSQL = `SELECT id, name FROM genre WHERE id = ?`
	selectAllSQL  = `SELECT id, name FROM genre ORDER BY id`
)

var nameLookup = store.Lookup{
	Table:    table,
	Columns:  []string{"id", "name"},
	Field:    "name",
	RawQuery: `SELECT id, name FROM genre WHERE name = ? ORDER BY id LIMIT 2`,
}

type SQLRepository struct {
	db *sqlx.DB
	sb store.Builder
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, sb: store.NewBuilder(db.DriverName())}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*catalog.Genre, error) {
	var g catalog.Genre
	err := r.db.GetContext(ctx, &g, r.db.Rebind(selectByIDSQL), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get genre %d: %w", id, err)
	}

	if err := r.attachBooks(ctx, []*catalog.Genre{&g}); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]catalog.Genre, error) {
	genres := []catalog.Genre{}
	if err := r.db.SelectContext(ctx, &genres, selectAllSQL); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	ptrs := lo.Map(genres, func(_ catalog.Genre, i int) *catalog.Genre { return &genres[i] })
	if err := r.attachBooks(ctx, ptrs); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *SQLRepository) FindByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.Genre, error) {
	var rows []catalog.Genre
	if err := r.sb.FindBy(ctx, r.db, &rows, nameLookup, name, strategy); err != nil {
		return nil, err
	}

	g, err := store.One(rows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachBooks(ctx, []*catalog.Genre{g}); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *SQLRepository) Save(ctx context.Context, g catalog.Genre) (*catalog.Genre, error) {
	values := map[string]interface{}{"name": g.Name}

	id := g.ID
	if g.IsNew() {
		newID, err := r.sb.Insert(ctx, r.db, table, values)
		if err != nil {
			return nil, err
		}
		id = newID
	} else {
		err := r.sb.Update(ctx, r.db, table, id, values)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

func (r *SQLRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.sb.Delete(ctx, r.db, table, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrGenreNotFound
	}
	return err
}

func (r *SQLRepository) CountBooks(ctx context.Context, id int64) (int, error) {
	return r.sb.Count(ctx, r.db, "book", "genre_id", id)
}

func (r *SQLRepository) attachBooks(ctx context.Context, genres []*catalog.Genre) error {
	ids := lo.Map(genres, func(g *catalog.Genre, _ int) int64 { return g.ID })
	books, err := store.BooksByGenre(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, g := range genres {
		g.Books = books[g.ID]
	}
	return nil
}
