package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/catalog/store"
)

const table = "author"

const (
	selectByIDSQL  = `SELECT id, name, surname FROM author WHERE id = ?`
	selectAllSQL   = `SELECT id, name, surname FROM author ORDER BY id`
	existingIDsSQL = `SELECT id FROM author WHERE id IN (?)`
)

var surnameLookup = store.Lookup{
	Table:    table,
	Columns:  []string{"id", "name", "surname"},
	Field:    "surname",
	RawQuery: `SELECT id, name, surname FROM author WHERE surname = ? ORDER BY id LIMIT 2`,
}

// SQLRepository implements RepositoryInterface with sqlx.
type SQLRepository struct {
	db *sqlx.DB
	sb store.Builder
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, sb: store.NewBuilder(db.DriverName())}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*catalog.Author, error) {
	var a catalog.Author
	err := r.db.GetContext(ctx, &a, r.db.Rebind(selectByIDSQL), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author %d: %w", id, err)
	}

	if err := r.attachBooks(ctx, []*catalog.Author{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]catalog.Author, error) {
	authors := []catalog.Author{}
	if err := r.db.SelectContext(ctx, &authors, selectAllSQL); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	ptrs := lo.Map(authors, func(_ catalog.Author, i int) *catalog.Author { return &authors[i] })
	if err := r.attachBooks(ctx, ptrs); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *SQLRepository) FindBySurname(ctx context.Context, surname string, strategy catalog.Strategy) (*catalog.Author, error) {
	var rows []catalog.Author
	if err := r.sb.FindBy(ctx, r.db, &rows, surnameLookup, surname, strategy); err != nil {
		return nil, err
	}

	a, err := store.One(rows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachBooks(ctx, []*catalog.Author{a}); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLRepository) Save(ctx context.Context, a catalog.Author) (*catalog.Author, error) {
	values := map[string]interface{}{
		"name":    a.Name,
		"surname": a.Surname,
	}

	id := a.ID
	if a.IsNew() {
		newID, err := r.sb.Insert(ctx, r.db, table, values)
		if err != nil {
			return nil, err
		}
		id = newID
	} else {
		err := r.sb.Update(ctx, r.db, table, id, values)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
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
		return model.ErrAuthorNotFound
	}
	return err
}

func (r *SQLRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := []int64{}
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In(existingIDsSQL, lo.Uniq(ids))
	if err != nil {
		return nil, fmt.Errorf("build author id check: %w", err)
	}
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("check author ids: %w", err)
	}
	return found, nil
}

func (r *SQLRepository) attachBooks(ctx context.Context, authors []*catalog.Author) error {
	ids := lo.Map(authors, func(a *catalog.Author, _ int) int64 { return a.ID })
	books, err := store.BooksByAuthor(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, a := range authors {
		a.Books = books[a.ID]
	}
	return nil
}
