// Package store contains the SQL building blocks shared by the catalog gateways:
// dialect-aware builders, the three lookup strategies and eager relation loaders.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

// Builder renders statements for the dialect of a sqlx driver.
type Builder struct {
	dialect string
	goqu    goqu.DialectWrapper
	sq      squirrel.StatementBuilderType
}

// NewBuilder picks the dialect from the driver name: pgx and postgres use $n
// placeholders, sqlite3 uses ?.
func NewBuilder(driverName string) Builder {
	dialect := "postgres"
	var format squirrel.PlaceholderFormat = squirrel.Dollar
	if sqlx.BindType(driverName) == sqlx.QUESTION {
		dialect, format = "sqlite3", squirrel.Question
	}
	return Builder{
		dialect: dialect,
		goqu:    goqu.Dialect(dialect),
		sq:      squirrel.StatementBuilder.PlaceholderFormat(format),
	}
}

func (b Builder) Dialect() string { return b.dialect }

// Insert adds a row and returns the id assigned by the store.
func (b Builder) Insert(ctx context.Context, q sqlx.ExtContext, table string, values map[string]interface{}) (int64, error) {
	query, args, err := b.sq.Insert(table).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert into %s: %w", table, err)
	}

	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

// Update replaces the columns of the row with id. It returns sql.ErrNoRows when
// no row has that id.
func (b Builder) Update(ctx context.Context, q sqlx.ExtContext, table string, id int64, values map[string]interface{}) error {
	query, args, err := b.sq.Update(table).SetMap(values).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", table, err)
	}
	return execAffectingOne(ctx, q, table, query, args)
}

// Delete removes the row with id. It returns sql.ErrNoRows when no row has that id.
func (b Builder) Delete(ctx context.Context, q sqlx.ExtContext, table string, id int64) error {
	query, args, err := b.sq.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete from %s: %w", table, err)
	}
	return execAffectingOne(ctx, q, table, query, args)
}

// Exists reports whether a row with id is present.
func (b Builder) Exists(ctx context.Context, q sqlx.ExtContext, table string, id int64) (bool, error) {
	query, args, err := b.sq.Select("1").From(table).Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists %s: %w", table, err)
	}

	var one int
	err = sqlx.GetContext(ctx, q, &one, query, args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check %s exists: %w", table, err)
	}
	return true, nil
}

// Count returns the number of rows in table where column = value.
func (b Builder) Count(ctx context.Context, q sqlx.ExtContext, table, column string, value interface{}) (int, error) {
	query, args, err := b.sq.Select("COUNT(*)").From(table).Where(squirrel.Eq{column: value}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", table, err)
	}

	var n int
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func execAffectingOne(ctx context.Context, q sqlx.ExtContext, table, query string, args []interface{}) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s: %w", table, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceBookAuthors swaps the author links of a book for authorIDs.
// Run it inside the transaction that writes the book row.
func (b Builder) ReplaceBookAuthors(ctx context.Context, q sqlx.ExtContext, bookID int64, authorIDs []int64) error {
	query, args, err := b.sq.Delete("author_book").Where(squirrel.Eq{"book_id": bookID}).ToSql()
	if err != nil {
		return fmt.Errorf("build unlink authors: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unlink authors of book %d: %w", bookID, err)
	}

	if len(authorIDs) == 0 {
		return nil
	}

	insert := b.sq.Insert("author_book").Columns("book_id", "author_id")
	for _, authorID := range lo.Uniq(authorIDs) {
		insert = insert.Values(bookID, authorID)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build link authors: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("link authors of book %d: %w", bookID, err)
	}
	return nil
}
