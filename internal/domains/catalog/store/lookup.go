package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"library-catalog/internal/domains/catalog"
)

// lookupLimit is two so that a duplicate match can be detected.
const lookupLimit = 2

// Lookup describes "find entity where Field = value" for one table.
type Lookup struct {
	Table   string
	Columns []string
	Field   string
	// RawQuery is the hand-written statement used by StrategyRawQuery.
	// It takes the value as its only ? placeholder and must order by id and
	// return at most two rows.
	RawQuery string
}

// LookupSQL renders the lookup for a strategy. The three renderings are
// equivalent: same predicate, same order, same limit.
func (b Builder) LookupSQL(q sqlx.ExtContext, l Lookup, value interface{}, strategy catalog.Strategy) (string, []interface{}, error) {
	if !strategy.Valid() {
		return "", nil, fmt.Errorf("unknown lookup strategy %q", string(strategy))
	}

	switch strategy {
	case catalog.StrategyFinder:
		return b.goqu.From(l.Table).
			Select(lo.ToAnySlice(l.Columns)...).
			Where(goqu.Ex{l.Field: value}).
			Order(goqu.C("id").Asc()).
			Limit(lookupLimit).
			Prepared(true).
			ToSQL()

	case catalog.StrategyRawQuery:
		if l.RawQuery == "" {
			return "", nil, fmt.Errorf("no raw query defined for %s.%s", l.Table, l.Field)
		}
		return q.Rebind(l.RawQuery), []interface{}{value}, nil

	default:
		return b.sq.Select(l.Columns...).
			From(l.Table).
			Where(squirrel.Eq{l.Field: value}).
			OrderBy("id").
			Limit(lookupLimit).
			ToSql()
	}
}

// FindBy runs the lookup and scans the matches into dest, a pointer to a slice.
func (b Builder) FindBy(ctx context.Context, q sqlx.ExtContext, dest interface{}, l Lookup, value interface{}, strategy catalog.Strategy) error {
	query, args, err := b.LookupSQL(q, l, value, strategy)
	if err != nil {
		return err
	}
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return fmt.Errorf("lookup %s by %s (%s): %w", l.Table, l.Field, strategy, err)
	}
	return nil
}

// One returns the single element of rows: sql.ErrNoRows when empty,
// catalog.ErrMultipleMatches when there is more than one.
func One[T any](rows []T) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, sql.ErrNoRows
	case 1:
		return &rows[0], nil
	default:
		return nil, catalog.ErrMultipleMatches
	}
}
