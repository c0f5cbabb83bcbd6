package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"library-catalog/internal/domains/user/model"
)

const findByLoginSQL = `SELECT id, login, password, roles FROM users WHERE login = ?`

type SQLRepository struct {
	db *sqlx.DB
	sq squirrel.StatementBuilderType
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	var format squirrel.PlaceholderFormat = squirrel.Dollar
	if sqlx.BindType(db.DriverName()) == sqlx.QUESTION {
		format = squirrel.Question
	}
	return &SQLRepository{db: db, sq: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

func (r *SQLRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(findByLoginSQL), login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", login, err)
	}
	return &u, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, u model.User) (*model.User, error) {
	query, args, err := r.sq.Insert("users").
		Columns("login", "password", "roles").
		Values(u.Login, u.Password, u.Roles).
		Suffix("ON CONFLICT (login) DO UPDATE SET password = excluded.password, roles = excluded.roles RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert user: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("upsert user %q: %w", u.Login, err)
	}
	return &u, nil
}
