package repository

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLRepository_PlaceholderFormat(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"pgx", "SELECT id FROM users WHERE login = $1"},
		{"postgres", "SELECT id FROM users WHERE login = $1"},
		{"sqlite3", "SELECT id FROM users WHERE login = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			r := NewSQLRepository(sqlx.NewDb(nil, tt.driver))
			query, args, err := r.sq.Select("id").From("users").Where(squirrel.Eq{"login": "admin"}).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []interface{}{"admin"}, args)
		})
	}
}
