package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/shared/testutil"
	"library-catalog/pkg/database"
)

func insertGenre(tx *sqlx.Tx, name string) error {
	_, err := tx.Exec(tx.Rebind("INSERT INTO genre (name) VALUES (?)"), name)
	return err
}

func TestWithTransaction_Commits(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := database.WithTransaction(context.Background(), db.DB, func(tx *sqlx.Tx) error {
		return insertGenre(tx, "Роман")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CountRows(t, db.DB, "genre"))
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	boom := errors.New("boom")

	err := database.WithTransaction(context.Background(), db.DB, func(tx *sqlx.Tx) error {
		require.NoError(t, insertGenre(tx, "Роман"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "genre"))
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	db := testutil.NewTestDB(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = database.WithTransaction(context.Background(), db.DB, func(tx *sqlx.Tx) error {
			require.NoError(t, insertGenre(tx, "Роман"))
			panic("boom")
		})
	})

	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "genre"))
}

func TestWithTransactionResult(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	id, err := database.WithTransactionResult(ctx, db.DB, func(tx *sqlx.Tx) (int64, error) {
		var id int64
		err := tx.Get(&id, tx.Rebind("INSERT INTO genre (name) VALUES (?) RETURNING id"), "Поэзия")
		return id, err
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	id, err = database.WithTransactionResult(ctx, db.DB, func(tx *sqlx.Tx) (int64, error) {
		require.NoError(t, insertGenre(tx, "Драма"))
		return 42, errors.New("fail")
	})
	assert.Error(t, err)
	assert.Zero(t, id)
	assert.Equal(t, 1, testutil.CountRows(t, db.DB, "genre"))
}
