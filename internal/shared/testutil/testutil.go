// Package testutil provides helpers for tests that need a migrated store or
// want to drive gin handlers.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database"
)

var dbSeq atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens a fresh in-memory sqlite database with every migration applied.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))

	db, err := database.OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// InsertGenre, InsertAuthor and InsertBook write fixture rows directly and return their ids.
func InsertGenre(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	return insert(t, db, "INSERT INTO genre (name) VALUES (?)", name)
}

func InsertAuthor(t *testing.T, db *sqlx.DB, name, surname string) int64 {
	t.Helper()
	return insert(t, db, "INSERT INTO author (name, surname) VALUES (?, ?)", name, surname)
}

func InsertBook(t *testing.T, db *sqlx.DB, name string, genreID int64, authorIDs ...int64) int64 {
	t.Helper()
	id := insert(t, db, "INSERT INTO book (name, genre_id) VALUES (?, ?)", name, genreID)
	for _, authorID := range authorIDs {
		_, err := db.Exec(db.Rebind("INSERT INTO author_book (book_id, author_id) VALUES (?, ?)"), id, authorID)
		require.NoError(t, err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func insert(t *testing.T, db *sqlx.DB, query string, args ...interface{}) int64 {
	t.Helper()
	res, err := db.Exec(db.Rebind(query), args...)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// MakeRequest serves a request against router and returns the recorder.
// A non-nil body is encoded as JSON.
func MakeRequest(router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals the recorded response body into dest.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}
