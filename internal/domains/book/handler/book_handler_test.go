package handler_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/handler"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/testutil"
)

func newRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := service.NewBookService(repository.NewSQLRepository(db.DB), authorRepo.NewSQLRepository(db.DB))

	r := gin.New()
	handler.NewBookHandler(svc).RegisterRoutes(r)
	return r, db
}

func TestBookHandler_Lifecycle(t *testing.T) {
	r, db := newRouter(t)
	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	authorID := testutil.InsertAuthor(t, db.DB, "Александр", "Грин")

	w := testutil.MakeRequest(r, http.MethodPost, "/book/create", map[string]interface{}{
		"name":       "Алые паруса",
		"genre_id":   genreID,
		"author_ids": []int64{authorID},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created catalog.BookDto
	testutil.DecodeJSON(t, w, &created)
	assert.JSONEq(t, fmt.Sprintf(
		`{"id":%d,"name":"Алые паруса","genre":"Роман","authors":[{"id":%d,"name":"Александр","surname":"Грин"}]}`,
		created.ID, authorID), w.Body.String())

	q := "?name=" + url.QueryEscape("Алые паруса")
	for _, path := range []string{"/book" + q, "/book/v2" + q, "/book/v3" + q, fmt.Sprintf("/book/%d", created.ID)} {
		w := testutil.MakeRequest(r, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var got catalog.BookDto
		testutil.DecodeJSON(t, w, &got)
		assert.Equal(t, created, got, path)
	}

	w = testutil.MakeRequest(r, http.MethodGet, "/books", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []catalog.BookDto
	testutil.DecodeJSON(t, w, &all)
	assert.Equal(t, []catalog.BookDto{created}, all)

	w = testutil.MakeRequest(r, http.MethodDelete, fmt.Sprintf("/book/delete/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
}

func TestBookHandler_Errors(t *testing.T) {
	r, db := newRouter(t)
	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	bookID := testutil.InsertBook(t, db.DB, "Book", genreID)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown id", http.MethodGet, "/book/404", nil, http.StatusNotFound, "BOOK_NOT_FOUND"},
		{"zero id", http.MethodGet, "/book/0", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing name", http.MethodGet, "/book", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"blank name", http.MethodGet, "/book/v3?name=%20", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown genre", http.MethodPost, "/book/create", map[string]interface{}{"name": "X", "genre_id": 99}, http.StatusNotFound, "GENRE_NOT_FOUND"},
		{"unknown author", http.MethodPut, "/book/update", map[string]interface{}{"id": bookID, "name": "X", "genre_id": genreID, "author_ids": []int{7}}, http.StatusNotFound, "AUTHOR_NOT_FOUND"},
		{"invalid update", http.MethodPut, "/book/update", map[string]interface{}{"id": bookID, "name": "", "genre_id": genreID}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"delete nonexistent", http.MethodDelete, "/book/delete/999", nil, http.StatusNotFound, "BOOK_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.MakeRequest(r, tt.method, tt.path, tt.body, nil)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			var resp response.Response
			testutil.DecodeJSON(t, w, &resp)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
