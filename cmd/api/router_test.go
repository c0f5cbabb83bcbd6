package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/testutil"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/container"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Name: "test", Environment: "test", Version: "test"},
		Database: &database.DBConfig{Driver: database.DriverSQLite},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 60},
		Security: config.SecurityConfig{LoginMaxAttempts: 5, LockoutDuration: time.Minute},
	}
	c := container.Build(cfg, testutil.NewTestDB(t), cache.NewMemoryCache())

	ctx := context.Background()
	_, err := c.AuthService.EnsureUser(ctx, "admin", "admin-pw", model.RoleAdmin, model.RoleReader)
	require.NoError(t, err)
	_, err = c.AuthService.EnsureUser(ctx, "reader", "reader-pw", model.RoleReader)
	require.NoError(t, err)
	_, err = c.AuthService.EnsureUser(ctx, "guest", "guest-pw")
	require.NoError(t, err)
	return c
}

func basic(login, password string) map[string]string {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(login, password)
	return map[string]string{"Authorization": req.Header.Get("Authorization")}
}

func TestRouter_AccessControl(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	admin := basic("admin", "admin-pw")
	reader := basic("reader", "reader-pw")
	guest := basic("guest", "guest-pw")

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		status  int
	}{
		{"health is public", "/health", nil, http.StatusOK},
		{"books need credentials", "/books", nil, http.StatusUnauthorized},
		{"books for reader", "/books", reader, http.StatusOK},
		{"books for admin", "/books", admin, http.StatusOK},
		{"books for guest", "/books", guest, http.StatusForbidden},
		{"authors for reader", "/authors", reader, http.StatusForbidden},
		{"authors for admin", "/authors", admin, http.StatusOK},
		{"author lookup for admin", "/author/v2?surname=Doe", admin, http.StatusNotFound},
		{"genres for guest", "/genres", guest, http.StatusOK},
		{"wrong password", "/genres", basic("admin", "nope"), http.StatusUnauthorized},
		{"unknown route", "/nowhere", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.MakeRequest(r, http.MethodGet, tt.path, nil, tt.headers)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRouter_LoginThenBearer(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	w := testutil.MakeRequest(r, http.MethodPost, "/login", map[string]string{"login": "reader", "password": "reader-pw"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.LoginResponse
	testutil.DecodeJSON(t, w, &resp)

	bearer := map[string]string{"Authorization": "Bearer " + resp.AccessToken}
	w = testutil.MakeRequest(r, http.MethodGet, "/books", nil, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.MakeRequest(r, http.MethodGet, "/authors", nil, bearer)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_CatalogFlow(t *testing.T) {
	r := SetupRouter(newTestContainer(t))
	admin := basic("admin", "admin-pw")

	w := testutil.MakeRequest(r, http.MethodPost, "/genre/create", map[string]string{"name": "Роман"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var genre struct{ ID int64 }
	testutil.DecodeJSON(t, w, &genre)

	w = testutil.MakeRequest(r, http.MethodPost, "/author/create", map[string]string{"name": "John", "surname": "Doe"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var author struct{ ID int64 }
	testutil.DecodeJSON(t, w, &author)

	w = testutil.MakeRequest(r, http.MethodPost, "/book/create", map[string]interface{}{
		"name": "Book", "genre_id": genre.ID, "author_ids": []int64{author.ID},
	}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.MakeRequest(r, http.MethodGet, "/author/v3?surname=Doe", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"John","surname":"Doe","books":[{"id":1,"name":"Book","genre":"Роман"}]}`, w.Body.String())

	w = testutil.MakeRequest(r, http.MethodDelete, "/genre/delete/1", nil, admin)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealth(t *testing.T) {
	r := SetupRouter(newTestContainer(t))

	w := testutil.MakeRequest(r, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "ok", "cache": "ok"}, body["services"])
}
