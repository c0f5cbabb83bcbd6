package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/testutil"
)

func setup(t *testing.T) (service.ServiceInterface, *database.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewAuthorService(repository.NewSQLRepository(db.DB)), db
}

func TestAuthorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("John Doe", func(t *testing.T) {
		svc, _ := setup(t)

		dto, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "John", Surname: "Doe"})
		require.NoError(t, err)

		assert.Positive(t, dto.ID)
		assert.Equal(t, "John", dto.Name)
		assert.Equal(t, "Doe", dto.Surname)
		assert.Empty(t, dto.Books)
	})

	t.Run("trims input", func(t *testing.T) {
		svc, _ := setup(t)

		dto, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "  John ", Surname: " Doe "})
		require.NoError(t, err)
		assert.Equal(t, "John", dto.Name)
		assert.Equal(t, "Doe", dto.Surname)
	})

	invalid := []struct {
		name string
		req  model.CreateAuthorRequest
	}{
		{"blank name", model.CreateAuthorRequest{Name: "   ", Surname: "Doe"}},
		{"blank surname", model.CreateAuthorRequest{Name: "John", Surname: ""}},
		{"name too short", model.CreateAuthorRequest{Name: "Jo", Surname: "Doe"}},
		{"name too long", model.CreateAuthorRequest{Name: "Maximilianus", Surname: "Doe"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := setup(t)

			_, err := svc.Create(ctx, tt.req)
			require.ErrorIs(t, err, shared.ErrValidation)
			assert.Equal(t, 400, model.ToHTTPStatus(err))
			assert.Equal(t, 0, testutil.CountRows(t, db.DB, "author"), "no store write on validation failure")
		})
	}

	t.Run("cyrillic names count runes", func(t *testing.T) {
		svc, _ := setup(t)

		dto, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "Александр", Surname: "Пушкин"})
		require.NoError(t, err)
		assert.Equal(t, "Александр", dto.Name)
	})
}

func TestAuthorService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)

	created, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "Илья", Surname: "Ильф"})
	require.NoError(t, err)

	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	testutil.InsertBook(t, db.DB, "Двенадцать стульев", genreID, created.ID)

	t.Run("returns scalar fields and books", func(t *testing.T) {
		dto, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, created.ID, dto.ID)
		assert.Equal(t, "Илья", dto.Name)
		assert.Equal(t, "Ильф", dto.Surname)
		require.Len(t, dto.Books, 1)
		assert.Equal(t, "Двенадцать стульев", dto.Books[0].Name)
		assert.Equal(t, "Роман", dto.Books[0].Genre)
		assert.Nil(t, dto.Books[0].Authors, "one level of nesting only")
	})

	t.Run("not found", func(t *testing.T) {
		dto, err := svc.GetByID(ctx, created.ID+100)
		assert.Nil(t, dto)
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		assert.Equal(t, 404, model.ToHTTPStatus(err))
	})

	t.Run("non-positive id is not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 0)
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})
}

func TestAuthorService_GetBySurname(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "John", Surname: "Doe"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateAuthorRequest{Name: "Jane", Surname: "Roe"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateAuthorRequest{Name: "Jack", Surname: "Roe"})
	require.NoError(t, err)

	t.Run("strategies are equivalent", func(t *testing.T) {
		var results []*catalog.AuthorDto
		for _, strategy := range catalog.Strategies {
			dto, err := svc.GetBySurname(ctx, "Doe", strategy)
			require.NoError(t, err, strategy.String())
			results = append(results, dto)
		}
		for _, dto := range results[1:] {
			assert.Equal(t, results[0], dto)
		}
		assert.Equal(t, "John", results[0].Name)
	})

	for _, strategy := range catalog.Strategies {
		t.Run("not found "+strategy.String(), func(t *testing.T) {
			_, err := svc.GetBySurname(ctx, "Nobody", strategy)
			assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		})

		t.Run("duplicates rejected "+strategy.String(), func(t *testing.T) {
			_, err := svc.GetBySurname(ctx, "Roe", strategy)
			assert.ErrorIs(t, err, catalog.ErrMultipleMatches)
			assert.Equal(t, 409, model.ToHTTPStatus(err))
		})
	}

	t.Run("blank surname", func(t *testing.T) {
		_, err := svc.GetBySurname(ctx, "  ", catalog.StrategyFinder)
		assert.ErrorIs(t, err, model.ErrMissingSurname)
		assert.Equal(t, 400, model.ToHTTPStatus(err))
	})
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and keeps books", func(t *testing.T) {
		svc, db := setup(t)
		created, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "John", Surname: "Doe"})
		require.NoError(t, err)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")
		testutil.InsertBook(t, db.DB, "Book", genreID, created.ID)

		dto, err := svc.Update(ctx, model.UpdateAuthorRequest{ID: created.ID, Name: "Johnny", Surname: "Dough"})
		require.NoError(t, err)
		assert.Equal(t, "Johnny", dto.Name)
		assert.Equal(t, "Dough", dto.Surname)
		assert.Len(t, dto.Books, 1)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, dto, fetched)
	})

	t.Run("missing id is not found and writes nothing", func(t *testing.T) {
		svc, db := setup(t)

		_, err := svc.Update(ctx, model.UpdateAuthorRequest{ID: 99, Name: "John", Surname: "Doe"})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		assert.Equal(t, 0, testutil.CountRows(t, db.DB, "author"))
	})

	t.Run("validation runs first", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Update(ctx, model.UpdateAuthorRequest{ID: 0, Name: "", Surname: "Doe"})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestAuthorService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)

	created, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "John", Surname: "Doe"})
	require.NoError(t, err)
	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	bookID := testutil.InsertBook(t, db.DB, "Book", genreID, created.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "author_book"), "links are removed")
	assert.Equal(t, 1, testutil.CountRows(t, db.DB, "book"), "books survive")
	assert.Positive(t, bookID)

	t.Run("second delete is not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, created.ID), model.ErrAuthorNotFound)
	})
}

func TestAuthorService_GetAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, surname := range []string{"Doe", "Roe", "Poe"} {
		_, err := svc.Create(ctx, model.CreateAuthorRequest{Name: "John", Surname: surname})
		require.NoError(t, err)
	}

	all, err = svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Doe", all[0].Surname)
	assert.Equal(t, "Poe", all[2].Surname)
	for _, a := range all {
		assert.NotNil(t, a.Books)
	}
}
