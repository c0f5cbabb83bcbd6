package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/testutil"
)

func setup(t *testing.T) (service.ServiceInterface, *database.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewBookService(repository.NewSQLRepository(db.DB), authorRepo.NewSQLRepository(db.DB)), db
}

func TestBookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("with genre and authors", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")
		a1 := testutil.InsertAuthor(t, db.DB, "Илья", "Ильф")
		a2 := testutil.InsertAuthor(t, db.DB, "Евгений", "Петров")

		dto, err := svc.Create(ctx, model.CreateBookRequest{
			Name:      " Двенадцать стульев ",
			GenreID:   genreID,
			AuthorIDs: []int64{a2, a1, a1},
		})
		require.NoError(t, err)

		assert.Positive(t, dto.ID)
		assert.Equal(t, "Двенадцать стульев", dto.Name)
		assert.Equal(t, "Роман", dto.Genre)
		require.Len(t, dto.Authors, 2)
		assert.Equal(t, a1, dto.Authors[0].ID)
		assert.Equal(t, "Ильф", dto.Authors[0].Surname)
		assert.Nil(t, dto.Authors[0].Books)
		assert.Equal(t, 2, testutil.CountRows(t, db.DB, "author_book"))
	})

	t.Run("without authors", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Поэзия")

		dto, err := svc.Create(ctx, model.CreateBookRequest{Name: "Стихи", GenreID: genreID})
		require.NoError(t, err)
		assert.NotNil(t, dto.Authors)
		assert.Empty(t, dto.Authors)
	})

	t.Run("unknown genre", func(t *testing.T) {
		svc, db := setup(t)

		_, err := svc.Create(ctx, model.CreateBookRequest{Name: "Book", GenreID: 42})
		assert.ErrorIs(t, err, model.ErrGenreNotFound)
		assert.Equal(t, 404, model.ToHTTPStatus(err))
		assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
	})

	t.Run("unknown author", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")
		a1 := testutil.InsertAuthor(t, db.DB, "Илья", "Ильф")

		_, err := svc.Create(ctx, model.CreateBookRequest{Name: "Book", GenreID: genreID, AuthorIDs: []int64{a1, 999}})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
	})

	invalid := []struct {
		name string
		req  model.CreateBookRequest
	}{
		{"blank name", model.CreateBookRequest{Name: "  ", GenreID: 1}},
		{"missing genre", model.CreateBookRequest{Name: "Book"}},
		{"negative author id", model.CreateBookRequest{Name: "Book", GenreID: 1, AuthorIDs: []int64{-1}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := setup(t)
			testutil.InsertGenre(t, db.DB, "Роман")

			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
		})
	}
}

func TestBookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("renames and moves to another genre", func(t *testing.T) {
		svc, db := setup(t)
		testutil.InsertGenre(t, db.DB, "Повесть")
		roman := testutil.InsertGenre(t, db.DB, "Роман")
		genreID := testutil.InsertGenre(t, db.DB, "Сказка")
		author := testutil.InsertAuthor(t, db.DB, "Александр", "Грин")
		bookID := testutil.InsertBook(t, db.DB, "Паруса", genreID, author)
		require.Equal(t, int64(1), bookID)
		require.Equal(t, int64(2), roman)

		dto, err := svc.Update(ctx, model.UpdateBookRequest{ID: 1, Name: "Алые паруса", GenreID: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(1), dto.ID)
		assert.Equal(t, "Алые паруса", dto.Name)
		assert.Equal(t, "Роман", dto.Genre)
		require.Len(t, dto.Authors, 1, "absent author_ids keeps the authors")
		assert.Equal(t, author, dto.Authors[0].ID)
	})

	t.Run("replaces authors", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")
		a1 := testutil.InsertAuthor(t, db.DB, "Илья", "Ильф")
		a2 := testutil.InsertAuthor(t, db.DB, "Евгений", "Петров")
		bookID := testutil.InsertBook(t, db.DB, "Book", genreID, a1)

		dto, err := svc.Update(ctx, model.UpdateBookRequest{ID: bookID, Name: "Book", GenreID: genreID, AuthorIDs: []int64{a2}})
		require.NoError(t, err)
		require.Len(t, dto.Authors, 1)
		assert.Equal(t, a2, dto.Authors[0].ID)

		dto, err = svc.Update(ctx, model.UpdateBookRequest{ID: bookID, Name: "Book", GenreID: genreID, AuthorIDs: []int64{}})
		require.NoError(t, err)
		assert.Empty(t, dto.Authors)
		assert.Equal(t, 0, testutil.CountRows(t, db.DB, "author_book"))
	})

	t.Run("unknown genre leaves the book untouched", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")
		bookID := testutil.InsertBook(t, db.DB, "Book", genreID)

		_, err := svc.Update(ctx, model.UpdateBookRequest{ID: bookID, Name: "Other", GenreID: 77})
		assert.ErrorIs(t, err, model.ErrGenreNotFound)

		dto, err := svc.GetByID(ctx, bookID)
		require.NoError(t, err)
		assert.Equal(t, "Book", dto.Name)
	})

	t.Run("missing id", func(t *testing.T) {
		svc, db := setup(t)
		genreID := testutil.InsertGenre(t, db.DB, "Роман")

		_, err := svc.Update(ctx, model.UpdateBookRequest{ID: 5, Name: "Book", GenreID: genreID})
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
	})
}

func TestBookService_Lookups(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	author := testutil.InsertAuthor(t, db.DB, "Лев", "Толстой")
	bookID := testutil.InsertBook(t, db.DB, "Война и мир", genreID, author)
	testutil.InsertBook(t, db.DB, "Анна Каренина", genreID, author)
	testutil.InsertBook(t, db.DB, "Анна Каренина", genreID)

	byID, err := svc.GetByID(ctx, bookID)
	require.NoError(t, err)

	for _, strategy := range catalog.Strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			dto, err := svc.GetByName(ctx, "Война и мир", strategy)
			require.NoError(t, err)
			assert.Equal(t, byID, dto)

			_, err = svc.GetByName(ctx, "Воскресение", strategy)
			assert.ErrorIs(t, err, model.ErrBookNotFound)

			_, err = svc.GetByName(ctx, "Анна Каренина", strategy)
			assert.ErrorIs(t, err, catalog.ErrMultipleMatches)
		})
	}

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.GetByName(ctx, "", catalog.StrategyRawQuery)
		assert.ErrorIs(t, err, model.ErrMissingName)
	})

	t.Run("get all in storage order", func(t *testing.T) {
		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, *byID, all[0])
		assert.Empty(t, all[2].Authors)
	})
}

func TestBookService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	genreID := testutil.InsertGenre(t, db.DB, "Роман")
	author := testutil.InsertAuthor(t, db.DB, "Лев", "Толстой")
	bookID := testutil.InsertBook(t, db.DB, "Война и мир", genreID, author)

	require.NoError(t, svc.Delete(ctx, bookID))
	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "book"))
	assert.Equal(t, 0, testutil.CountRows(t, db.DB, "author_book"))
	assert.Equal(t, 1, testutil.CountRows(t, db.DB, "author"))

	t.Run("nonexistent book", func(t *testing.T) {
		err := svc.Delete(ctx, 12345)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		assert.Equal(t, 404, model.ToHTTPStatus(err))
	})
}
