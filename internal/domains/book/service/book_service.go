package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/catalog"
)

type bookService struct {
	repo       repository.RepositoryInterface
	authorRepo authorRepo.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface, authors authorRepo.RepositoryInterface) ServiceInterface {
	return &bookService{
		repo:       repo,
		authorRepo: authors,
	}
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*catalog.BookDto, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logFailure(err).Int64("book_id", id).Msg("Get book by id failed")
		return nil, err
	}

	dto := catalog.ToBookDto(*b)
	return &dto, nil
}

func (s *bookService) GetByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.BookDto, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrMissingName
	}

	b, err := s.repo.FindByName(ctx, name, strategy)
	if err != nil {
		logFailure(err).
			Str("name", name).
			Str("strategy", strategy.String()).
			Msg("Get book by name failed")
		return nil, err
	}

	dto := catalog.ToBookDto(*b)
	return &dto, nil
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*catalog.BookDto, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Create book rejected")
		return nil, err
	}

	if err := s.checkReferences(ctx, req.GenreID, req.AuthorIDs); err != nil {
		logFailure(err).Int64("genre_id", req.GenreID).Msg("Create book failed")
		return nil, err
	}

	created, err := s.repo.Save(ctx, req.ToEntity())
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Create book failed")
		return nil, err
	}

	log.Info().
		Int64("book_id", created.ID).
		Int("authors", len(created.Authors)).
		Msg("Book created")
	dto := catalog.ToBookDto(*created)
	return &dto, nil
}

func (s *bookService) Update(ctx context.Context, req model.UpdateBookRequest) (*catalog.BookDto, error) {
	// ═══════════════════════════════════════════════════════════
	// STEP 1: VALIDATE REQUEST
	// ═══════════════════════════════════════════════════════════
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Int64("book_id", req.ID).Msg("Update book rejected")
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 2: FETCH CURRENT BOOK
	// ═══════════════════════════════════════════════════════════
	current, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		logFailure(err).Int64("book_id", req.ID).Msg("Update book failed")
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 3: RESOLVE GENRE AND AUTHORS
	// ═══════════════════════════════════════════════════════════
	var authorIDs []int64
	if req.ReplacesAuthors() {
		authorIDs = req.AuthorIDs
	}
	if err := s.checkReferences(ctx, req.GenreID, authorIDs); err != nil {
		logFailure(err).
			Int64("book_id", req.ID).
			Int64("genre_id", req.GenreID).
			Msg("Update book failed")
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 4: REPLACE STORED RECORD
	// ═══════════════════════════════════════════════════════════
	updated, err := s.repo.Save(ctx, req.ApplyTo(*current))
	if err != nil {
		logFailure(err).Int64("book_id", req.ID).Msg("Update book failed")
		return nil, err
	}

	dto := catalog.ToBookDto(*updated)
	return &dto, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrBookNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		logFailure(err).Int64("book_id", id).Msg("Delete book failed")
		return err
	}

	log.Info().Int64("book_id", id).Msg("Book deleted")
	return nil
}

func (s *bookService) GetAll(ctx context.Context) ([]catalog.BookDto, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("List books failed")
		return nil, err
	}
	return catalog.ToBookDtos(books), nil
}

// checkReferences fails with ErrGenreNotFound or ErrAuthorNotFound when a
// referenced row does not exist.
func (s *bookService) checkReferences(ctx context.Context, genreID int64, authorIDs []int64) error {
	if _, err := s.repo.FindGenre(ctx, genreID); err != nil {
		return err
	}

	if len(authorIDs) == 0 {
		return nil
	}
	found, err := s.authorRepo.ExistingIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	if missing, _ := lo.Difference(lo.Uniq(authorIDs), found); len(missing) > 0 {
		log.Warn().Ints64("author_ids", missing).Msg("Unknown authors referenced")
		return model.ErrAuthorNotFound
	}
	return nil
}

func logFailure(err error) *zerolog.Event {
	switch {
	case errors.Is(err, model.ErrBookNotFound),
		errors.Is(err, model.ErrGenreNotFound),
		errors.Is(err, model.ErrAuthorNotFound),
		errors.Is(err, catalog.ErrMultipleMatches):
		return log.Warn().Err(err)
	}
	return log.Error().Err(err)
}
