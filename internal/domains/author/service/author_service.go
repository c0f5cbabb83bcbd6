package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/catalog"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*catalog.AuthorDto, error) {
	if id <= 0 {
		log.Warn().Int64("author_id", id).Msg("Invalid author id")
		return nil, model.ErrAuthorNotFound
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logFailure(err).Int64("author_id", id).Msg("Get author by id failed")
		return nil, err
	}

	dto := catalog.ToAuthorDto(*a)
	return &dto, nil
}

func (s *authorService) GetBySurname(ctx context.Context, surname string, strategy catalog.Strategy) (*catalog.AuthorDto, error) {
	surname = strings.TrimSpace(surname)
	if surname == "" {
		return nil, model.ErrMissingSurname
	}

	a, err := s.repo.FindBySurname(ctx, surname, strategy)
	if err != nil {
		logFailure(err).
			Str("surname", surname).
			Str("strategy", strategy.String()).
			Msg("Get author by surname failed")
		return nil, err
	}

	dto := catalog.ToAuthorDto(*a)
	return &dto, nil
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*catalog.AuthorDto, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Create author rejected")
		return nil, err
	}

	created, err := s.repo.Save(ctx, req.ToEntity())
	if err != nil {
		log.Error().Err(err).Str("surname", req.Surname).Msg("Create author failed")
		return nil, err
	}

	log.Info().Int64("author_id", created.ID).Msg("Author created")
	dto := catalog.ToAuthorDto(*created)
	return &dto, nil
}

func (s *authorService) Update(ctx context.Context, req model.UpdateAuthorRequest) (*catalog.AuthorDto, error) {
	// ═══════════════════════════════════════════════════════════
	// STEP 1: VALIDATE REQUEST
	// ═══════════════════════════════════════════════════════════
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Int64("author_id", req.ID).Msg("Update author rejected")
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 2: FETCH CURRENT AUTHOR
	// ═══════════════════════════════════════════════════════════
	current, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		logFailure(err).Int64("author_id", req.ID).Msg("Update author failed")
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 3: REPLACE STORED RECORD
	// ═══════════════════════════════════════════════════════════
	updated, err := s.repo.Save(ctx, req.ApplyTo(*current))
	if err != nil {
		logFailure(err).Int64("author_id", req.ID).Msg("Update author failed")
		return nil, err
	}

	dto := catalog.ToAuthorDto(*updated)
	return &dto, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrAuthorNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		logFailure(err).Int64("author_id", id).Msg("Delete author failed")
		return err
	}

	log.Info().Int64("author_id", id).Msg("Author deleted")
	return nil
}

func (s *authorService) GetAll(ctx context.Context) ([]catalog.AuthorDto, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("List authors failed")
		return nil, err
	}
	return catalog.ToAuthorDtos(authors), nil
}
