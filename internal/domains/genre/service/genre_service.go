package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/repository"
)

type genreService struct {
	repo repository.RepositoryInterface
}

func NewGenreService(repo repository.RepositoryInterface) ServiceInterface {
	return &genreService{repo: repo}
}

func (s *genreService) GetByID(ctx context.Context, id int64) (*catalog.GenreDto, error) {
	if id <= 0 {
		return nil, model.ErrGenreNotFound
	}

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logFailure(err).Int64("genre_id", id).Msg("Get genre by id failed")
		return nil, err
	}

	dto := catalog.ToGenreDto(*g)
	return &dto, nil
}

func (s *genreService) GetByName(ctx context.Context, name string, strategy catalog.Strategy) (*catalog.GenreDto, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrMissingName
	}

	g, err := s.repo.FindByName(ctx, name, strategy)
	if err != nil {
		logFailure(err).
			Str("name", name).
			Str("strategy", strategy.String()).
			Msg("Get genre by name failed")
		return nil, err
	}

	dto := catalog.ToGenreDto(*g)
	return &dto, nil
}

func (s *genreService) Create(ctx context.Context, req model.CreateGenreRequest) (*catalog.GenreDto, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Create genre rejected")
		return nil, err
	}

	created, err := s.repo.Save(ctx, req.ToEntity())
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Create genre failed")
		return nil, err
	}

	log.Info().Int64("genre_id", created.ID).Msg("Genre created")
	dto := catalog.ToGenreDto(*created)
	return &dto, nil
}

func (s *genreService) Update(ctx context.Context, req model.UpdateGenreRequest) (*catalog.GenreDto, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Int64("genre_id", req.ID).Msg("Update genre rejected")
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		logFailure(err).Int64("genre_id", req.ID).Msg("Update genre failed")
		return nil, err
	}

	updated, err := s.repo.Save(ctx, req.ApplyTo(*current))
	if err != nil {
		logFailure(err).Int64("genre_id", req.ID).Msg("Update genre failed")
		return nil, err
	}

	dto := catalog.ToGenreDto(*updated)
	return &dto, nil
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrGenreNotFound
	}

	books, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("genre_id", id).Msg("Count genre books failed")
		return err
	}
	if books > 0 {
		log.Warn().Int64("genre_id", id).Int("books", books).Msg("Delete genre refused")
		return model.ErrGenreHasBooks
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		logFailure(err).Int64("genre_id", id).Msg("Delete genre failed")
		return err
	}

	log.Info().Int64("genre_id", id).Msg("Genre deleted")
	return nil
}

func (s *genreService) GetAll(ctx context.Context) ([]catalog.GenreDto, error) {
	genres, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("List genres failed")
		return nil, err
	}
	return catalog.ToGenreDtos(genres), nil
}

func logFailure(err error) *zerolog.Event {
	if errors.Is(err, model.ErrGenreNotFound) || errors.Is(err, catalog.ErrMultipleMatches) {
		return log.Warn().Err(err)
	}
	return log.Error().Err(err)
}
