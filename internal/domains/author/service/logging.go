package service

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/catalog"
)

// logFailure picks the level for err: warn for client faults, error for store faults.
func logFailure(err error) *zerolog.Event {
	if errors.Is(err, model.ErrAuthorNotFound) || errors.Is(err, catalog.ErrMultipleMatches) {
		return log.Warn().Err(err)
	}
	return log.Error().Err(err)
}
