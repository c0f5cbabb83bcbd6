package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrations returns the embedded migration files for a driver.
func Migrations(driver string) (fs.FS, goose.Dialect, error) {
	dir, dialect := "postgres", goose.DialectPostgres
	if driver == DriverSQLite {
		dir, dialect = "sqlite3", goose.DialectSQLite3
	}
	sub, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s migrations: %w", dir, err)
	}
	return sub, dialect, nil
}

// NewMigrator builds a goose provider bound to db.
func NewMigrator(db *DB) (*goose.Provider, error) {
	fsys, dialect, err := Migrations(db.DriverName())
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db.DB.DB, fsys,
		goose.WithDisableGlobalRegistry(true),
		goose.WithLogger(gooseLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *DB) error {
	provider, err := NewMigrator(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info().
			Str("migration", filepath.Base(r.Source.Path)).
			Dur("duration", r.Duration).
			Msg("[MIGRATE] Applied")
	}
	if len(results) == 0 {
		log.Debug().Msg("[MIGRATE] Schema is up to date")
	}
	return nil
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Info().Msg("[MIGRATE] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatal().Msg("[MIGRATE] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
