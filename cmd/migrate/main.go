// Command migrate applies, rolls back or reports the schema migrations.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"library-catalog/internal/config"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the library catalog schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: withDB(func(ctx context.Context, db *database.DB, _ *goose.Provider) error {
					return database.Migrate(ctx, db)
				}),
			},
			{
				Name:   "down",
				Usage:  "roll back the latest migration",
				Action: withDB(down),
			},
			{
				Name:   "status",
				Usage:  "list migrations and whether they are applied",
				Action: withDB(status),
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("[MIGRATE] Failed")
	}
}

type dbAction func(ctx context.Context, db *database.DB, provider *goose.Provider) error

// withDB opens the configured store and a migrator around action.
func withDB(action dbAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadDatabaseConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(c.Context, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		provider, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		return action(c.Context, db, provider)
	}
}

func down(ctx context.Context, _ *database.DB, provider *goose.Provider) error {
	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	log.Info().
		Str("migration", filepath.Base(result.Source.Path)).
		Dur("duration", result.Duration).
		Msg("[MIGRATE] Rolled back")
	return nil
}

func status(ctx context.Context, _ *database.DB, provider *goose.Provider) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}
	for _, s := range statuses {
		event := log.Info().
			Int64("version", s.Source.Version).
			Str("migration", filepath.Base(s.Source.Path)).
			Str("state", string(s.State))
		if !s.AppliedAt.IsZero() {
			event = event.Time("applied_at", s.AppliedAt)
		}
		event.Msg("[MIGRATE] Status")
	}
	return nil
}
