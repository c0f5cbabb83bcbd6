// Command seed creates the default users and, with -demo, a small catalog.
// It is idempotent for users; demo data is only inserted into an empty catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/container"
	"library-catalog/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	app := &cli.App{
		Name:  "seed",
		Usage: "create the default users and optional demo catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "demo",
				Usage:   "insert demo genres, authors and books into an empty catalog",
				EnvVars: []string{"SEED_DEMO"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.Bool("demo"))
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
	log.Info().Msg("Seed completed")
}

func run(ctx context.Context, demo bool) error {
	c, err := container.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Cleanup()

	if err := database.Migrate(ctx, c.DB); err != nil {
		return err
	}

	if err := seedUsers(ctx, c); err != nil {
		return err
	}
	if demo {
		return seedCatalog(ctx, c)
	}
	return nil
}

func seedUsers(ctx context.Context, c *container.Container) error {
	users := []struct {
		login, passwordEnv string
		roles              []string
	}{
		{"admin", "SEED_ADMIN_PASSWORD", []string{model.RoleAdmin, model.RoleReader}},
		{"reader", "SEED_READER_PASSWORD", []string{model.RoleReader}},
	}

	for _, u := range users {
		pw := os.Getenv(u.passwordEnv)
		if pw == "" {
			if c.Config.IsProduction() {
				return fmt.Errorf("%s must be set in production", u.passwordEnv)
			}
			pw = u.login
		}
		if _, err := c.AuthService.EnsureUser(ctx, u.login, pw, u.roles...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.login, err)
		}
	}
	return nil
}
