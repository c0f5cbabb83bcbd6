package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Supported driver names. They double as sqlx bind-type keys.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// DB is the sqlx handle shared by every gateway.
// With the pgx driver it sits on top of the PostgresDB pool.
type DB struct {
	*sqlx.DB
	postgres *PostgresDB
}

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg *DBConfig) (*DB, error) {
	switch cfg.Driver {
	case DriverPgx, "":
		pg := NewPostgresDB(cfg)
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		return &DB{DB: sqlx.NewDb(stdlib.OpenDBFromPool(pg.Pool), DriverPgx), postgres: pg}, nil

	case DriverPostgres:
		db, err := sqlx.Open(DriverPostgres, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		db.SetMaxOpenConns(int(cfg.MaxConns))
		db.SetMaxIdleConns(int(cfg.MinConns))
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

		if err := connectWithRetry(ctx, cfg, db.PingContext); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connection failed: %w", err)
		}
		return &DB{DB: db}, nil

	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file:library.db?_foreign_keys=on"
		}
		return OpenSQLite(ctx, dsn)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a sqlite3 database on a single connection, so in-memory
// databases stay alive and writes are serialized.
func OpenSQLite(ctx context.Context, dsn string) (*DB, error) {
	db, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite3: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite3 ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &DB{DB: db}, nil
}

// HealthCheck pings the store.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.postgres != nil {
		return db.postgres.HealthCheck(ctx)
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close releases the sqlx handle and, for pgx, the underlying pool.
func (db *DB) Close() error {
	err := db.DB.Close()
	if db.postgres != nil {
		db.postgres.Close()
	}
	log.Info().Str("driver", db.DriverName()).Msg("[DATABASE] Connection closed")
	return err
}
