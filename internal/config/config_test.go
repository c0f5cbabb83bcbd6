package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "JWT_SECRET", "JWT_ACCESS_EXPIRY",
		"DB_DRIVER", "DB_DSN", "DB_PASSWORD", "DB_PORT", "DB_AUTO_MIGRATE",
		"REDIS_ENABLED", "LOGIN_MAX_ATTEMPTS", "LOGIN_LOCKOUT_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, database.DriverPgx, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 5, cfg.Security.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Security.LockoutDuration)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_DSN", "file:catalog.db")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_LOCKOUT_MINUTES", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:catalog.db", cfg.Database.DSN)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Security.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.Security.LockoutDuration)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"non-numeric port", "DB_PORT", "five"},
		{"bad bool", "DB_AUTO_MIGRATE", "maybe"},
		{"zero attempts", "LOGIN_MAX_ATTEMPTS", "0"},
		{"negative token expiry", "JWT_ACCESS_EXPIRY", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_Production(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "pw")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_ProductionSQLiteNeedsNoPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite3")

	_, err := Load()
	assert.NoError(t, err)
}
