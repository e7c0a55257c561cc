package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "marketplace-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "marketplace", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("MARKET_DATABASE_HOST", "db.internal")
	t.Setenv("MARKET_DATABASE_PORT", "5433")
	t.Setenv("MARKET_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires a database password", func(t *testing.T) {
		t.Setenv("MARKET_APP_ENV", "production")
		t.Setenv("MARKET_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("rejects disabled SSL", func(t *testing.T) {
		t.Setenv("MARKET_APP_ENV", "production")
		t.Setenv("MARKET_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestConfig_Validate_PoolSettings(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Env: "development"},
		Database: DatabaseConfig{MaxOpenConns: 5, MaxIdleConns: 10},
	}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "market",
		Password: "p@ss/word",
		DBName:   "marketplace",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword", "password is URL-escaped")
	assert.Contains(t, dsn, "sslmode=disable")
}
