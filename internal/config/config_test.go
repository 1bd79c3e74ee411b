package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billy/internal/config"
	"github.com/MrJamesThe3rd/billy/internal/database"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "billy")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "bills")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Billy", cfg.App.Name)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://billy:pw@db:5433/bills?sslmode=disable", cfg.ConnectionString())
	require.NoError(t, cfg.Validate())
}

func TestPool(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "12")
	t.Setenv("DB_MAX_IDLE_CONNS", "4")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1h")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "2m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, database.Pool{
		MaxOpenConns:    12,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
	}, cfg.Pool())
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	cfg, err := config.Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "APP_TIMEZONE")
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLocation(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Location().String())
}
