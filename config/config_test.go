package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_PASSWORD", "")
	path := writeConfig(t, `
auth:
  jwt_secret: s3cret
database:
  host: db
  port: 5432
  user: u
  password: p
  name: airport
  ssl_mode: disable
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 30*time.Second, cfg.Booking.GuardTTL())
	assert.Equal(t, time.Duration(0), cfg.Booking.CacheTTL())
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration())
	assert.Equal(t, "./media", cfg.Media.Dir)
	assert.Equal(t, int64(5*1024*1024), cfg.Media.MaxSizeBytes)
	assert.Contains(t, cfg.Media.AllowedTypes, "image/png")
	assert.Equal(t, time.Minute, cfg.RateLimit.WindowDuration())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=airport sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_PASSWORD", "db-env")
	path := writeConfig(t, "auth:\n  jwt_secret: from-file\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "db-env", cfg.Database.Password)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "http: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadConfig(writeConfig(t, "http:\n  address: \":9000\"\n"))
	assert.EqualError(t, err, "auth.jwt_secret is required")
}

func TestValidate_PageSizeCappedByMax(t *testing.T) {
	cfg := Config{
		Auth:       AuthConfig{JWTSecret: "x"},
		Pagination: PaginationConfig{PageSize: 500, MaxPageSize: 50},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.Pagination.PageSize)
}
