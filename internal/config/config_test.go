package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "psiklinik-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, devJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, "Europe/Istanbul", cfg.App.Location.String())
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.False(t, cfg.Audit.Database)
	assert.True(t, cfg.Seed.DemoData)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("JWT_SECRET", "short-but-fine-outside-production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SWEEP_INTERVAL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("SEED_DEMO_USERS", "true")
	t.Setenv("AUDIT_DB_ENABLED", "true")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
	assert.Contains(t, err.Error(), "SEED_DEMO_USERS")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_SSLMODE=disable")
}

func TestValidateRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestValidateBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_BCRYPT_COST", "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_BCRYPT_COST")
}
