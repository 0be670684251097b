package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/config"
)

// TestLoad_defaults verifies that every optional env var falls back to its
// default when nothing is set.
func TestLoad_defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "AI_SERVICE_URL", "PUBLIC_BASE_URL",
		"LOG_LEVEL", "CORS_ORIGINS", "SHARE_TTL", "SHARE_SWEEP_INTERVAL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.DatabaseURL)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.AIServiceURL)
	require.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, 168*time.Hour, cfg.ShareTTL)
	require.Equal(t, 5*time.Minute, cfg.SweepInterval)
	require.Equal(t, 20.0, cfg.RateLimitRPS)
	require.Equal(t, 40, cfg.RateLimitBurst)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that every value can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/trips")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("AI_SERVICE_URL", "http://ai:9000")
	t.Setenv("PUBLIC_BASE_URL", "https://trips.example.com/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SHARE_TTL", "24h")
	t.Setenv("SHARE_SWEEP_INTERVAL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "postgres://user:pass@db:5432/trips", cfg.DatabaseURL)
	require.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	require.Equal(t, "http://ai:9000", cfg.AIServiceURL)
	require.Equal(t, "https://trips.example.com", cfg.PublicBaseURL, "trailing slash is stripped")
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 24*time.Hour, cfg.ShareTTL)
	require.Equal(t, 30*time.Second, cfg.SweepInterval)
	require.Equal(t, 2.5, cfg.RateLimitRPS)
	require.Equal(t, 5, cfg.RateLimitBurst)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

// TestLoad_badDuration verifies that an unparsable duration is reported with
// the variable name.
func TestLoad_badDuration(t *testing.T) {
	t.Setenv("SHARE_TTL", "seven days")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SHARE_TTL")
}

// TestLoad_badNumber verifies that an unparsable numeric value is reported
// with the variable name.
func TestLoad_badNumber(t *testing.T) {
	t.Setenv("SHARE_TTL", "")
	t.Setenv("RATE_LIMIT_RPS", "lots")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "RATE_LIMIT_RPS")
}
