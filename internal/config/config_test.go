package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "http://api.example.test")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENV", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, "http://api.example.test", cfg.APIBaseURL)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "clinic_session", cfg.SessionCookie)
	require.Equal(t, 24*time.Hour, cfg.SessionMaxAge)
	require.Equal(t, 15*time.Second, cfg.APITimeout)
	require.Equal(t, 100.0, cfg.RateLimitRPS)
	require.Equal(t, 200, cfg.RateLimitBurst)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.False(t, cfg.IsProduction())
}

func TestLoadFromEnv_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "http://api.example.test/")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, "http://api.example.test", cfg.APIBaseURL)
}

func TestLoadFromEnv_ProductionRejectsWildcardCORS(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "https://api.example.test")
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), "CORS wildcard")
}

func TestLoadFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "http://api.example.test")
	t.Setenv("API_TIMEOUT", "banana")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	require.Equal(t, "DEBUG", cfg.SlogLevel().String())
	cfg.LogLevel = "warn"
	require.Equal(t, "WARN", cfg.SlogLevel().String())
	cfg.LogLevel = "nonsense"
	require.Equal(t, "INFO", cfg.SlogLevel().String())
}
