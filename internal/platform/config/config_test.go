package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://u:p@localhost/db")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("AUDIT_RETRY_BASE", "250ms")
	t.Setenv("AUDIT_WORKERS", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.AuditRetryBase)
	assert.Equal(t, 4, cfg.AuditWorkers)
}

func TestLoadConfig_InvalidRetryBaseFallsBack(t *testing.T) {
	t.Setenv("AUDIT_RETRY_BASE", "soon")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.AuditRetryBase)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, defaultRateLimit, cfg.RateLimit)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"*"}, splitList("*"))
}
