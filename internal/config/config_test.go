package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paynlp/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.DB.Enabled)
	assert.Equal(t, 1024, cfg.DB.LogQueueSize)
	assert.Equal(t, 2, cfg.DB.LogWriters)
	assert.Equal(t, 5*time.Second, cfg.DB.LogWriteTimeout)
	assert.Equal(t, "corenlp", cfg.Annotator.Primary.Provider)
	assert.Equal(t, "http://localhost:9000", cfg.Annotator.Primary.BaseURL)
	assert.Equal(t, "simple", cfg.Annotator.Secondary.Provider)
	assert.Equal(t, 10*time.Minute, cfg.Annotator.CacheTTL)
	assert.Equal(t, []string{"to", "a", "para"}, cfg.Extract.Prepositions)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, int64(3600), cfg.S3.PresignExpiry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PAYNLP_SERVER_PORT", ":9999")
	t.Setenv("PAYNLP_DB_ENABLED", "true")
	t.Setenv("PAYNLP_DB_HOST", "db.internal")
	t.Setenv("PAYNLP_DB_LOG_WRITERS", "8")
	t.Setenv("PAYNLP_ANNOTATOR_PRIMARY_BASE_URL", "http://corenlp:9000")
	t.Setenv("PAYNLP_ANNOTATOR_CACHE_TTL", "30s")
	t.Setenv("PAYNLP_EXTRACT_PREPOSITIONS", " to , for ,")
	t.Setenv("PAYNLP_RATE_LIMIT_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("PAYNLP_LOG_FORMAT", "json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.True(t, cfg.DB.Enabled)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 8, cfg.DB.LogWriters)
	assert.Equal(t, "http://corenlp:9000", cfg.Annotator.Primary.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Annotator.CacheTTL)
	assert.Equal(t, []string{"to", "for"}, cfg.Extract.Prepositions)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "5000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("PAYNLP_SERVER_PORT", ":7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@localhost:5432/n?sslmode=disable", db.DSN())
}

func TestAnnotatorConfig_SecondaryConfig(t *testing.T) {
	cfg := config.AnnotatorConfig{Primary: config.AnnotatorProviderConfig{Provider: "corenlp"}}
	assert.Nil(t, cfg.SecondaryConfig())

	cfg.Secondary.Provider = "corenlp"
	assert.Nil(t, cfg.SecondaryConfig(), "same provider twice is not a fallback")

	cfg.Secondary.Provider = "simple"
	secondary := cfg.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "simple", secondary.Provider)
	assert.Equal(t, "corenlp", cfg.PrimaryConfig().Provider)
}
