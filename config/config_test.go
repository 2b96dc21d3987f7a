package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERIES_PRIORITY", "")
	t.Setenv("REFERENCE_BATCH_SIZE", "")

	cfg := LoadConfig()

	assert.Equal(t, "/api/v1", cfg.MainRoutes)
	assert.Equal(t, 1000, cfg.ReferenceBatchSize)
	assert.Equal(t, DefaultSeriesPriority, cfg.SeriesPriority)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REFERENCE_BATCH_SIZE", "250")
	t.Setenv("SERIES_PRIORITY", " IMEI , ,SN-2")
	t.Setenv("STATS_CACHE_TTL", "5s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("DISPATCH_NOTIFY_TO", "a@example.com,b@example.com")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 250, cfg.ReferenceBatchSize)
	assert.Equal(t, []string{"IMEI", "SN-2"}, cfg.SeriesPriority)
	assert.Equal(t, 5*time.Second, cfg.StatsCacheTTL)
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.AllowedOrigins["http://b.test"])
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	assert.Equal(t, 465, getEnvAsInt("SMTP_PORT", 465))
}
