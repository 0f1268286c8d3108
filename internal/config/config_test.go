package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SHOE_LIMIT", "")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5, cfg.ShoeLimit)
	assert.Equal(t, "ko", cfg.DefaultLocale)
	assert.Equal(t, 30*time.Second, cfg.CoachTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.BackupsEnabled())
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
}

func TestEnvHelpersFallBackOnInvalidValues(t *testing.T) {
	t.Setenv("TEST_INT", "five")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 3, envInt("TEST_INT", 3))
	assert.Equal(t, time.Minute, envDuration("TEST_DURATION", time.Minute))
	assert.True(t, envBool("TEST_BOOL", true))
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:      "RunPro",
		GeminiAPIKey: "key",
		S3SecretKey:  "s3",
		SentryDSN:    "dsn",
		ShoeLimit:    5,
	}

	safe := cfg.Sanitized()
	assert.Equal(t, "RunPro", safe.AppName)
	assert.Equal(t, 5, safe.ShoeLimit)
	assert.Empty(t, safe.GeminiAPIKey)
	assert.Empty(t, safe.S3SecretKey)
	assert.Empty(t, safe.SentryDSN)
}
