package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, DefaultVerifyURL, cfg.HCaptchaVerifyURL)
	assert.Equal(t, "", cfg.UploadDir)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, time.Hour, cfg.RateLimitWindow)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123456789")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("UPLOAD_DIR", "/var/lib/vipmail/uploads")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(-100123456789), cfg.TelegramChatID)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, "/var/lib/vipmail/uploads", cfg.UploadDir)
	assert.Equal(t, 30*time.Minute, cfg.RateLimitWindow)
}

func TestGetIntEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("UPLOAD_MAX_RETAINED", "lots")
	assert.Equal(t, 100, Load().MaxRetained)
}
