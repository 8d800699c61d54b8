package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxFileSize caps the screenshot upload at 5 MiB.
const DefaultMaxFileSize = 5 * 1024 * 1024

// DefaultVerifyURL is the hCaptcha siteverify endpoint.
const DefaultVerifyURL = "https://api.hcaptcha.com/siteverify"

// Config holds every process-wide setting. It is built once at startup and
// handed to the handler and relay clients; nothing reads the environment
// after Load returns.
type Config struct {
	Port string
	Env  string

	HCaptchaSecret    string
	HCaptchaVerifyURL string

	TelegramBotToken string
	TelegramChatID   int64

	MaxFileSize int64

	// UploadDir enables the retention policy: screenshots that failed to
	// relay are kept there under generated names. Empty means discard.
	UploadDir   string
	MaxRetained int

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load builds the immutable configuration from the environment.
func Load() Config {
	return Config{
		Port: GetEnv("PORT", "3000"),
		Env:  GetEnv("ENV", "development"),

		HCaptchaSecret:    GetEnv("HCAPTCHA_SECRET", ""),
		HCaptchaVerifyURL: GetEnv("HCAPTCHA_VERIFY_URL", DefaultVerifyURL),

		TelegramBotToken: GetEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   GetInt64Env("TELEGRAM_CHAT_ID", 0),

		MaxFileSize: GetInt64Env("MAX_FILE_SIZE", DefaultMaxFileSize),
		UploadDir:   GetEnv("UPLOAD_DIR", ""),
		MaxRetained: GetIntEnv("UPLOAD_MAX_RETAINED", 100),

		RateLimitMax:    GetIntEnv("RATE_LIMIT_MAX", 5),
		RateLimitWindow: GetDurationEnv("RATE_LIMIT_WINDOW", time.Hour),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetInt64Env returns an int64 environment variable or a default value.
func GetInt64Env(key string, defaultVal int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
