package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// AI coach (key optional, can be set at runtime)
	GeminiAPIKey   string
	GeminiModel    string
	CoachTimeout   time.Duration
	CoachRateLimit int // requests per minute, 0 disables

	// Training
	ShoeLimit     int
	DefaultLocale string

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool

	// Backups (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services
	S3PresignExpiry time.Duration // Expiry for backup download links
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "RunPro"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/runpro.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"),

		// AI coach
		GeminiAPIKey:   envString("GEMINI_API_KEY", ""),
		GeminiModel:    envString("GEMINI_MODEL", "gemini-2.5-flash"),
		CoachTimeout:   envDuration("COACH_TIMEOUT", 30*time.Second),
		CoachRateLimit: envInt("COACH_RATE_LIMIT", 10),

		// Training
		ShoeLimit:     envInt("SHOE_LIMIT", 5),
		DefaultLocale: envString("DEFAULT_LOCALE", "ko"),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),

		// Backups
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses to start a production deployment on the
// development database defaults.
func validateProduction(cfg *Config) {
	if cfg.DBDriver == "sqlite" && os.Getenv("DB_CONNECTION") == "" {
		slog.Error("production deployment requires DB_CONNECTION",
			"hint", "set APP_ENV=development to use the local sqlite file")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) BackupsEnabled() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets and credentials are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:        c.AppName,
		AppEnv:         c.AppEnv,
		Port:           c.Port,
		GeminiModel:    c.GeminiModel,
		CoachTimeout:   c.CoachTimeout,
		CoachRateLimit: c.CoachRateLimit,
		ShoeLimit:      c.ShoeLimit,
		DefaultLocale:  c.DefaultLocale,
		MetricsEnabled: c.MetricsEnabled,
		S3Bucket:       c.S3Bucket,
	}
}
