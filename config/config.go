package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

// DefaultSeriesPriority is the order in which scanned fields are tried
// against the reference dataset when SERIES_PRIORITY is not set.
var DefaultSeriesPriority = []string{
	"SN-1", "SN1", "SN", "S1", "SERIE PRINCIPAL",
	"SN-2", "SN2", "S2",
	"SN-3", "SN3", "S3",
}

type Config struct {
	MainRoutes    string
	AppPort       string
	JWTSecret     string
	JWTExpiration int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	LogLevel  string
	LogFormat string

	ReferenceBatchSize int
	SeriesPriority     []string
	SnowflakeNode      int64
	StatsCacheTTL      time.Duration

	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	SMTPFrom         string
	DispatchNotifyTo []string

	AllowedOrigins map[string]bool
}

// LoadConfig membaca file .env (jika ada) lalu environment variable.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using system environment variables")
	}

	return &Config{
		MainRoutes:    getEnv("MAIN_ROUTES", "/api/v1"),
		AppPort:       getEnv("APP_PORT", "9000"),
		JWTSecret:     getEnv("JWT_SECRET", "dispatch_tracker_secret"),
		JWTExpiration: getEnvAsInt("JWT_EXPIRATION", 86400),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "dispatch_tracker"),
		DBPath:     getEnv("DB_PATH", "dispatch.db"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ReferenceBatchSize: getEnvAsInt("REFERENCE_BATCH_SIZE", 1000),
		SeriesPriority:     getEnvAsList("SERIES_PRIORITY", DefaultSeriesPriority),
		SnowflakeNode:      int64(getEnvAsInt("SNOWFLAKE_NODE", 1)),
		StatsCacheTTL:      getEnvAsDuration("STATS_CACHE_TTL", 30*time.Second),

		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvAsInt("SMTP_PORT", 465),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		DispatchNotifyTo: getEnvAsList("DISPATCH_NOTIFY_TO", nil),

		AllowedOrigins: loadAllowedOrigins(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList memecah nilai dipisah koma, membuang entri kosong.
func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func loadAllowedOrigins() map[string]bool {
	origins := getEnvAsList("ALLOWED_ORIGINS", nil)
	if len(origins) == 0 {
		return map[string]bool{"http://127.0.0.1:3000": true}
	}
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return allowed
}

func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && len(c.DispatchNotifyTo) > 0
}

func SetupCORS(app *fiber.App, cfg *Config) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if cfg.AllowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
