package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret       string
	JWTAlgorithm    string
	TokenTTLMinutes int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	SummarySchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	// Optional .env file for local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBConn:   getEnv("DATABASE_URL", "host=localhost port=5432 user=selfviz password=selfviz dbname=selfviz sslmode=disable"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		JWTSecret:    getEnv("SECRET_KEY", ""),
		JWTAlgorithm: getEnv("ALGORITHM", "HS256"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@selfviz.local"),

		SummarySchedule: getEnv("SUMMARY_SCHEDULE", "0 0 * * *"),
	}

	ttl, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "1440"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
	}
	cfg.TokenTTLMinutes = ttl

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	return cfg, nil
}

// SMTPConfigured reports whether outgoing email is set up.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
