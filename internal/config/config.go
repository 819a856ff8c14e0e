// Package config provides application configuration from the
// environment, with optional .env loading.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	DBPath      string
	CORSOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	Session interview.Config
	LLM     llm.Config
	SMTP    SMTPConfig
}

// SMTPConfig configures outbound feedback-report email. Delivery is
// disabled when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether email delivery is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      os.Getenv("PREPDESK_DB"),
		CORSOrigins: splitList(getEnv("BACKEND_CORS_ORIGINS", "*")),
		JWTSecret:   getEnv("SECRET_KEY", ""),
		TokenTTL:    time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24)) * time.Minute,
		Session: interview.Config{
			MinQuestions:   getEnvInt("MIN_QUESTIONS_PER_SESSION", 5),
			MaxQuestions:   getEnvInt("MAX_QUESTIONS_PER_SESSION", 10),
			GeneratedRatio: getEnvFloat("LLM_QUESTION_RATIO", 0.4),
		},
		LLM: llm.ConfigFromEnv(),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_SERVER", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.Session.MinQuestions < 1 {
		return fmt.Errorf("MIN_QUESTIONS_PER_SESSION must be >= 1")
	}
	if c.Session.MaxQuestions < c.Session.MinQuestions {
		return fmt.Errorf("MAX_QUESTIONS_PER_SESSION must be >= MIN_QUESTIONS_PER_SESSION")
	}
	if c.Session.GeneratedRatio < 0 || c.Session.GeneratedRatio > 1 {
		return fmt.Errorf("LLM_QUESTION_RATIO must be in [0, 1]")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
