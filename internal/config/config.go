package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the service reads from the environment. Secrets
// and the store DSN are injected here once at boot instead of being read
// ad hoc across the codebase.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   []byte
	CORSOrigin  string
	Env         string

	AuthRateMax int
	APIRateMax  int
	RateWindow  time.Duration
	SessionTTL  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "7777"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSOrigin:  getenv("CORS_ORIGIN", "http://localhost:5173"),
		Env:         strings.ToLower(getenv("ENV", "development")),
		AuthRateMax: getenvInt("RATE_LIMIT_AUTH_MAX", 50),
		APIRateMax:  getenvInt("RATE_LIMIT_API_MAX", 100),
		RateWindow:  time.Duration(getenvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		SessionTTL:  time.Duration(getenvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

// SecureCookies reports whether session cookies should carry the Secure
// attribute. Only enabled in production so local HTTP development works.
func (c *Config) SecureCookies() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
