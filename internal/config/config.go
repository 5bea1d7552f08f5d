package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration sourced from env vars and an optional .env file.
type Config struct {
	BaseURL           string
	SessionID         string
	CSRFToken         string
	SessionCookieName string
	CSRFCookieName    string
	CSRFHeaderName    string
	LogLevel          string
	// RequestTimeout of 0 leaves the transport default (no timeout).
	RequestTimeout time.Duration
}

// Load reads .env files (if any) and then the environment. A missing file is
// skipped; one that exists but does not parse is an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment and validates it.
func FromEnv() (Config, error) {
	cfg := Config{
		BaseURL:           getEnv("AUCTION_BASE_URL", "http://localhost:8000"),
		SessionID:         getEnv("AUCTION_SESSION_ID", ""),
		CSRFToken:         getEnv("AUCTION_CSRF_TOKEN", ""),
		SessionCookieName: getEnv("AUCTION_SESSION_COOKIE", "sessionid"),
		CSRFCookieName:    getEnv("AUCTION_CSRF_COOKIE", "csrftoken"),
		CSRFHeaderName:    getEnv("AUCTION_CSRF_HEADER", "X-CSRFToken"),
		LogLevel:          getEnv("AUCTION_LOG_LEVEL", "info"),
	}

	if raw := getEnv("AUCTION_HTTP_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("config: invalid AUCTION_HTTP_TIMEOUT %q", raw)
		}
		cfg.RequestTimeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base URL %q must be an absolute http(s) URL", c.BaseURL)
	}
	return nil
}

// getEnv returns the trimmed value of key, or defaultValue when unset or blank
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
