package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidBaseURL is returned when the configured API base URL is missing or
// unusable. Network calls must never be attempted with an invalid base URL.
var ErrInvalidBaseURL = errors.New("invalid API base URL")

// Known deployment environments, mirroring the mini-program release channels.
const (
	EnvDevelop = "develop"
	EnvTrial   = "trial"
	EnvRelease = "release"
)

// defaultBaseURLs maps each environment to its backend entry point.
var defaultBaseURLs = map[string]string{
	EnvDevelop: "http://localhost:8080/api",
	EnvTrial:   "https://yuyingbao.yideng.ltd/api",
	EnvRelease: "https://yuyingbao.yideng.ltd/api",
}

// Config holds application configuration
type Config struct {
	Env          string
	APIBaseURL   string
	Debug        bool
	HTTPTimeout  time.Duration
	StorePath    string // SQLite path for the local store
	DatabaseType string // sqlite (default), postgres or mysql
	DatabaseURL  string // connection URL for postgres/mysql stores

	// Bounded retry policy for the family-member list refresh.
	MemberRetryCount int
	MemberRetryDelay time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// A missing .env file is the normal case, not an error.
	_ = godotenv.Load()

	env := getEnv("YUYINGBAO_ENV", EnvDevelop)

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURLs[env]
	}
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:              env,
		APIBaseURL:       baseURL,
		Debug:            env != EnvRelease,
		HTTPTimeout:      15 * time.Second,
		StorePath:        getEnv("STORE_PATH", "./yuyingbao.db"),
		DatabaseType:     getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MemberRetryCount: 3,
		MemberRetryDelay: 1 * time.Second,
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg, nil
}

// validateBaseURL rejects empty or non-HTTP base URLs before any request is made
func validateBaseURL(raw string) error {
	if raw == "" || raw == "null" {
		return fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
