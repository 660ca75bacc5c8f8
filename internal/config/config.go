package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"ghfavorites/internal/validation"
)

// Snapshot backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Defaults shared by the loader and tests.
const (
	DefaultLookupBaseURL  = "https://api.github.com/users/"
	DefaultStaleThreshold = 3000 * time.Millisecond
	DefaultLookupTimeout  = 10 * time.Second
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Lookup source
	LookupBaseURL string
	LookupToken   string // Optional bearer token for higher API quotas
	LookupTimeout time.Duration

	// Cache
	StaleThreshold time.Duration

	// Snapshot persistence
	SnapshotBackend string // "file", "redis" or "postgres"
	SnapshotPath    string
	SnapshotKey     string
	RedisURL        string
	DatabaseURL     string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Features
	MetricsEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:3000"),
		LookupBaseURL:   getEnv("LOOKUP_BASE_URL", DefaultLookupBaseURL),
		LookupToken:     getEnv("LOOKUP_TOKEN", ""),
		LookupTimeout:   getDuration("LOOKUP_TIMEOUT", DefaultLookupTimeout),
		StaleThreshold:  getDuration("STALE_THRESHOLD", DefaultStaleThreshold),
		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", BackendFile),
		SnapshotPath:    getEnv("SNAPSHOT_PATH", "favorites.json"),
		SnapshotKey:     getEnv("SNAPSHOT_KEY", "favorites"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/ghfavorites?sslmode=disable"),
		CORSOrigins:     getEnv("CORS_ORIGINS", ""),
		MetricsEnabled:  getEnv("METRICS_ENABLED", "true") != "false",
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.SnapshotBackend {
	case BackendFile, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.SnapshotBackend)
	}
	if ok, msg := validation.ValidateURL(c.LookupBaseURL); !ok {
		return fmt.Errorf("invalid LOOKUP_BASE_URL: %s", msg)
	}
	if c.StaleThreshold <= 0 {
		return fmt.Errorf("STALE_THRESHOLD must be positive, got %v", c.StaleThreshold)
	}
	if c.SnapshotBackend == BackendFile && c.SnapshotPath == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required for the file backend")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration accepts a Go duration ("3s") or a bare integer of milliseconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using %v", key, value, fallback)
		return fallback
	}
	return d
}

// ParseDuration parses a Go duration string or an integer number of milliseconds.
func ParseDuration(value string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(value)
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
