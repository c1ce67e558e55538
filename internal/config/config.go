package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port int // HTTP server port

	// Upstream intel API configuration
	IntelBaseURL   string        // Base URL of the threat-intel API
	IntelAPIKey    string        // API key, required for every upstream call
	RequestTimeout time.Duration // Per upstream request timeout

	// Analysis polling configuration
	PollInterval time.Duration // Delay between job status checks
	PollTimeout  time.Duration // Overall budget for waiting on one analysis

	// Result cache configuration
	CacheTTL        time.Duration // How long a cached summary stays valid
	CacheMaxEntries int           // Entry count that triggers eviction
}

// ErrMissingAPIKey is returned by Load when no upstream credential is set.
// The service cannot do anything useful without one, so startup should fail.
var ErrMissingAPIKey = errors.New("INTEL_API_KEY is required")

// Load reads configuration from environment variables
// and returns a Config struct with defaults applied
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		IntelBaseURL:    getEnv("INTEL_BASE_URL", "https://www.virustotal.com/api/v3"),
		IntelAPIKey:     getEnv("INTEL_API_KEY", ""),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 10000*time.Millisecond),
		PollInterval:    getEnvAsDuration("POLL_INTERVAL", 3000*time.Millisecond),
		PollTimeout:     getEnvAsDuration("POLL_TIMEOUT", 180000*time.Millisecond),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		CacheMaxEntries: getEnvAsInt("CACHE_MAX_ENTRIES", 1000),
	}

	if cfg.IntelAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer
// If the variable doesn't exist or can't be parsed, returns the default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration reads an environment variable as milliseconds and converts to time.Duration
// If the variable doesn't exist or can't be parsed, returns the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	// Parse as milliseconds
	ms, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return time.Duration(ms) * time.Millisecond
}
