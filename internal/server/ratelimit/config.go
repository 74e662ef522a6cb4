package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Limit   int           // Requests allowed per Window
	Window  time.Duration // Refill period for Limit tokens
	Burst   int           // Bucket capacity; defaults to Limit if 0
	IdleTTL time.Duration // How long an idle client's bucket is kept
	Exempt  map[string]bool
}

// DefaultConfig returns the built-in limits for document generation.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Limit:   30,
		Window:  time.Minute,
		Burst:   5,
		IdleTTL: time.Hour,
		Exempt:  map[string]bool{},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	def := DefaultConfig()
	enabled := getEnvBool("DOCFORGE_RATE_LIMIT_ENABLED", def.Enabled)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled: true,
		Limit:   getEnvInt("DOCFORGE_RATE_LIMIT", def.Limit),
		Window:  getEnvDuration("DOCFORGE_RATE_LIMIT_WINDOW", def.Window),
		Burst:   getEnvInt("DOCFORGE_RATE_LIMIT_BURST", def.Burst),
		IdleTTL: def.IdleTTL,
		Exempt:  parseIPList(os.Getenv("DOCFORGE_RATE_LIMIT_EXEMPT")),
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
