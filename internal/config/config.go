// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/docforge/internal/types"
)

// Environment variables that override file and default values
const (
	EnvThemeID       = "DOCFORGE_THEME"
	EnvAgencyFile    = "DOCFORGE_AGENCY_FILE"
	EnvFetchTimeout  = "DOCFORGE_FETCH_TIMEOUT"
	EnvMaxConcurrent = "DOCFORGE_MAX_CONCURRENT_FETCHES"
	EnvMaxImageBytes = "DOCFORGE_MAX_IMAGE_BYTES"
	EnvLogLevel      = "DOCFORGE_LOG_LEVEL"
	EnvLogFormat     = "DOCFORGE_LOG_FORMAT"
	EnvPort          = "DOCFORGE_PORT"
)

// Config represents the settings that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	ThemeID    string `json:"theme_id,omitempty"`    // Default theme for requests that name none
	AgencyFile string `json:"agency_file,omitempty"` // JSON agency profile replacing the built-in one

	// Image fetching
	FetchTimeout  string `json:"fetch_timeout,omitempty"` // Per-image timeout, e.g. "8s"
	MaxConcurrent int    `json:"max_concurrent_fetches,omitempty" validate:"min=0,max=64"`
	MaxImageBytes int64  `json:"max_image_bytes,omitempty" validate:"min=0"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json console"`

	Port    int  `json:"port,omitempty" validate:"min=0,max=65535"` // HTTP listen port for serve
	Verbose bool `json:"verbose,omitempty"`                         // Print block and document summaries
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		FetchTimeout:  "8s",
		MaxConcurrent: 4,
		MaxImageBytes: 10 << 20,
		LogLevel:      "info",
		LogFormat:     "console",
		Port:          8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var configValidator = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed %s check (got %v)", jsonName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.FetchTimeout != "" {
		d, err := time.ParseDuration(c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'fetch_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'fetch_timeout' must be positive")
		}
	}

	if c.AgencyFile != "" {
		if _, err := os.Stat(c.AgencyFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: agency file not found: %s", c.AgencyFile)
		}
	}

	return nil
}

func jsonName(field string) string {
	switch field {
	case "MaxConcurrent":
		return "max_concurrent_fetches"
	case "MaxImageBytes":
		return "max_image_bytes"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "Port":
		return "port"
	default:
		return field
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ThemeID == "" {
		result.ThemeID = defaults.ThemeID
	}
	if result.AgencyFile == "" {
		result.AgencyFile = defaults.AgencyFile
	}
	if result.FetchTimeout == "" {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.MaxConcurrent == 0 {
		result.MaxConcurrent = defaults.MaxConcurrent
	}
	if result.MaxImageBytes == 0 {
		result.MaxImageBytes = defaults.MaxImageBytes
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv returns a copy of c with DOCFORGE_* environment variables applied on top.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv() Config {
	result := *c
	result.ThemeID = getEnvString(EnvThemeID, result.ThemeID)
	result.AgencyFile = getEnvString(EnvAgencyFile, result.AgencyFile)
	if d := getEnvDuration(EnvFetchTimeout, 0); d > 0 {
		result.FetchTimeout = d.String()
	}
	result.MaxConcurrent = getEnvInt(EnvMaxConcurrent, result.MaxConcurrent)
	result.MaxImageBytes = int64(getEnvInt(EnvMaxImageBytes, int(result.MaxImageBytes)))
	result.LogLevel = getEnvString(EnvLogLevel, result.LogLevel)
	result.LogFormat = getEnvString(EnvLogFormat, result.LogFormat)
	result.Port = getEnvInt(EnvPort, result.Port)
	return result
}

// FetchTimeoutDuration returns the parsed fetch timeout, or 0 when unset or invalid.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// LoadAgency reads an agency profile from a JSON file and validates it.
func LoadAgency(path string) (*types.AgencyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agency file %s: %w", path, err)
	}

	var agency types.AgencyProfile
	if err := json.Unmarshal(data, &agency); err != nil {
		return nil, fmt.Errorf("failed to parse agency JSON: %w", err)
	}
	if err := configValidator.Struct(&agency); err != nil {
		return nil, fmt.Errorf("invalid agency profile %s: %w", path, err)
	}
	return &agency, nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
