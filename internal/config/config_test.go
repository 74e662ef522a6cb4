package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	tmpFile := writeFile(t, "config.json", `{
		"theme_id": "classic",
		"fetch_timeout": "3s",
		"max_concurrent_fetches": 2,
		"log_level": "debug",
		"verbose": true
	}`)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "classic", cfg.ThemeID)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeoutDuration())
	assert.Equal(t, 2, cfg.MaxConcurrent)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "negative concurrency", cfg: Config{MaxConcurrent: -1}, wantErr: "max_concurrent_fetches"},
		{name: "bad log level", cfg: Config{LogLevel: "loud"}, wantErr: "log_level"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "log_format"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "bad timeout", cfg: Config{FetchTimeout: "soon"}, wantErr: "fetch_timeout"},
		{name: "zero timeout", cfg: Config{FetchTimeout: "0s"}, wantErr: "fetch_timeout"},
		{name: "missing agency file", cfg: Config{AgencyFile: "/nonexistent/agency.json"}, wantErr: "agency file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		ThemeID:       "bold",
		MaxConcurrent: 8,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "bold", merged.ThemeID)
	assert.Equal(t, 8, merged.MaxConcurrent)

	// Default values should fill in empty fields
	assert.Equal(t, "8s", merged.FetchTimeout)
	assert.Equal(t, int64(10<<20), merged.MaxImageBytes)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 8080, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{ThemeID: "minimal"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "minimal", merged.ThemeID)
	assert.Zero(t, merged.Port)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvThemeID, "technical")
	t.Setenv(EnvFetchTimeout, "2s")
	t.Setenv(EnvMaxConcurrent, "not-a-number")
	t.Setenv(EnvPort, "9090")

	base := Defaults()
	cfg := base.ApplyEnv()

	assert.Equal(t, "technical", cfg.ThemeID)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeoutDuration())
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadAgency(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "agency.json", `{"name":"Studio","email":"hi@studio.dev","website":"https://studio.dev"}`)
		agency, err := LoadAgency(path)
		require.NoError(t, err)
		assert.Equal(t, "Studio", agency.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		path := writeFile(t, "agency.json", `{"email":"hi@studio.dev"}`)
		_, err := LoadAgency(path)
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		path := writeFile(t, "agency.json", `name: Studio`)
		_, err := LoadAgency(path)
		assert.ErrorContains(t, err, "failed to parse agency JSON")
	})
}
