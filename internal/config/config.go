package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Ledger API
	APIBaseURL string
	APITimeout time.Duration

	// Backend selection
	DataBackend string

	// Export
	ExportPath string

	// Session
	SessionSecret string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL: getEnv("LEDGER_API_BASE_URL", ""),
		APITimeout: getEnvDuration("LEDGER_API_TIMEOUT", 30*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "remote"),

		ExportPath: getEnv("EXPORT_PATH", "."),

		SessionSecret: getEnv("SESSION_SECRET", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"remote", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate API base URL if backend is remote
	if c.DataBackend == "remote" {
		if c.APIBaseURL == "" {
			errors = append(errors, "ledger API base URL is required when using remote backend")
		} else if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid ledger API base URL '%s': %v", c.APIBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid ledger API base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	// Validate API timeout
	if c.APITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 1 second", c.APITimeout))
	} else if c.APITimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 10 minutes", c.APITimeout))
	}

	// Validate export path
	if c.ExportPath == "" {
		errors = append(errors, "export path cannot be empty")
	} else {
		dir := filepath.Clean(c.ExportPath)
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("export path '%s' is not a directory", c.ExportPath))
		}
	}

	// Validate session secret
	if c.SessionSecret != "" && len(c.SessionSecret) < 16 {
		errors = append(errors, "session secret must be at least 16 characters when provided")
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
