// ABOUTME: Centralized configuration for the strategic memory tools
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

// Environment variables read by Load
const (
	EnvDBPath        = "CLAUDEDIRECTOR_DB_PATH"
	EnvRetentionDays = "CLAUDEDIRECTOR_RETENTION_DAYS"
	EnvRecallDays    = "CLAUDEDIRECTOR_RECALL_DAYS"
	EnvLogLevel      = "CLAUDEDIRECTOR_LOG_LEVEL"
)

// Config holds all configuration for strategic memory
type Config struct {
	// Storage settings
	DBPath string

	// Window settings, in days
	RetentionDays int
	RecallDays    int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv(EnvDBPath, sqlite.DefaultDBPath()),
		RetentionDays: getEnvInt(EnvRetentionDays, sqlite.DefaultRetentionDays),
		RecallDays:    getEnvInt(EnvRecallDays, sqlite.DefaultRecallDays),
		LogLevel:      strings.ToLower(getEnv(EnvLogLevel, "info")),
	}

	return cfg, cfg.Validate()
}

// Validate checks that day counts are positive and the log level is known
func (c *Config) Validate() error {
	if c.RetentionDays <= 0 {
		return fmt.Errorf("%s must be positive, got %d", EnvRetentionDays, c.RetentionDays)
	}
	if c.RecallDays <= 0 {
		return fmt.Errorf("%s must be positive, got %d", EnvRecallDays, c.RecallDays)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return nil
}

// Level parses LogLevel into a charm log level
func (c *Config) Level() (log.Level, error) {
	switch c.LogLevel {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", c.LogLevel)
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvInt returns defaultVal when key is unset. A value that is set but not
// an integer is returned as 0 so Validate rejects it instead of hiding it.
func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return i
}
