// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDBPath, EnvRetentionDays, EnvRecallDays, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-config-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/tmp/xdg-config-test", "claudedirector", "strategic_memory.db"), cfg.DBPath)
	assert.Equal(t, 365, cfg.RetentionDays)
	assert.Equal(t, 90, cfg.RecallDays)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBPath, "/var/lib/director/memory.db")
	t.Setenv(EnvRetentionDays, "180")
	t.Setenv(EnvRecallDays, "30")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/director/memory.db", cfg.DBPath)
	assert.Equal(t, 180, cfg.RetentionDays)
	assert.Equal(t, 30, cfg.RecallDays)
	assert.Equal(t, "debug", cfg.LogLevel)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero retention", EnvRetentionDays, "0"},
		{"negative recall", EnvRecallDays, "-5"},
		{"non-numeric retention", EnvRetentionDays, "forever"},
		{"unknown log level", EnvLogLevel, "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{RetentionDays: 365, RecallDays: 90, LogLevel: "warn"}
	require.NoError(t, cfg.Validate())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)

	cfg.RecallDays = 0
	assert.Error(t, cfg.Validate())

	cfg.RecallDays = 90
	cfg.LogLevel = "verbose"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLogLevel)
}
