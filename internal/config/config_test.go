package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.False(t, cfg.Insight.Enabled())
	assert.NotEmpty(t, cfg.Analysis.GenderColumns)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BIASLENS_SERVER_PORT", "9090")
	t.Setenv("BIASLENS_INSIGHT_ENDPOINT", "http://insight.local/generate")
	t.Setenv("BIASLENS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://insight.local/generate", cfg.Insight.Endpoint)
	assert.True(t, cfg.Insight.Enabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "bad log output", mutate: func(c *Config) { c.Logging.Output = "syslog" }},
		{name: "zero upload cap", mutate: func(c *Config) { c.Upload.MaxBytes = 0 }},
		{name: "no origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
