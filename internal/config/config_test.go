package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.Engine.BaseURL = "https://10.0.0.1"
	cfg.Engine.Username = "tester"
	cfg.Engine.Password = "secret"
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 100, cfg.Run.PageSize)
	assert.Equal(t, 0.01, cfg.Run.Tolerance)
	assert.True(t, cfg.Run.StrictMatch)
	assert.Equal(t, 1541, cfg.Engine.TerminalID)
	assert.Equal(t, "validation_results.xlsx", cfg.Report.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.Engine.BaseURL = "" }},
		{"invalid base url", func(c *Config) { c.Engine.BaseURL = "not a url" }},
		{"missing username", func(c *Config) { c.Engine.Username = "" }},
		{"missing password", func(c *Config) { c.Engine.Password = "" }},
		{"zero page size", func(c *Config) { c.Run.PageSize = 0 }},
		{"zero tolerance", func(c *Config) { c.Run.Tolerance = 0 }},
		{"zero terminal id", func(c *Config) { c.Engine.TerminalID = 0 }},
		{"missing rule prefix", func(c *Config) { c.Engine.RulePrefix = "" }},
		{"bucket without region", func(c *Config) { c.S3.Bucket = "reports" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[engine]
base_url = "https://10.0.0.1"
username = "tester"
password = "secret"

[run]
strict_match = false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://10.0.0.1", cfg.Engine.BaseURL)
	assert.False(t, cfg.Run.StrictMatch)
	// Untouched keys keep their defaults.
	assert.Equal(t, 100, cfg.Run.PageSize)
	assert.Equal(t, 1541, cfg.Engine.TerminalID)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[engine]
base_url = "https://10.0.0.1"
username = "from-file"
password = "from-file"
`), 0o600))

	t.Setenv("PROMOAUDIT_ENGINE_PASSWORD", "from-env")
	t.Setenv("PROMOAUDIT_RUN_PAGE_SIZE", "25")
	t.Setenv("PROMOAUDIT_RUN_TOLERANCE", "0.05")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Engine.Username)
	assert.Equal(t, "from-env", cfg.Engine.Password)
	assert.Equal(t, 25, cfg.Run.PageSize)
	assert.Equal(t, 0.05, cfg.Run.Tolerance)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
