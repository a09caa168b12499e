// Package config defines the configuration for the discount-rule validation
// run and provides loading and validation helpers.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by PROMOAUDIT_* environment
// variables.
type Config struct {
	Engine   EngineConfig `toml:"engine"`
	Run      RunConfig    `toml:"run"`
	Report   ReportConfig `toml:"report"`
	S3       S3Config     `toml:"s3"`
	Notify   NotifyConfig `toml:"notify"`
	LogLevel string       `toml:"log_level"`
}

// EngineConfig holds the remote discount engine endpoint and credentials.
type EngineConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`

	// UserAgent is sent on every request. The engine front end expects a
	// browser-like agent.
	UserAgent string `toml:"user_agent"`

	// TerminalID is the point-of-sale terminal the tester evaluates against.
	TerminalID int `toml:"terminal_id"`

	// InsecureSkipVerify disables TLS verification for engines behind
	// self-signed certificates.
	InsecureSkipVerify bool `toml:"insecure_skip_verify"`

	// RulePrefix is the display-name prefix that marks catalog rules managed
	// by this validation flow ("<prefix>_<productID>[_suffix]").
	RulePrefix string `toml:"rule_prefix"`
}

// RunConfig holds the validation run parameters.
type RunConfig struct {
	// PageSize is the catalog pagination size.
	PageSize int `toml:"page_size"`

	// Tolerance is the maximum allowed |expected - actual| for OK.
	Tolerance float64 `toml:"tolerance"`

	// StrictMatch gates scenarios on the rule matcher: scenarios whose
	// quantity no catalog rule covers are reported NOT_FOUND. When false the
	// matcher result is ignored and every scenario is compared numerically.
	StrictMatch bool `toml:"strict_match"`
}

// ReportConfig holds output artifact parameters.
type ReportConfig struct {
	OutputPath string `toml:"output_path"`
}

// S3Config holds optional S3-compatible storage parameters for report
// archiving. Archiving is enabled when Bucket is non-empty.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// NotifyConfig holds optional notification channels. A channel is enabled
// when its credentials are non-empty.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// Defaults returns the built-in configuration a TOML file is merged over.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
			TerminalID: 1541,
			RulePrefix: "Ахтирка",
		},
		Run: RunConfig{
			PageSize:    100,
			Tolerance:   0.01,
			StrictMatch: true,
		},
		Report: ReportConfig{
			OutputPath: "validation_results.xlsx",
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for the settings correctness depends on.
func (c *Config) Validate() error {
	var problems []string

	if c.Engine.BaseURL == "" {
		problems = append(problems, "engine.base_url is required")
	} else if u, err := url.Parse(c.Engine.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("engine.base_url %q is not a valid URL", c.Engine.BaseURL))
	}
	if c.Engine.Username == "" {
		problems = append(problems, "engine.username is required")
	}
	if c.Engine.Password == "" {
		problems = append(problems, "engine.password is required")
	}
	if c.Engine.TerminalID <= 0 {
		problems = append(problems, "engine.terminal_id must be positive")
	}
	if c.Engine.RulePrefix == "" {
		problems = append(problems, "engine.rule_prefix is required")
	}
	if c.Run.PageSize <= 0 {
		problems = append(problems, "run.page_size must be positive")
	}
	if c.Run.Tolerance <= 0 {
		problems = append(problems, "run.tolerance must be positive")
	}
	if c.Report.OutputPath == "" {
		problems = append(problems, "report.output_path is required")
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		problems = append(problems, "s3.region is required when s3.bucket is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
