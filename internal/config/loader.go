package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PROMOAUDIT_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PROMOAUDIT_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject engine credentials at run time without writing them
// into the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Engine ──
	setStr(&cfg.Engine.BaseURL, "PROMOAUDIT_ENGINE_BASE_URL")
	setStr(&cfg.Engine.Username, "PROMOAUDIT_ENGINE_USERNAME")
	setStr(&cfg.Engine.Password, "PROMOAUDIT_ENGINE_PASSWORD")
	setStr(&cfg.Engine.UserAgent, "PROMOAUDIT_ENGINE_USER_AGENT")
	setInt(&cfg.Engine.TerminalID, "PROMOAUDIT_ENGINE_TERMINAL_ID")
	setBool(&cfg.Engine.InsecureSkipVerify, "PROMOAUDIT_ENGINE_INSECURE_SKIP_VERIFY")
	setStr(&cfg.Engine.RulePrefix, "PROMOAUDIT_ENGINE_RULE_PREFIX")

	// ── Run ──
	setInt(&cfg.Run.PageSize, "PROMOAUDIT_RUN_PAGE_SIZE")
	setFloat64(&cfg.Run.Tolerance, "PROMOAUDIT_RUN_TOLERANCE")
	setBool(&cfg.Run.StrictMatch, "PROMOAUDIT_RUN_STRICT_MATCH")

	// ── Report ──
	setStr(&cfg.Report.OutputPath, "PROMOAUDIT_REPORT_OUTPUT_PATH")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "PROMOAUDIT_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "PROMOAUDIT_S3_REGION")
	setStr(&cfg.S3.Bucket, "PROMOAUDIT_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "PROMOAUDIT_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "PROMOAUDIT_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "PROMOAUDIT_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "PROMOAUDIT_S3_FORCE_PATH_STYLE")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "PROMOAUDIT_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "PROMOAUDIT_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "PROMOAUDIT_NOTIFY_DISCORD_WEBHOOK_URL")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "PROMOAUDIT_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
