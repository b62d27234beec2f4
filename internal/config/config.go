// Package config loads server configuration. Values come from built-in
// defaults, then an optional TOML file, then the environment (including a
// .env file in the working directory), each layer overriding the previous.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all settings used by the server and the CLI.
type Config struct {
	Port          string `toml:"port"`
	Env           string `toml:"env"`
	LogLevel      string `toml:"log_level"`
	PublicBaseURL string `toml:"public_base_url"`

	// Catalog
	TemplatesFile string `toml:"templates_file"`
	ExamplesFile  string `toml:"examples_file"`
	TemplatesDir  string `toml:"templates_dir"`
	ExportScale   int    `toml:"export_scale"`

	// Text generation
	OpenAIKey     string `toml:"openai_api_key"`
	OpenAIModel   string `toml:"openai_model"`
	OpenAIBaseURL string `toml:"openai_base_url"`

	// Feedback
	TelegramToken  string `toml:"telegram_bot_token"`
	TelegramChatID string `toml:"telegram_target_user_id"`
	TelegramAPIURL string `toml:"telegram_api_url"`

	// Cache
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`

	// Rate limiting for the upstream-backed endpoints
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`

	MetricsUser string `toml:"metrics_user"`
	MetricsPass string `toml:"metrics_pass"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:           "8080",
		Env:            "development",
		LogLevel:       "info",
		PublicBaseURL:  "http://localhost:8080",
		TemplatesDir:   "web/static/meme-templates",
		ExportScale:    2,
		OpenAIModel:    "gpt-4o-mini",
		OpenAIBaseURL:  "https://api.openai.com/v1",
		TelegramAPIURL: "https://api.telegram.org",
		RateLimitRPS:   1,
		RateLimitBurst: 5,
	}
}

// Load reads .env (if present), the TOML file at path (if non-empty) and the
// environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = envOrDefault("PORT", c.Port)
	c.Env = envOrDefault("APP_ENV", c.Env)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
	c.PublicBaseURL = envOrDefault("PUBLIC_BASE_URL", c.PublicBaseURL)
	c.TemplatesFile = envOrDefault("TEMPLATES_FILE", c.TemplatesFile)
	c.ExamplesFile = envOrDefault("EXAMPLES_FILE", c.ExamplesFile)
	c.TemplatesDir = envOrDefault("TEMPLATES_DIR", c.TemplatesDir)
	c.OpenAIKey = envOrDefault("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = envOrDefault("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBaseURL = envOrDefault("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.TelegramToken = envOrDefault("TELEGRAM_BOT_TOKEN", c.TelegramToken)
	c.TelegramChatID = envOrDefault("TELEGRAM_TARGET_USER_ID", c.TelegramChatID)
	c.TelegramAPIURL = envOrDefault("TELEGRAM_API_URL", c.TelegramAPIURL)
	c.RedisAddr = envOrDefault("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = envOrDefault("REDIS_PASSWORD", c.RedisPassword)
	c.MetricsUser = envOrDefault("METRICS_USER", c.MetricsUser)
	c.MetricsPass = envOrDefault("METRICS_PASS", c.MetricsPass)

	if v := os.Getenv("EXPORT_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXPORT_SCALE: %w", err)
		}
		c.ExportScale = n
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimitBurst = n
	}
	return nil
}

// Export scale bounds.
const (
	MinExportScale = 1
	MaxExportScale = 4
)

// ValidateExportScale reports whether n is a usable export scale.
func ValidateExportScale(n int) error {
	if n < MinExportScale || n > MaxExportScale {
		return fmt.Errorf("export scale must be between %d and %d, got %d", MinExportScale, MaxExportScale, n)
	}
	return nil
}

func (c *Config) validate() error {
	if err := ValidateExportScale(c.ExportScale); err != nil {
		return err
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// Production reports whether APP_ENV is "production".
func (c *Config) Production() bool { return c.Env == "production" }

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
