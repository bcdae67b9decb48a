package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"threadstorm/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// HTTP server
	ListenAddr string

	// Logging
	LogLevel string

	// Formatting defaults, overridable per request
	MaxCharsPerPost  int
	Tone             string
	IncludeNumbering bool
	EnableHook       bool
	EnableCTA        bool
	ImageRhythm      int
	MinPostChars     int
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "data/threadstorm.db"),
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Tone:         getEnv("TONE", string(engine.ToneProfessional)),
	}

	var err error
	if cfg.MaxCharsPerPost, err = getEnvInt("MAX_CHARS_PER_POST", 500); err != nil {
		return nil, err
	}
	if cfg.ImageRhythm, err = getEnvInt("IMAGE_RHYTHM", 3); err != nil {
		return nil, err
	}
	if cfg.MinPostChars, err = getEnvInt("MIN_POST_CHARS", 40); err != nil {
		return nil, err
	}
	if cfg.IncludeNumbering, err = getEnvBool("INCLUDE_NUMBERING", true); err != nil {
		return nil, err
	}
	if cfg.EnableHook, err = getEnvBool("ENABLE_HOOK", true); err != nil {
		return nil, err
	}
	if cfg.EnableCTA, err = getEnvBool("ENABLE_CTA", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EngineOptions converts the configured defaults into engine options.
func (c *Config) EngineOptions() engine.FormattingOptions {
	return engine.FormattingOptions{
		MaxCharsPerPost:  c.MaxCharsPerPost,
		Tone:             engine.Tone(c.Tone),
		IncludeNumbering: c.IncludeNumbering,
		EnableHook:       c.EnableHook,
		EnableCTA:        c.EnableCTA,
		ImageRhythm:      c.ImageRhythm,
		MinPostChars:     c.MinPostChars,
	}
}

// Validate checks that the formatting defaults form a valid configuration.
func (c *Config) Validate() error {
	if err := c.EngineOptions().Validate(); err != nil {
		return fmt.Errorf("formatting defaults: %w", err)
	}
	return nil
}

// ValidateForHistory checks configuration needed for persistence.
func (c *Config) ValidateForHistory() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ValidateForHistory(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
