// Package config loads server settings from DECK_API_* environment variables
package config

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/deck-api/internal/errors"
)

// Config is the server configuration
type Config struct {
	Port int `env:"DECK_API_PORT" envDefault:"50051"`

	// ReferencePath is the YAML reference data file
	ReferencePath string `env:"DECK_API_REFERENCE_PATH" envDefault:"data/reference.yaml"`
	// ReferenceLanguage selects the skill names compared during drift matching
	ReferenceLanguage string `env:"DECK_API_REFERENCE_LANGUAGE" envDefault:"en"`

	// RedisAddrs enables Redis-backed preset sharing; empty keeps shares in
	// memory. Several comma-separated addresses select cluster mode.
	RedisAddrs    []string `env:"DECK_API_REDIS_ADDR" envSeparator:","`
	RedisPassword string   `env:"DECK_API_REDIS_PASSWORD"`
	RedisDB       int      `env:"DECK_API_REDIS_DB" envDefault:"0"`

	ShareTTL     time.Duration `env:"DECK_API_SHARE_TTL" envDefault:"720h"`
	ShareBaseURL string        `env:"DECK_API_SHARE_BASE_URL" envDefault:"https://localhost/deck"`

	LogLevel string `env:"DECK_API_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and formats
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	vb.InRange("DECK_API_PORT", c.Port, 1, 65535).
		Required("DECK_API_REFERENCE_PATH", c.ReferencePath)
	if _, err := language.Parse(c.ReferenceLanguage); err != nil {
		vb.Fieldf("DECK_API_REFERENCE_LANGUAGE", "invalid language tag %q", c.ReferenceLanguage)
	}
	if c.RedisDB < 0 {
		vb.Field("DECK_API_REDIS_DB", "must not be negative")
	}
	if c.ShareTTL <= 0 {
		vb.Field("DECK_API_SHARE_TTL", "must be positive")
	}
	if u, err := url.Parse(c.ShareBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.Fieldf("DECK_API_SHARE_BASE_URL", "invalid absolute url %q", c.ShareBaseURL)
	}
	vb.OneOf("DECK_API_LOG_LEVEL", c.LogLevel, "debug", "info", "warn", "error")

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
