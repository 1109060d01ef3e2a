// Package config defines service configuration and its loading order.
//
// Precedence (low to high): built-in defaults, YAML file named by
// MOTORSCREEN_CONFIG, then MOTORSCREEN_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MOTORSCREEN_"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite file location.
	DatabasePath string `koanf:"database_path"`

	// JWTSecret signs anonymous session tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTLHours bounds session token lifetime.
	SessionTTLHours int `koanf:"session_ttl_hours"`

	// RedisURL enables the Redis-backed rate limiter when set. Empty
	// falls back to the in-process limiter.
	RedisURL string `koanf:"redis_url"`

	// RateLimitPerMinute caps assessment submissions per client IP.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// CacheTTLSeconds bounds the response cache entry lifetime.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RequestTimeoutSeconds bounds handler execution time.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`

	// AllowedOrigins lists CORS origins for the assessment widgets.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		DatabasePath:          "motorscreen.db",
		JWTSecret:             "",
		SessionTTLHours:       24,
		RedisURL:              "",
		RateLimitPerMinute:    30,
		CacheTTLSeconds:       300,
		RequestTimeoutSeconds: 10,
		AllowedOrigins:        []string{"http://localhost:5173"},
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// MOTORSCREEN_RATE_LIMIT_PER_MINUTE -> rate_limit_per_minute.
	// Underscores are preserved to match the koanf struct tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("rate_limit_per_minute must be positive")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return errors.New("request_timeout_seconds must be positive")
	}
	return nil
}
