// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// Session log backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the process configuration
type Config struct {
	GRPCPort int    `env:"LUMINA_GRPC_PORT" envDefault:"50051"`
	HTTPAddr string `env:"LUMINA_HTTP_ADDR" envDefault:":8080"`

	LogLevel  string `env:"LUMINA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LUMINA_LOG_FORMAT" envDefault:"json"`

	SessionLogBackend string        `env:"LUMINA_SESSION_LOG_BACKEND" envDefault:"memory"`
	RedisURL          string        `env:"LUMINA_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath        string        `env:"LUMINA_SQLITE_PATH" envDefault:"lumina.db"`
	SessionLogTTL     time.Duration `env:"LUMINA_SESSION_LOG_TTL" envDefault:"24h"`

	NarrativeAPIKey  string        `env:"LUMINA_NARRATIVE_API_KEY"`
	DeepSeekAPIKey   string        `env:"DEEPSEEK_API_KEY"`
	APIKey           string        `env:"API_KEY"`
	NarrativeBaseURL string        `env:"LUMINA_NARRATIVE_BASE_URL"`
	NarrativeModel   string        `env:"LUMINA_NARRATIVE_MODEL"`
	NarrativeLocale  string        `env:"LUMINA_NARRATIVE_LOCALE" envDefault:"en"`
	NarrativeTimeout time.Duration `env:"LUMINA_NARRATIVE_TIMEOUT" envDefault:"20s"`

	OTelEndpoint string `env:"LUMINA_OTEL_ENDPOINT"`
}

// Load reads an optional .env file and parses the environment into a
// validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to read .env file")
		}
		slog.Debug("No .env file found, using environment variables")
	}

	return Parse()
}

// Parse builds a Config from the process environment only
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseFrom builds a Config from the given variables instead of the process
// environment.
func ParseFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("LUMINA_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("LUMINA_LOG_LEVEL", strings.ToLower(c.LogLevel),
		[]string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LUMINA_LOG_FORMAT", strings.ToLower(c.LogFormat),
		[]string{LogFormatJSON, LogFormatText}, vb)
	errors.ValidateEnum("LUMINA_SESSION_LOG_BACKEND", strings.ToLower(c.SessionLogBackend),
		[]string{BackendMemory, BackendRedis, BackendSQLite}, vb)

	switch strings.ToLower(c.SessionLogBackend) {
	case BackendRedis:
		errors.ValidateRequired("LUMINA_REDIS_URL", c.RedisURL, vb)
	case BackendSQLite:
		errors.ValidateRequired("LUMINA_SQLITE_PATH", c.SQLitePath, vb)
	}

	if c.NarrativeTimeout <= 0 {
		vb.Field("LUMINA_NARRATIVE_TIMEOUT", "must be positive")
	}
	if c.SessionLogTTL < 0 {
		vb.Field("LUMINA_SESSION_LOG_TTL", "must not be negative")
	}

	return vb.Build()
}

// NarrativeKey returns the first configured narrative API key, or "" when
// the fallback provider should be used.
func (c *Config) NarrativeKey() string {
	for _, key := range []string{c.NarrativeAPIKey, c.DeepSeekAPIKey, c.APIKey} {
		if k := strings.TrimSpace(key); k != "" {
			return k
		}
	}
	return ""
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// NewLogger builds the process logger for the configured format and level
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.ToLower(c.LogFormat) == LogFormatText {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
