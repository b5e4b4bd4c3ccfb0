package narrative

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// Provider defaults point at DeepSeek, which speaks the OpenAI chat API
const (
	DefaultBaseURL     = "https://api.deepseek.com/v1/"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.7
	DefaultMaxRetries  = 2
)

// Config contains configuration options for the narrative client.
type Config struct {
	// APIKey enables the remote provider. Empty selects the fallback client.
	APIKey string
	// BaseURL of an OpenAI compatible API (optional, defaults to DeepSeek)
	BaseURL string
	// Model name (optional, defaults to deepseek-chat)
	Model string
	// Temperature for sampling (optional, defaults to 0.7)
	Temperature float64
	// Locale is a BCP 47 tag matched against the prompt catalogs
	Locale string
	// MaxRetries for transient HTTP failures (optional, defaults to 2; -1 disables)
	MaxRetries int
	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
	// Roller picks Inspiration themes (optional, defaults to dice.DefaultRoller)
	Roller dice.Roller
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.DefaultRoller
	}

	vb := errors.NewValidationBuilder()
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		vb.Field("Temperature", "must be between 0 and 2")
	}
	return vb.Build()
}
