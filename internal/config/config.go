// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Supported analysis backends.
const (
	BackendStub      = "stub"
	BackendGemini    = "gemini"
	BackendAnthropic = "anthropic"
)

// Default analysis configuration values.
const (
	defaultAnalysisTimeout = 30 * time.Second
	defaultContentWeight   = 0.4
	defaultDeliveryWeight  = 0.3
	defaultTechnicalWeight = 0.3
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Backend selects the text-analysis capability: stub, gemini, or anthropic.
	Backend string `koanf:"backend"`

	// Model names the backend model, e.g. "gemini-2.5-pro".
	Model string `koanf:"model"`

	// APIKey authenticates against the selected backend. Usually supplied
	// via the CONFIDA_API_KEY environment variable.
	APIKey string `koanf:"api_key"`

	// AnalysisTimeoutMS bounds a whole multi-agent analysis in milliseconds.
	AnalysisTimeoutMS int `koanf:"analysis_timeout_ms"`

	// ContentWeight, DeliveryWeight and TechnicalWeight set the default
	// combination weights. They are renormalized to sum to 1.0 before use.
	ContentWeight   float64 `koanf:"content_weight"`
	DeliveryWeight  float64 `koanf:"delivery_weight"`
	TechnicalWeight float64 `koanf:"technical_weight"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		Backend:           BackendStub,
		Model:             "",
		AnalysisTimeoutMS: int(defaultAnalysisTimeout / time.Millisecond),
		ContentWeight:     defaultContentWeight,
		DeliveryWeight:    defaultDeliveryWeight,
		TechnicalWeight:   defaultTechnicalWeight,
	}
}

// AnalysisTimeout returns the configured analysis timeout as a duration.
func (c *Config) AnalysisTimeout() time.Duration {
	if c.AnalysisTimeoutMS <= 0 {
		return defaultAnalysisTimeout
	}
	return time.Duration(c.AnalysisTimeoutMS) * time.Millisecond
}
