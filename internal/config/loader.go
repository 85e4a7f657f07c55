package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CONFIDA_CONFIG is set
//  3. env (prefix CONFIDA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CONFIDA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CONFIDA_ADDR, CONFIDA_BACKEND, ...
	// Map env keys like CONFIDA_ANALYSIS_TIMEOUT_MS -> analysis_timeout_ms.
	envProvider := env.Provider("CONFIDA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "confida_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch cfg.Backend {
	case BackendStub, BackendGemini, BackendAnthropic:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
	if cfg.Backend != BackendStub && cfg.APIKey == "" {
		return fmt.Errorf("%w: api_key is required for backend %q", ErrInvalidConfig, cfg.Backend)
	}
	if cfg.ContentWeight < 0 || cfg.DeliveryWeight < 0 || cfg.TechnicalWeight < 0 {
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
	}
	return nil
}
