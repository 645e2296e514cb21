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
//  2. file (YAML) if MEETSCORE_CONFIG is set
//  3. env (prefix MEETSCORE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MEETSCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MEETSCORE_ADDR, MEETSCORE_SCORING_CUTOFF, ...
	// Map env keys like MEETSCORE_LOG_LEVEL -> log_level (flat keys).
	envProvider := env.Provider("MEETSCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "meetscore_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case len(c.IndividualPoints) == 0:
		return fmt.Errorf("%w: individual_points must not be empty", ErrInvalidConfig)
	case len(c.RelayPoints) == 0:
		return fmt.Errorf("%w: relay_points must not be empty", ErrInvalidConfig)
	case c.ScoringCutoff < 1:
		return fmt.Errorf("%w: scoring_cutoff must be at least 1", ErrInvalidConfig)
	}
	return nil
}
