// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"github.com/lanefour/meetscore/internal/domain/scoretable"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// IndividualPoints is the place-ordered points list for individual
	// events (index 0 = place 1).
	IndividualPoints []float64 `koanf:"individual_points"`

	// RelayPoints is the place-ordered points list for relay events.
	RelayPoints []float64 `koanf:"relay_points"`

	// DivingPoints is the place-ordered points list for diving events.
	// Empty means diving shares the individual table.
	DivingPoints []float64 `koanf:"diving_points"`

	// ScoringCutoff is the highest place that earns points in any table.
	ScoringCutoff int `koanf:"scoring_cutoff"`
}

// New creates a Config with championship-format defaults: sixteen scoring
// places, relays worth double.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		IndividualPoints: []float64{20, 17, 16, 15, 14, 13, 12, 11, 9, 7, 6, 5, 4, 3, 2, 1},
		RelayPoints:      []float64{40, 34, 32, 30, 28, 26, 24, 22, 18, 14, 12, 10, 8, 6, 4, 2},
		DivingPoints:     nil,
		ScoringCutoff:    16,
	}
}

// Tables builds the scoring table set described by the configuration.
func (c *Config) Tables() scoretable.Set {
	return scoretable.Set{
		Individual: scoretable.New(c.IndividualPoints, c.ScoringCutoff),
		Relay:      scoretable.New(c.RelayPoints, c.ScoringCutoff),
		Diving:     scoretable.New(c.DivingPoints, c.ScoringCutoff),
	}
}
