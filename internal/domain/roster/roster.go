// Package roster resolves which athletes' points count toward a team total.
package roster

import (
	"slices"

	"github.com/lanefour/meetscore/internal/domain/model"
)

// ScorerID returns the designated test-spot scorer for cfg. If the
// designated scorer is no longer among the candidates, the first candidate
// becomes the scorer: a deterministic fallback, not an error. Empty string
// when no candidates are configured.
func ScorerID(cfg model.TeamRosterConfig) string {
	if len(cfg.TestSpotAthleteIDs) == 0 {
		return ""
	}
	if slices.Contains(cfg.TestSpotAthleteIDs, cfg.TestSpotScorerID) {
		return cfg.TestSpotScorerID
	}
	return cfg.TestSpotAthleteIDs[0]
}

// EligibleAthletes computes the set of athlete IDs whose individual and
// diving points count toward the team total.
//
// With no test-spot candidates the eligible set is the selected set.
// Otherwise every candidate except the designated scorer is removed.
// Exhibition athletes are always removed last, regardless of test-spot
// status. Relay points are never subject to this filter.
func EligibleAthletes(cfg model.TeamRosterConfig) map[string]struct{} {
	eligible := make(map[string]struct{}, len(cfg.SelectedAthletes))
	for _, id := range cfg.SelectedAthletes {
		eligible[id] = struct{}{}
	}

	if scorer := ScorerID(cfg); scorer != "" {
		for _, id := range cfg.TestSpotAthleteIDs {
			if id != scorer {
				delete(eligible, id)
			}
		}
	}

	for _, id := range cfg.ExhibitionAthleteIDs {
		delete(eligible, id)
	}
	return eligible
}
