// Package testspot compares candidate scorers for a team's test spot.
//
// A test spot lets a coach try several athletes in one counting slot. The
// comparator reports, per candidate, their standalone points and what the
// team total would be if that candidate were the designated scorer. It
// performs no mutation: choosing a new scorer is an upstream action that
// triggers a re-aggregation.
package testspot

import "slices"

// Subtotal is a candidate's already-computed point sum across their
// individual and diving entries.
type Subtotal struct {
	AthleteID string
	Points    float64
}

// Candidate is one comparison row.
type Candidate struct {
	AthleteID          string  `json:"athlete_id"`
	Subtotal           float64 `json:"subtotal"`
	ProjectedTeamTotal float64 `json:"projected_team_total"`
	Scorer             bool    `json:"scorer"`
}

// Compare ranks candidates by subtotal descending (stable) and projects
// each one's team total as teamTotal − current scorer's subtotal +
// candidate's subtotal. When scorerID is absent from candidates, the first
// candidate is treated as the scorer, matching the roster resolver's
// deterministic fallback. An empty candidate list yields nil.
func Compare(candidates []Subtotal, scorerID string, teamTotal float64) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	scorer := candidates[0].AthleteID
	scorerPoints := candidates[0].Points
	for _, c := range candidates {
		if c.AthleteID == scorerID {
			scorer = c.AthleteID
			scorerPoints = c.Points
			break
		}
	}

	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{
			AthleteID:          c.AthleteID,
			Subtotal:           c.Points,
			ProjectedTeamTotal: teamTotal - scorerPoints + c.Points,
			Scorer:             c.AthleteID == scorer,
		}
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Subtotal > b.Subtotal:
			return -1
		case a.Subtotal < b.Subtotal:
			return 1
		default:
			return 0
		}
	})
	return out
}
