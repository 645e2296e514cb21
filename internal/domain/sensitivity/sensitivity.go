// Package sensitivity projects how one athlete swimming a bit faster or
// slower would change their points and the team total.
//
// The projection substitutes a perturbed time into the affected event's
// full entry set, holds every other entry fixed, and reruns the same
// ranking engine that produced the primary results. It is a read-only side
// computation: stored results are never touched.
package sensitivity

import (
	"fmt"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/ranking"
	"github.com/lanefour/meetscore/internal/domain/scoretable"
)

const percentDivisor = 100

// Variant is the athlete's outcome in one event under one hypothetical.
type Variant struct {
	Seconds float64 `json:"seconds"`
	Place   int     `json:"place"`
	Points  float64 `json:"points"`
}

// EventProjection holds the baseline and both perturbed outcomes for one
// of the athlete's events.
type EventProjection struct {
	EventID  string  `json:"event_id"`
	Baseline Variant `json:"baseline"`
	Better   Variant `json:"better"`
	Worse    Variant `json:"worse"`
}

// Report rolls the per-event projections into athlete point sums and
// team-total deltas.
type Report struct {
	AthleteID string            `json:"athlete_id"`
	Pct       float64           `json:"pct"`
	Events    []EventProjection `json:"events"`

	BaselinePoints float64 `json:"baseline_points"`
	BetterPoints   float64 `json:"better_points"`
	WorsePoints    float64 `json:"worse_points"`

	TeamTotal       float64 `json:"team_total"`
	BetterTeamTotal float64 `json:"better_team_total"`
	WorseTeamTotal  float64 `json:"worse_team_total"`
}

// Compute projects the ±pct perturbation of athleteID's time across every
// event in eventsByID where the athlete has an entry. Entries must carry
// their already-computed baseline place and points; teamTotal is the
// athlete's team total those baselines contributed to.
//
// A pct of 0, or an athlete with no entries, disables the computation and
// returns (nil, nil). A pct outside (0, 100] is a structural error.
func Compute(athleteID string, pct float64, events []model.Event, entriesByEvent map[string][]*model.Entry, tables scoretable.Set, teamTotal float64) (*Report, error) {
	if athleteID == "" {
		return nil, fmt.Errorf("compute sensitivity: %w", ErrMissingAthlete)
	}
	if pct == 0 {
		return nil, nil
	}
	if pct < 0 || pct > percentDivisor {
		return nil, fmt.Errorf("compute sensitivity: %w: %v", ErrInvalidPercent, pct)
	}

	report := &Report{AthleteID: athleteID, Pct: pct, TeamTotal: teamTotal}

	for _, ev := range events {
		if ev.Category == model.CategoryRelay {
			continue
		}
		entries := entriesByEvent[ev.ID]
		target := findAthlete(entries, athleteID)
		if target == nil {
			continue
		}

		base := target.ExtractSeconds()
		diving := ev.Category == model.CategoryDiving
		better := base * (1 - pct/percentDivisor)
		worse := base * (1 + pct/percentDivisor)
		if diving {
			// Higher score wins in diving, so "better" means more points.
			better, worse = worse, better
		}

		proj := EventProjection{
			EventID:  ev.ID,
			Baseline: Variant{Seconds: base},
		}
		if target.Place != nil {
			proj.Baseline.Place = *target.Place
		}
		if target.Points != nil {
			proj.Baseline.Points = *target.Points
		}

		table := tables.ForCategory(ev.Category)
		var err error
		proj.Better, err = rankVariant(entries, athleteID, better, ev.Category, table)
		if err != nil {
			return nil, fmt.Errorf("compute sensitivity: %w", err)
		}
		proj.Worse, err = rankVariant(entries, athleteID, worse, ev.Category, table)
		if err != nil {
			return nil, fmt.Errorf("compute sensitivity: %w", err)
		}

		report.Events = append(report.Events, proj)
		report.BaselinePoints += proj.Baseline.Points
		report.BetterPoints += proj.Better.Points
		report.WorsePoints += proj.Worse.Points
	}

	if len(report.Events) == 0 {
		return nil, nil
	}

	report.BetterTeamTotal = teamTotal - report.BaselinePoints + report.BetterPoints
	report.WorseTeamTotal = teamTotal - report.BaselinePoints + report.WorsePoints
	return report, nil
}

// rankVariant reruns the ranking for one event with the athlete's time
// replaced by seconds, holding every other entry fixed, and reports the
// athlete's resulting place and points.
func rankVariant(entries []*model.Entry, athleteID string, seconds float64, category model.Category, table scoretable.Table) (Variant, error) {
	scratch := make([]*model.Entry, len(entries))
	var target *model.Entry
	for i, e := range entries {
		c := e.Clone()
		if c.AthleteID == athleteID {
			// Force the extraction policy to yield the variant time.
			c.FinalSeconds = nil
			c.OverrideSeconds = &seconds
			target = c
		}
		scratch[i] = c
	}

	if err := ranking.RankEvent(scratch, category, table); err != nil {
		return Variant{}, err
	}

	v := Variant{Seconds: seconds}
	if target.Place != nil {
		v.Place = *target.Place
	}
	if target.Points != nil {
		v.Points = *target.Points
	}
	return v, nil
}

func findAthlete(entries []*model.Entry, athleteID string) *model.Entry {
	for _, e := range entries {
		if e.AthleteID == athleteID {
			return e
		}
	}
	return nil
}
