// Package standings aggregates entry points into ranked team totals.
package standings

import (
	"slices"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/roster"
)

// TeamScore holds one team's recomputed point sums. Total is always the
// exact sum of the three category scores; it is never mutated independently.
type TeamScore struct {
	Rank       int     `json:"rank"`
	TeamID     string  `json:"team_id"`
	Individual float64 `json:"individual"`
	Diving     float64 `json:"diving"`
	Relay      float64 `json:"relay"`
	Total      float64 `json:"total"`
}

// AggregateTeams sums each team's points and ranks the teams by total,
// descending. Individual and diving sums are restricted to the team's
// eligible athletes; the relay sum is unfiltered, since only selected
// athletes can be placed on a relay upstream. Teams tied on total keep
// their configured order.
//
// Teams appear in roster-config order; teams present only in entries or
// relays follow in first-seen order with a zero-value roster config, so
// nothing counts toward their individual or diving score until a roster is
// configured.
func AggregateTeams(events []model.Event, entries []*model.Entry, relays []*model.RelayEntry, configs []model.TeamRosterConfig) []TeamScore {
	categories := make(map[string]model.Category, len(events))
	for _, ev := range events {
		categories[ev.ID] = ev.Category
	}

	scores := make([]TeamScore, 0, len(configs))
	index := make(map[string]int, len(configs))
	eligible := make(map[string]map[string]struct{}, len(configs))

	team := func(id string) *TeamScore {
		if i, ok := index[id]; ok {
			return &scores[i]
		}
		index[id] = len(scores)
		scores = append(scores, TeamScore{TeamID: id})
		if _, ok := eligible[id]; !ok {
			eligible[id] = roster.EligibleAthletes(model.TeamRosterConfig{TeamID: id})
		}
		return &scores[len(scores)-1]
	}

	for _, cfg := range configs {
		eligible[cfg.TeamID] = roster.EligibleAthletes(cfg)
		team(cfg.TeamID)
	}

	for _, e := range entries {
		if e.Points == nil {
			continue
		}
		ts := team(e.TeamID)
		if _, ok := eligible[e.TeamID][e.AthleteID]; !ok {
			continue
		}
		switch categories[e.EventID] {
		case model.CategoryDiving:
			ts.Diving += *e.Points
		default:
			ts.Individual += *e.Points
		}
	}

	for _, r := range relays {
		if r.Points == nil {
			continue
		}
		team(r.TeamID).Relay += *r.Points
	}

	for i := range scores {
		s := &scores[i]
		s.Total = s.Individual + s.Diving + s.Relay
	}

	slices.SortStableFunc(scores, func(a, b TeamScore) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return 0
		}
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}
