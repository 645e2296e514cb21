// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	repository "github.com/lanefour/meetscore/internal/adapters/repository"
	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/timecode"
)

// ResultsDependencies defines the interface for result reads.
type ResultsDependencies interface {
	Meet(ctx context.Context, meetID string) (repository.Meet, error)
}

// ResultsHandler handles scored-result reads.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

type entryResult struct {
	EntryID   string   `json:"entry_id"`
	AthleteID string   `json:"athlete_id,omitempty"`
	TeamID    string   `json:"team_id"`
	SeedTime  string   `json:"seed_time,omitempty"`
	Seconds   float64  `json:"seconds"`
	Place     *int     `json:"place"`
	Points    *float64 `json:"points"`
	Real      bool     `json:"real_result_applied"`

	AthleteIDs []string `json:"athlete_ids,omitempty"`
}

type eventResult struct {
	EventID  string        `json:"event_id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Entries  []entryResult `json:"entries"`
}

type resultsResponse struct {
	MeetID   string        `json:"meet_id"`
	Name     string        `json:"name"`
	Mode     string        `json:"mode,omitempty"`
	ScoredAt *time.Time    `json:"scored_at,omitempty"`
	Events   []eventResult `json:"events"`
}

// HandleGetResults handles GET /results/{meetID} requests, returning the
// last stored scoring pass grouped by event in program order.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r, "/results/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	meet, err := h.deps.Meet(r.Context(), parts[0])
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := resultsResponse{
		MeetID: meet.ID,
		Name:   meet.Name,
		Mode:   string(meet.Mode),
	}
	if !meet.ScoredAt.IsZero() {
		t := meet.ScoredAt
		resp.ScoredAt = &t
	}

	events := slices.Clone(meet.Events)
	slices.SortStableFunc(events, func(a, b model.Event) int { return a.Order - b.Order })

	for _, ev := range events {
		res := eventResult{
			EventID:  ev.ID,
			Name:     ev.Name,
			Category: string(ev.Category),
			Entries:  []entryResult{},
		}
		if ev.Category == model.CategoryRelay {
			for _, rel := range meet.Relays {
				if rel.EventID != ev.ID {
					continue
				}
				res.Entries = append(res.Entries, entryResult{
					EntryID:    rel.ID,
					TeamID:     rel.TeamID,
					SeedTime:   timecode.Normalize(rel.SeedTime),
					Seconds:    rel.ExtractSeconds(),
					Place:      rel.Place,
					Points:     rel.Points,
					Real:       rel.RealResultApplied,
					AthleteIDs: rel.AthleteIDs,
				})
			}
		} else {
			for _, e := range meet.Entries {
				if e.EventID != ev.ID {
					continue
				}
				res.Entries = append(res.Entries, entryResult{
					EntryID:   e.ID,
					AthleteID: e.AthleteID,
					TeamID:    e.TeamID,
					SeedTime:  timecode.Normalize(e.SeedTime),
					Seconds:   e.ExtractSeconds(),
					Place:     e.Place,
					Points:    e.Points,
					Real:      e.RealResultApplied,
				})
			}
		}
		resp.Events = append(resp.Events, res)
	}

	writeJSON(w, http.StatusOK, resp)
}
