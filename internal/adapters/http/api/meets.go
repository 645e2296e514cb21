// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	repository "github.com/lanefour/meetscore/internal/adapters/repository"
	"github.com/lanefour/meetscore/internal/domain/model"
)

// MeetDependencies defines the interface for meet admission.
type MeetDependencies interface {
	LoadMeet(ctx context.Context, meet repository.Meet) (string, error)
}

// MeetsHandler handles meet snapshot uploads.
type MeetsHandler struct {
	deps MeetDependencies
}

// NewMeetsHandler creates a new meets handler.
func NewMeetsHandler(deps MeetDependencies) *MeetsHandler {
	return &MeetsHandler{deps: deps}
}

// meetRequest mirrors the JSON schema for POST /meets.
type meetRequest struct {
	Name    string          `json:"name"`
	Events  []eventRequest  `json:"events"`
	Entries []entryRequest  `json:"entries"`
	Relays  []relayRequest  `json:"relays"`
	Rosters []rosterRequest `json:"rosters"`
}

type eventRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

type entryRequest struct {
	AthleteID         string   `json:"athlete_id"`
	TeamID            string   `json:"team_id"`
	EventID           string   `json:"event_id"`
	SeedTime          string   `json:"seed_time"`
	SeedSeconds       *float64 `json:"seed_seconds,omitempty"`
	OverrideSeconds   *float64 `json:"override_seconds,omitempty"`
	FinalSeconds      *float64 `json:"final_seconds,omitempty"`
	Place             *int     `json:"place,omitempty"`
	Points            *float64 `json:"points,omitempty"`
	RealResultApplied bool     `json:"real_result_applied"`
}

type relayRequest struct {
	TeamID            string   `json:"team_id"`
	EventID           string   `json:"event_id"`
	SeedTime          string   `json:"seed_time"`
	SeedSeconds       *float64 `json:"seed_seconds,omitempty"`
	OverrideSeconds   *float64 `json:"override_seconds,omitempty"`
	FinalSeconds      *float64 `json:"final_seconds,omitempty"`
	Place             *int     `json:"place,omitempty"`
	Points            *float64 `json:"points,omitempty"`
	RealResultApplied bool     `json:"real_result_applied"`
	AthleteIDs        []string `json:"athlete_ids"`
}

type rosterRequest struct {
	TeamID               string   `json:"team_id"`
	SelectedAthletes     []string `json:"selected_athletes"`
	TestSpotAthleteIDs   []string `json:"test_spot_athlete_ids"`
	TestSpotScorerID     string   `json:"test_spot_scorer_id"`
	ExhibitionAthleteIDs []string `json:"exhibition_athlete_ids"`
}

func (m meetRequest) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("missing name")
	}
	events := make(map[string]model.Category, len(m.Events))
	for _, ev := range m.Events {
		switch {
		case strings.TrimSpace(ev.ID) == "":
			return errors.New("event missing id")
		case !model.Category(ev.Category).Valid():
			return fmt.Errorf("event %s: unknown category %q", ev.ID, ev.Category)
		}
		events[ev.ID] = model.Category(ev.Category)
	}
	for _, e := range m.Entries {
		switch {
		case strings.TrimSpace(e.AthleteID) == "":
			return errors.New("entry missing athlete_id")
		case strings.TrimSpace(e.TeamID) == "":
			return errors.New("entry missing team_id")
		}
		if c, ok := events[e.EventID]; !ok || c == model.CategoryRelay {
			return fmt.Errorf("entry for athlete %s: bad event %q", e.AthleteID, e.EventID)
		}
	}
	for _, r := range m.Relays {
		if strings.TrimSpace(r.TeamID) == "" {
			return errors.New("relay missing team_id")
		}
		if c, ok := events[r.EventID]; !ok || c != model.CategoryRelay {
			return fmt.Errorf("relay for team %s: bad event %q", r.TeamID, r.EventID)
		}
	}
	for _, cfg := range m.Rosters {
		if strings.TrimSpace(cfg.TeamID) == "" {
			return errors.New("roster missing team_id")
		}
	}
	return nil
}

func (m meetRequest) toMeet() repository.Meet {
	meet := repository.Meet{Name: m.Name}
	for _, ev := range m.Events {
		meet.Events = append(meet.Events, model.Event{
			ID:       ev.ID,
			Name:     ev.Name,
			Category: model.Category(ev.Category),
			Order:    ev.Order,
		})
	}
	for _, e := range m.Entries {
		meet.Entries = append(meet.Entries, &model.Entry{
			AthleteID:         e.AthleteID,
			TeamID:            e.TeamID,
			EventID:           e.EventID,
			SeedTime:          e.SeedTime,
			SeedSeconds:       e.SeedSeconds,
			OverrideSeconds:   e.OverrideSeconds,
			FinalSeconds:      e.FinalSeconds,
			Place:             e.Place,
			Points:            e.Points,
			RealResultApplied: e.RealResultApplied,
		})
	}
	for _, r := range m.Relays {
		meet.Relays = append(meet.Relays, &model.RelayEntry{
			TeamID:            r.TeamID,
			EventID:           r.EventID,
			SeedTime:          r.SeedTime,
			SeedSeconds:       r.SeedSeconds,
			OverrideSeconds:   r.OverrideSeconds,
			FinalSeconds:      r.FinalSeconds,
			Place:             r.Place,
			Points:            r.Points,
			RealResultApplied: r.RealResultApplied,
			AthleteIDs:        r.AthleteIDs,
		})
	}
	for _, cfg := range m.Rosters {
		meet.Rosters = append(meet.Rosters, model.TeamRosterConfig{
			TeamID:               cfg.TeamID,
			SelectedAthletes:     cfg.SelectedAthletes,
			TestSpotAthleteIDs:   cfg.TestSpotAthleteIDs,
			TestSpotScorerID:     cfg.TestSpotScorerID,
			ExhibitionAthleteIDs: cfg.ExhibitionAthleteIDs,
		})
	}
	return meet
}

type createMeetResponse struct {
	MeetID string `json:"meet_id"`
}

// HandleCreateMeet handles POST /meets requests.
func (h *MeetsHandler) HandleCreateMeet(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_meet"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req meetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id, err := h.deps.LoadMeet(r.Context(), req.toMeet())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, createMeetResponse{MeetID: id})
}
