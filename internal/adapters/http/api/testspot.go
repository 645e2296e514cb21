// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lanefour/meetscore/internal/domain/roster"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/testspot"
)

// TestSpotDependencies defines the interface for test-spot operations.
type TestSpotDependencies interface {
	CompareTestSpot(ctx context.Context, meetID, teamID string) ([]testspot.Candidate, error)
	SetScorer(ctx context.Context, meetID, teamID, athleteID string) ([]standings.TeamScore, error)
}

// TestSpotHandler handles test-spot comparison and scorer selection.
type TestSpotHandler struct {
	deps TestSpotDependencies
}

// NewTestSpotHandler creates a new test-spot handler.
func NewTestSpotHandler(deps TestSpotDependencies) *TestSpotHandler {
	return &TestSpotHandler{deps: deps}
}

// HandleCompare handles GET /testspot/{meetID}/{teamID} requests.
func (h *TestSpotHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.testspot_compare"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r, "/testspot/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	candidates, err := h.deps.CompareTestSpot(r.Context(), parts[0], parts[1])
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

type setScorerRequest struct {
	AthleteID string `json:"athlete_id"`
}

// HandleSetScorer handles POST /scorer/{meetID}/{teamID} requests. The
// body names the candidate to designate; team totals are re-aggregated and
// returned.
func (h *TestSpotHandler) HandleSetScorer(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_scorer"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r, "/scorer/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var req setScorerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.AthleteID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing athlete_id")))
		return
	}

	scores, err := h.deps.SetScorer(r.Context(), parts[0], parts[1], req.AthleteID)
	switch {
	case err == nil:
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	case errors.Is(err, roster.ErrNotCandidate):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
