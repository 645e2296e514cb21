// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/lanefour/meetscore/internal/domain/ranking"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/view"
)

// RescoreDependencies defines the interface for scoring passes.
type RescoreDependencies interface {
	Rescore(ctx context.Context, meetID string, mode view.Mode) ([]standings.TeamScore, error)
}

// RescoreHandler handles full meet rescore requests.
type RescoreHandler struct {
	deps RescoreDependencies
}

// NewRescoreHandler creates a new rescore handler.
func NewRescoreHandler(deps RescoreDependencies) *RescoreHandler {
	return &RescoreHandler{deps: deps}
}

type rescoreResponse struct {
	MeetID    string               `json:"meet_id"`
	Mode      string               `json:"mode"`
	Standings []standings.TeamScore `json:"standings"`
}

// HandleRescore handles POST /rescore/{meetID}?mode=simulated|real|hybrid.
// Mode defaults to hybrid, the live-meet view.
func (h *RescoreHandler) HandleRescore(w http.ResponseWriter, r *http.Request) {
	const op = "api.rescore"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r, "/rescore/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	meetID := parts[0]

	modeStr := r.URL.Query().Get("mode")
	if modeStr == "" {
		modeStr = string(view.ModeHybrid)
	}
	mode, err := view.ParseMode(modeStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	scores, err := h.deps.Rescore(r.Context(), meetID, mode)
	switch {
	case err == nil:
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	case errors.Is(err, ranking.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rescoreResponse{MeetID: meetID, Mode: string(mode), Standings: scores})
}
