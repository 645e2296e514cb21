// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/lanefour/meetscore/internal/domain/sensitivity"
)

// SensitivityDependencies defines the interface for sensitivity projections.
type SensitivityDependencies interface {
	Sensitivity(ctx context.Context, meetID, athleteID string, pct float64) (*sensitivity.Report, error)
}

// SensitivityHandler handles performance-sensitivity projections.
type SensitivityHandler struct {
	deps SensitivityDependencies
}

// NewSensitivityHandler creates a new sensitivity handler.
func NewSensitivityHandler(deps SensitivityDependencies) *SensitivityHandler {
	return &SensitivityHandler{deps: deps}
}

type sensitivityResponse struct {
	Enabled bool                `json:"enabled"`
	Report  *sensitivity.Report `json:"report,omitempty"`
}

// HandleGetSensitivity handles GET /sensitivity/{meetID}/{athleteID}?pct=N.
// A zero or omitted pct falls back to the team's stored projection target;
// when no pct applies the response carries enabled=false, not an error.
func (h *SensitivityHandler) HandleGetSensitivity(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_sensitivity"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r, "/sensitivity/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	meetID, athleteID := parts[0], parts[1]

	var pct float64
	if raw := r.URL.Query().Get("pct"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		pct = v
	}

	report, err := h.deps.Sensitivity(r.Context(), meetID, athleteID, pct)
	switch {
	case err == nil:
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	case errors.Is(err, sensitivity.ErrInvalidPercent), errors.Is(err, sensitivity.ErrMissingAthlete):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sensitivityResponse{Enabled: report != nil, Report: report})
}
