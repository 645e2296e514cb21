// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/lanefour/meetscore/internal/adapters/repository"
	"github.com/lanefour/meetscore/internal/domain/sensitivity"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/testspot"
	"github.com/lanefour/meetscore/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LoadMeet(ctx context.Context, meet repository.Meet) (string, error)
	Meet(ctx context.Context, meetID string) (repository.Meet, error)
	Rescore(ctx context.Context, meetID string, mode view.Mode) ([]standings.TeamScore, error)
	Standings(ctx context.Context, meetID string) ([]standings.TeamScore, error)
	Sensitivity(ctx context.Context, meetID, athleteID string, pct float64) (*sensitivity.Report, error)
	CompareTestSpot(ctx context.Context, meetID, teamID string) ([]testspot.Candidate, error)
	SetScorer(ctx context.Context, meetID, teamID, athleteID string) ([]standings.TeamScore, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	meetsHandler       *MeetsHandler
	rescoreHandler     *RescoreHandler
	resultsHandler     *ResultsHandler
	standingsHandler   *StandingsHandler
	sensitivityHandler *SensitivityHandler
	testSpotHandler    *TestSpotHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		meetsHandler:       NewMeetsHandler(deps),
		rescoreHandler:     NewRescoreHandler(deps),
		resultsHandler:     NewResultsHandler(deps),
		standingsHandler:   NewStandingsHandler(deps),
		sensitivityHandler: NewSensitivityHandler(deps),
		testSpotHandler:    NewTestSpotHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/meets", MetricsMiddleware(s.meetsHandler.HandleCreateMeet, "meets"))
	mux.HandleFunc("/rescore/", MetricsMiddleware(s.rescoreHandler.HandleRescore, "rescore"))
	mux.HandleFunc("/results/", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/standings/", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/sensitivity/", MetricsMiddleware(s.sensitivityHandler.HandleGetSensitivity, "sensitivity"))
	mux.HandleFunc("/testspot/", MetricsMiddleware(s.testSpotHandler.HandleCompare, "testspot"))
	mux.HandleFunc("/scorer/", MetricsMiddleware(s.testSpotHandler.HandleSetScorer, "scorer"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// pathParts splits the request path after prefix into non-empty segments.
func pathParts(r *http.Request, prefix string) []string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrMeetNotFound) || errors.Is(err, repository.ErrTeamNotFound)
}
