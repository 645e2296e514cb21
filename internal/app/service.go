// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	repository "github.com/lanefour/meetscore/internal/adapters/repository"
	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/roster"
	"github.com/lanefour/meetscore/internal/domain/scoretable"
	"github.com/lanefour/meetscore/internal/domain/sensitivity"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/testspot"
	"github.com/lanefour/meetscore/internal/domain/view"
	"github.com/lanefour/meetscore/pkg/logger"
	"github.com/lanefour/meetscore/pkg/metrics"
)

// Service implements meet admission, scoring passes, and the read-only
// what-if computations over the snapshot store.
type Service struct {
	mu sync.RWMutex

	store  repository.Store
	tables scoretable.Set
	locks  *meetLocks

	started bool

	rescores    atomic.Int64
	projections atomic.Int64
	comparisons atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the meet snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTables sets the scoring table set used by every pass.
func WithTables(tables scoretable.Set) Option {
	return func(s *Service) {
		s.tables = tables
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		locks: newMeetLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}

	s.started = true
	s.logger.Info(ctx, "meet scoring service started",
		logger.Int("individualPlaces", s.tables.Individual.Len()),
		logger.Int("relayPlaces", s.tables.Relay.Len()),
		logger.Int("cutoff", s.tables.Individual.Cutoff()),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "meet scoring service stopped")
}

// LoadMeet admits a meet snapshot and returns its ID.
func (s *Service) LoadMeet(ctx context.Context, meet repository.Meet) (string, error) {
	id, err := s.store.CreateMeet(ctx, meet)
	if err != nil {
		return "", fmt.Errorf("load meet: %w", err)
	}
	metrics.UpdateMeetCount(s.store.Count(ctx))
	s.logger.Info(ctx, "meet loaded",
		logger.String("meetID", id),
		logger.Int("events", len(meet.Events)),
		logger.Int("entries", len(meet.Entries)),
		logger.Int("relays", len(meet.Relays)),
	)
	return id, nil
}

// Meet returns a deep copy of the meet snapshot with its last results.
func (s *Service) Meet(ctx context.Context, meetID string) (repository.Meet, error) {
	return s.store.GetMeet(ctx, meetID)
}

// Rescore runs a full scoring pass for the meet under the given view mode
// and stores results and team totals atomically. Concurrent rescores of
// the same meet serialize; a started pass always runs to completion.
func (s *Service) Rescore(ctx context.Context, meetID string, mode view.Mode) ([]standings.TeamScore, error) {
	unlock := s.locks.acquire(meetID)
	defer unlock()

	start := time.Now()
	meet, err := s.store.GetMeet(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("rescore: %w", err)
	}

	comp, err := view.Compose(mode, meet.Events, meet.Entries, meet.Relays, s.tables)
	if err != nil {
		metrics.RecordScoringError()
		return nil, fmt.Errorf("rescore: %w", err)
	}
	scores := standings.AggregateTeams(meet.Events, comp.Entries, comp.Relays, meet.Rosters)

	if err := s.store.ReplaceResults(ctx, meetID, comp.Entries, comp.Relays, scores, mode); err != nil {
		return nil, fmt.Errorf("rescore: %w", err)
	}

	s.rescores.Add(1)
	durationMS := float64(time.Since(start).Milliseconds())
	metrics.RecordRescore(durationMS)
	metrics.RecordEventsRanked(len(meet.Events), len(comp.Entries)+len(comp.Relays))
	s.logger.Info(ctx, "meet rescored",
		logger.String("meetID", meetID),
		logger.String("mode", string(mode)),
		logger.Int("teams", len(scores)),
		logger.Float64("durationMs", durationMS),
	)
	return scores, nil
}

// Standings returns the meet's last computed team totals.
func (s *Service) Standings(ctx context.Context, meetID string) ([]standings.TeamScore, error) {
	meet, err := s.store.GetMeet(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	return meet.Standings, nil
}

// Sensitivity projects a ±pct perturbation of the athlete's times across
// their events, against the stored baseline results. A pct of 0 falls back
// to the pct stored on the athlete's team roster config; if that is also 0
// the projection is disabled and (nil, nil) is returned.
func (s *Service) Sensitivity(ctx context.Context, meetID, athleteID string, pct float64) (*sensitivity.Report, error) {
	meet, err := s.store.GetMeet(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}

	teamID := ""
	entriesByEvent := make(map[string][]*model.Entry)
	for _, e := range meet.Entries {
		entriesByEvent[e.EventID] = append(entriesByEvent[e.EventID], e)
		if e.AthleteID == athleteID {
			teamID = e.TeamID
		}
	}

	if pct == 0 && teamID != "" {
		if cfg, rosterErr := meet.Roster(teamID); rosterErr == nil && cfg.SensitivityAthleteID == athleteID {
			pct = cfg.SensitivityPct
		}
	}

	report, err := sensitivity.Compute(athleteID, pct, meet.Events, entriesByEvent, s.tables, s.teamTotal(meet, teamID))
	if err != nil {
		metrics.RecordScoringError()
		return nil, fmt.Errorf("sensitivity: %w", err)
	}
	if report == nil {
		return nil, nil
	}

	// Remember the last-requested projection target on the roster config.
	if cfg, rosterErr := meet.Roster(teamID); rosterErr == nil {
		cfg.SensitivityAthleteID = athleteID
		cfg.SensitivityPct = pct
		if updateErr := s.store.UpdateRoster(ctx, meetID, cfg); updateErr != nil {
			s.logger.Warn(ctx, "failed to persist sensitivity target", logger.Error(updateErr))
		}
	}

	s.projections.Add(1)
	metrics.RecordSensitivityRun()
	return report, nil
}

// CompareTestSpot reports each of a team's test-spot candidates with their
// standalone points and the projected team total were they the scorer.
func (s *Service) CompareTestSpot(ctx context.Context, meetID, teamID string) ([]testspot.Candidate, error) {
	meet, err := s.store.GetMeet(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("compare test spot: %w", err)
	}
	cfg, err := meet.Roster(teamID)
	if err != nil {
		return nil, fmt.Errorf("compare test spot %s: %w", teamID, err)
	}

	subtotals := make([]testspot.Subtotal, len(cfg.TestSpotAthleteIDs))
	for i, id := range cfg.TestSpotAthleteIDs {
		subtotals[i] = testspot.Subtotal{AthleteID: id, Points: athletePoints(meet, id)}
	}

	s.comparisons.Add(1)
	metrics.RecordTestSpotComparison()
	return testspot.Compare(subtotals, roster.ScorerID(cfg), s.teamTotal(meet, teamID)), nil
}

// SetScorer designates a new test-spot scorer for the team and re-runs
// aggregation over the stored results so the team totals reflect it.
func (s *Service) SetScorer(ctx context.Context, meetID, teamID, athleteID string) ([]standings.TeamScore, error) {
	unlock := s.locks.acquire(meetID)
	defer unlock()

	meet, err := s.store.GetMeet(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("set scorer: %w", err)
	}
	cfg, err := meet.Roster(teamID)
	if err != nil {
		return nil, fmt.Errorf("set scorer %s: %w", teamID, err)
	}
	if !slices.Contains(cfg.TestSpotAthleteIDs, athleteID) {
		return nil, fmt.Errorf("set scorer %s: %w: %s", teamID, roster.ErrNotCandidate, athleteID)
	}

	cfg.TestSpotScorerID = athleteID
	if err := s.store.UpdateRoster(ctx, meetID, cfg); err != nil {
		return nil, fmt.Errorf("set scorer: %w", err)
	}

	// Re-aggregate with the updated eligibility; entry points are unchanged.
	for i := range meet.Rosters {
		if meet.Rosters[i].TeamID == teamID {
			meet.Rosters[i] = cfg
		}
	}
	scores := standings.AggregateTeams(meet.Events, meet.Entries, meet.Relays, meet.Rosters)
	if err := s.store.ReplaceResults(ctx, meetID, meet.Entries, meet.Relays, scores, meet.Mode); err != nil {
		return nil, fmt.Errorf("set scorer: %w", err)
	}

	s.logger.Info(ctx, "test-spot scorer changed",
		logger.String("meetID", meetID),
		logger.String("teamID", teamID),
		logger.String("athleteID", athleteID),
	)
	return scores, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"rescores":    s.rescores.Load(),
		"projections": s.projections.Load(),
		"comparisons": s.comparisons.Load(),
	}
	if s.started {
		count := s.store.Count(context.Background())
		stats["meets"] = count
		metrics.UpdateMeetCount(count)
	}
	return stats
}

// teamTotal reads the team's last computed total, aggregating on the fly
// when no standings have been stored yet.
func (s *Service) teamTotal(meet repository.Meet, teamID string) float64 {
	scores := meet.Standings
	if len(scores) == 0 {
		scores = standings.AggregateTeams(meet.Events, meet.Entries, meet.Relays, meet.Rosters)
	}
	for _, sc := range scores {
		if sc.TeamID == teamID {
			return sc.Total
		}
	}
	return 0
}

// athletePoints sums the athlete's stored points across individual and
// diving entries.
func athletePoints(meet repository.Meet, athleteID string) float64 {
	var sum float64
	for _, e := range meet.Entries {
		if e.AthleteID == athleteID && e.Points != nil {
			sum += *e.Points
		}
	}
	return sum
}
