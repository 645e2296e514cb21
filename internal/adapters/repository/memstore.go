package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/view"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemStore implements Store with an in-memory map. Snapshots are deep
// copied on the way in and out, so callers can never alias stored state.
type MemStore struct {
	mu    sync.RWMutex
	meets map[string]*Meet
	now   func() time.Time
}

// NewMemStore creates an empty in-memory meet store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		meets: make(map[string]*Meet),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMeet admits a snapshot, minting any missing IDs.
func (s *MemStore) CreateMeet(_ context.Context, meet Meet) (string, error) {
	m := meet.Clone()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	for _, e := range m.Entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
	}
	for _, r := range m.Relays {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.meets[m.ID]; exists {
		return "", fmt.Errorf("create meet %s: already exists", m.ID)
	}
	s.meets[m.ID] = &m
	return m.ID, nil
}

// GetMeet returns a deep copy of the snapshot.
func (s *MemStore) GetMeet(_ context.Context, id string) (Meet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meets[id]
	if !ok {
		return Meet{}, fmt.Errorf("get meet %s: %w", id, ErrMeetNotFound)
	}
	return m.Clone(), nil
}

// ReplaceResults swaps the meet's scored state wholesale.
func (s *MemStore) ReplaceResults(_ context.Context, id string, entries []*model.Entry, relays []*model.RelayEntry, scores []standings.TeamScore, mode view.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meets[id]
	if !ok {
		return fmt.Errorf("replace results %s: %w", id, ErrMeetNotFound)
	}

	next := m.Clone()
	next.Entries = make([]*model.Entry, len(entries))
	for i, e := range entries {
		next.Entries[i] = e.Clone()
	}
	next.Relays = make([]*model.RelayEntry, len(relays))
	for i, r := range relays {
		next.Relays[i] = r.Clone()
	}
	next.Standings = append([]standings.TeamScore(nil), scores...)
	next.Mode = mode
	next.ScoredAt = s.now()

	s.meets[id] = &next
	return nil
}

// UpdateRoster replaces one team's roster config.
func (s *MemStore) UpdateRoster(_ context.Context, meetID string, cfg model.TeamRosterConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meets[meetID]
	if !ok {
		return fmt.Errorf("update roster %s: %w", meetID, ErrMeetNotFound)
	}
	for i, existing := range m.Rosters {
		if existing.TeamID == cfg.TeamID {
			m.Rosters[i] = cfg.Clone()
			return nil
		}
	}
	return fmt.Errorf("update roster %s team %s: %w", meetID, cfg.TeamID, ErrTeamNotFound)
}

// Count returns the number of meets held.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meets)
}
