// Package repository defines the meet snapshot store interface and errors.
//
// The scoring core is storage-free: it computes over an explicit in-memory
// snapshot of a meet. The store owns those snapshots and guarantees that a
// full rescore is visible atomically — results and team totals swap
// wholesale, never partially.
package repository

import (
	"context"
	"time"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/view"
)

// Meet is one meet's full snapshot: program, entries, rosters, and the
// last computed results.
type Meet struct {
	ID      string
	Name    string
	Events  []model.Event
	Entries []*model.Entry
	Relays  []*model.RelayEntry
	Rosters []model.TeamRosterConfig

	// Last scoring pass, replaced wholesale by ReplaceResults.
	Standings []standings.TeamScore
	Mode      view.Mode
	ScoredAt  time.Time
}

// Clone returns a deep copy of the meet snapshot.
func (m Meet) Clone() Meet {
	c := m
	c.Events = append([]model.Event(nil), m.Events...)
	c.Entries = make([]*model.Entry, len(m.Entries))
	for i, e := range m.Entries {
		c.Entries[i] = e.Clone()
	}
	c.Relays = make([]*model.RelayEntry, len(m.Relays))
	for i, r := range m.Relays {
		c.Relays[i] = r.Clone()
	}
	c.Rosters = make([]model.TeamRosterConfig, len(m.Rosters))
	for i, cfg := range m.Rosters {
		c.Rosters[i] = cfg.Clone()
	}
	c.Standings = append([]standings.TeamScore(nil), m.Standings...)
	return c
}

// Roster returns the roster config for a team, or ErrTeamNotFound.
func (m Meet) Roster(teamID string) (model.TeamRosterConfig, error) {
	for _, cfg := range m.Rosters {
		if cfg.TeamID == teamID {
			return cfg, nil
		}
	}
	return model.TeamRosterConfig{}, ErrTeamNotFound
}

// Store provides read/write access to meet snapshots.
type Store interface {
	// CreateMeet admits a snapshot, minting IDs for the meet and for any
	// entry that lacks one. Returns the meet ID.
	CreateMeet(ctx context.Context, meet Meet) (string, error)

	// GetMeet returns a deep copy of the snapshot, or ErrMeetNotFound.
	GetMeet(ctx context.Context, id string) (Meet, error)

	// ReplaceResults atomically swaps the meet's scored entries, relays,
	// standings, and view mode. A failed pass leaves the previous results
	// fully intact.
	ReplaceResults(ctx context.Context, id string, entries []*model.Entry, relays []*model.RelayEntry, scores []standings.TeamScore, mode view.Mode) error

	// UpdateRoster replaces one team's roster config.
	UpdateRoster(ctx context.Context, meetID string, cfg model.TeamRosterConfig) error

	// Count returns the number of meets held.
	Count(ctx context.Context) int
}
