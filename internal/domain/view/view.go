// Package view composes per-event results for the three meet views:
// simulated, real, and hybrid.
package view

import (
	"fmt"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/ranking"
	"github.com/lanefour/meetscore/internal/domain/scoretable"
)

// Mode selects how authoritative results and simulation are blended.
type Mode string

// View modes.
const (
	// ModeSimulated ignores authoritative flags and ranks every event from
	// seed and override times.
	ModeSimulated Mode = "simulated"
	// ModeReal keeps only authoritative results; everything else is cleared
	// to unscored.
	ModeReal Mode = "real"
	// ModeHybrid treats any event holding at least one authoritative entry
	// or relay as real and simulates the rest.
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSimulated, ModeReal, ModeHybrid:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("parse mode: %w: %q", ErrUnknownMode, s)
	}
}

// Composition is a fully scored copy of a meet's entry set under one mode.
type Composition struct {
	Entries []*model.Entry
	Relays  []*model.RelayEntry
}

// Compose produces a scored Composition for mode. Inputs are deep-copied:
// the caller's entries are never mutated, and place/points/authoritative
// flags in the result are rewritten wholesale.
//
// Events whose results are entirely satisfied by authoritative data are
// skipped; every event that still needs computing goes through the one
// ranking engine.
func Compose(mode Mode, events []model.Event, entries []*model.Entry, relays []*model.RelayEntry, tables scoretable.Set) (Composition, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return Composition{}, err
	}

	comp := Composition{
		Entries: make([]*model.Entry, len(entries)),
		Relays:  make([]*model.RelayEntry, len(relays)),
	}
	entriesByEvent := make(map[string][]*model.Entry)
	relaysByEvent := make(map[string][]*model.RelayEntry)
	authoritative := make(map[string]bool)

	for i, e := range entries {
		c := e.Clone()
		comp.Entries[i] = c
		entriesByEvent[c.EventID] = append(entriesByEvent[c.EventID], c)
		if c.RealResultApplied {
			authoritative[c.EventID] = true
		}
	}
	for i, r := range relays {
		c := r.Clone()
		comp.Relays[i] = c
		relaysByEvent[c.EventID] = append(relaysByEvent[c.EventID], c)
		if c.RealResultApplied {
			authoritative[c.EventID] = true
		}
	}

	for _, ev := range events {
		real := mode == ModeReal || (mode == ModeHybrid && authoritative[ev.ID])
		if real {
			// Authoritative results stand as-is; everything else in the
			// event is cleared to unscored.
			for _, e := range entriesByEvent[ev.ID] {
				if !e.RealResultApplied {
					e.ClearResult()
				}
			}
			for _, r := range relaysByEvent[ev.ID] {
				if !r.RealResultApplied {
					r.ClearResult()
				}
			}
			continue
		}

		// Simulated event: drop any authoritative data, then rank from
		// seed and override times.
		for _, e := range entriesByEvent[ev.ID] {
			e.ClearResult()
		}
		for _, r := range relaysByEvent[ev.ID] {
			r.ClearResult()
		}

		table := tables.ForCategory(ev.Category)
		if ev.Category == model.CategoryRelay {
			if err := ranking.RankEvent(relaysByEvent[ev.ID], ev.Category, table); err != nil {
				return Composition{}, fmt.Errorf("compose %s view: %w", mode, err)
			}
			continue
		}
		if err := ranking.RankEvent(entriesByEvent[ev.ID], ev.Category, table); err != nil {
			return Composition{}, fmt.Errorf("compose %s view: %w", mode, err)
		}
	}

	return comp, nil
}
