// Package model contains domain models passed between layers.
package model

import (
	"slices"

	"github.com/lanefour/meetscore/internal/domain/timecode"
)

// Category classifies an event for scoring purposes.
type Category string

// Event categories.
const (
	CategoryIndividual Category = "individual"
	CategoryRelay      Category = "relay"
	CategoryDiving     Category = "diving"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryIndividual, CategoryRelay, CategoryDiving:
		return true
	default:
		return false
	}
}

// Event identifies one contested event of a meet. Immutable once created.
type Event struct {
	ID       string
	Name     string
	Category Category
	Order    int // display order within the meet program
}

// Entry is one athlete's participation record in an individual or diving
// event. Place, Points and the authoritative flag are overwritten wholesale
// on every scoring pass, never patched incrementally.
type Entry struct {
	ID        string
	AthleteID string
	TeamID    string
	EventID   string

	// SeedTime holds the time-or-score text as entered ("4:15.00", "310.5").
	// The numeric fields take precedence over it when set.
	SeedTime        string
	SeedSeconds     *float64
	OverrideSeconds *float64
	FinalSeconds    *float64

	Place  *int
	Points *float64

	// RealResultApplied marks place/points/final time as coming from an
	// externally supplied official result rather than a simulation pass.
	RealResultApplied bool
}

// ExtractSeconds applies the time-extraction policy: authoritative final
// time, else override, else seed seconds, else the time codec over the seed
// text, else 0.
func (e *Entry) ExtractSeconds() float64 {
	switch {
	case e.FinalSeconds != nil:
		return *e.FinalSeconds
	case e.OverrideSeconds != nil:
		return *e.OverrideSeconds
	case e.SeedSeconds != nil:
		return *e.SeedSeconds
	default:
		return timecode.ToSeconds(e.SeedTime)
	}
}

// SetResult records a simulated place and points.
func (e *Entry) SetResult(place int, points float64) {
	e.Place = &place
	e.Points = &points
}

// ClearResult resets the entry to unscored, dropping any authoritative data.
func (e *Entry) ClearResult() {
	e.Place = nil
	e.Points = nil
	e.FinalSeconds = nil
	e.RealResultApplied = false
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	c.SeedSeconds = cloneFloat(e.SeedSeconds)
	c.OverrideSeconds = cloneFloat(e.OverrideSeconds)
	c.FinalSeconds = cloneFloat(e.FinalSeconds)
	c.Place = cloneInt(e.Place)
	c.Points = cloneFloat(e.Points)
	return &c
}

// RelayEntry is one team's participation record in a relay event. The
// member roster is informational; ranking never reads it.
type RelayEntry struct {
	ID      string
	TeamID  string
	EventID string

	SeedTime        string
	SeedSeconds     *float64
	OverrideSeconds *float64
	FinalSeconds    *float64

	Place  *int
	Points *float64

	RealResultApplied bool

	AthleteIDs []string
}

// ExtractSeconds applies the same time-extraction policy as Entry.
func (r *RelayEntry) ExtractSeconds() float64 {
	switch {
	case r.FinalSeconds != nil:
		return *r.FinalSeconds
	case r.OverrideSeconds != nil:
		return *r.OverrideSeconds
	case r.SeedSeconds != nil:
		return *r.SeedSeconds
	default:
		return timecode.ToSeconds(r.SeedTime)
	}
}

// SetResult records a simulated place and points.
func (r *RelayEntry) SetResult(place int, points float64) {
	r.Place = &place
	r.Points = &points
}

// ClearResult resets the relay entry to unscored.
func (r *RelayEntry) ClearResult() {
	r.Place = nil
	r.Points = nil
	r.FinalSeconds = nil
	r.RealResultApplied = false
}

// Clone returns a deep copy of the relay entry.
func (r *RelayEntry) Clone() *RelayEntry {
	c := *r
	c.SeedSeconds = cloneFloat(r.SeedSeconds)
	c.OverrideSeconds = cloneFloat(r.OverrideSeconds)
	c.FinalSeconds = cloneFloat(r.FinalSeconds)
	c.Place = cloneInt(r.Place)
	c.Points = cloneFloat(r.Points)
	c.AthleteIDs = slices.Clone(r.AthleteIDs)
	return &c
}

// TeamRosterConfig captures which of a team's athletes count toward its
// total: the selected pool, test-spot candidates with one designated
// scorer, and always-excluded exhibition athletes. ID sets are first-class
// typed collections, not encoded blobs.
type TeamRosterConfig struct {
	TeamID string

	SelectedAthletes     []string
	TestSpotAthleteIDs   []string
	TestSpotScorerID     string
	ExhibitionAthleteIDs []string

	// Last-requested sensitivity projection for this team, if any.
	SensitivityAthleteID string
	SensitivityPct       float64
}

// Clone returns a deep copy of the roster config.
func (t TeamRosterConfig) Clone() TeamRosterConfig {
	c := t
	c.SelectedAthletes = slices.Clone(t.SelectedAthletes)
	c.TestSpotAthleteIDs = slices.Clone(t.TestSpotAthleteIDs)
	c.ExhibitionAthleteIDs = slices.Clone(t.ExhibitionAthleteIDs)
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
