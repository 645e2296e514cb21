// Package scoretable defines place-to-points lookup tables.
package scoretable

import (
	"slices"

	"github.com/lanefour/meetscore/internal/domain/model"
)

// Table maps a 1-based place to the points it earns. Places beyond the
// scoring cutoff, or beyond the configured list, earn 0.
type Table struct {
	points []float64
	cutoff int
}

// New builds a Table from an ordered points list (index 0 = place 1) and a
// "places that score" cutoff.
func New(points []float64, cutoff int) Table {
	return Table{points: slices.Clone(points), cutoff: cutoff}
}

// PointsFor returns the points for a place, 0 beyond the cutoff or table.
func (t Table) PointsFor(place int) float64 {
	if place < 1 || place > t.cutoff || place > len(t.points) {
		return 0
	}
	return t.points[place-1]
}

// MeanPoints returns the arithmetic mean of the points for the contiguous
// place block [start, start+count). A tie block of size k occupying places
// p..p+k-1 awards this mean to every member.
func (t Table) MeanPoints(start, count int) float64 {
	if count <= 0 {
		return 0
	}
	var sum float64
	for p := start; p < start+count; p++ {
		sum += t.PointsFor(p)
	}
	return sum / float64(count)
}

// Cutoff returns the highest place number that earns any points.
func (t Table) Cutoff() int {
	return t.cutoff
}

// Len returns the number of configured places.
func (t Table) Len() int {
	return len(t.points)
}

// Set bundles one table per event category.
type Set struct {
	Individual Table
	Relay      Table
	Diving     Table
}

// ForCategory selects the table for a category. An empty diving table
// shares the individual table, the common meet-format convention.
func (s Set) ForCategory(c model.Category) Table {
	switch c {
	case model.CategoryRelay:
		return s.Relay
	case model.CategoryDiving:
		if s.Diving.Len() == 0 {
			return s.Individual
		}
		return s.Diving
	default:
		return s.Individual
	}
}
