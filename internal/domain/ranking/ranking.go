// Package ranking turns one event's entries into places and points.
//
// This is the single ranking implementation for every scoring path
// (simulate, apply real results, rescore, what-if projections), so tie and
// cutoff semantics cannot drift between call sites.
package ranking

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/scoretable"
)

// TieTolerance is the maximum seconds difference under which two extracted
// times are indistinguishable. The same tolerance applies to diving scores;
// whether diving should use a coarser one is an open product question.
const TieTolerance = 0.001

// Entrant is anything the engine can place: entries and relay entries.
type Entrant interface {
	// ExtractSeconds applies the time-extraction policy of the entry:
	// authoritative final, else override, else seed, else parsed text, else 0.
	ExtractSeconds() float64

	// SetResult records the computed place and points.
	SetResult(place int, points float64)
}

// RankEvent sorts one event's entrants by extracted seconds (ascending for
// individual and relay, descending for diving), groups ties under
// TieTolerance, and annotates each entrant with a dense 1-based place and
// its points under table.
//
// A tie block of size k starting at place p occupies places p..p+k-1; every
// member receives place p and the mean of the table values for that block,
// with places beyond the cutoff contributing 0. Given unchanged inputs the
// pass is idempotent.
func RankEvent[E Entrant](entrants []E, category model.Category, table scoretable.Table) error {
	if !category.Valid() {
		return fmt.Errorf("rank event: %w: %q", ErrUnknownCategory, category)
	}
	if len(entrants) == 0 {
		return nil
	}

	ranked := slices.Clone(entrants)
	descending := category == model.CategoryDiving
	slices.SortStableFunc(ranked, func(a, b E) int {
		as, bs := a.ExtractSeconds(), b.ExtractSeconds()
		if descending {
			as, bs = bs, as
		}
		return cmp.Compare(as, bs)
	})

	place := 1
	for i := 0; i < len(ranked); {
		// Extend the tie block while consecutive times are indistinguishable.
		j := i + 1
		for j < len(ranked) && math.Abs(ranked[j].ExtractSeconds()-ranked[j-1].ExtractSeconds()) < TieTolerance {
			j++
		}

		size := j - i
		points := table.MeanPoints(place, size)
		for k := i; k < j; k++ {
			ranked[k].SetResult(place, points)
		}

		place += size
		i = j
	}
	return nil
}
