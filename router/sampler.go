package router

import "math/rand"

// RandomSource supplies uniform draws to the sampler. It is an interface so
// tests can inject deterministic sources; production uses the process-level
// generator.
type RandomSource interface {
	// Uniform returns a draw in [lo, hi).
	Uniform(lo, hi float64) float64
}

type systemSource struct{}

func (systemSource) Uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// SystemSource returns the production RandomSource backed by the
// process-level uniform generator.
func SystemSource() RandomSource {
	return systemSource{}
}

// Selection is the outcome of one sampler draw: created exactly once per
// evaluation, cached for the remainder of that evaluation, never recomputed.
type Selection struct {
	// Index is the original configuration index of the selected route,
	// or -1 when no valid route exists.
	Index int

	// Draw is the raw uniform sample in [0, 100), retained for
	// diagnostics and testing.
	Draw float64
}

// None reports whether no route was selected.
func (s Selection) None() bool {
	return s.Index < 0
}

// Sample maps one uniform draw to a table entry using cumulative-weight
// intervals: the first entry whose cumulative weight reaches the draw wins.
// Entries are walked in table order, so equal-weight ties resolve to the
// earlier configured route.
//
// If floating-point drift leaves no entry satisfying the condition (possible
// only at the exact upper boundary), the last entry is selected. Every draw
// in [0, 100) therefore yields exactly one route when the table is non-empty.
func Sample(t Table, rng RandomSource) Selection {
	if t.Empty() {
		return Selection{Index: -1}
	}

	r := rng.Uniform(0, 100)

	cumulative := 0.0
	for _, e := range t.entries {
		cumulative += e.weight
		if r <= cumulative {
			return Selection{Index: e.index, Draw: r}
		}
	}

	// Closed-interval fallback.
	return Selection{Index: t.entries[len(t.entries)-1].index, Draw: r}
}
