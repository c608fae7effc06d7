package router

// entry is one valid route in a normalized table: the index of the route in
// the original configuration and its normalized weight.
type entry struct {
	index  int
	weight float64
}

// Table is the normalized probability distribution over a route list for one
// evaluation. Entries keep the original input order (tie-breaking in sampling
// relies on it) and their weights sum to 100 whenever at least one valid
// entry exists. A Table is built once per evaluation and never mutated.
type Table struct {
	entries []entry
	hasElse bool
}

// BuildTable validates and normalizes routes into a Table:
//
//  1. Rows whose weight cannot be coerced to a finite number are filtered
//     out; coercible values are clamped to [0, 100].
//  2. Zero valid rows yield an empty table.
//  3. An all-zero total distributes weight equally: "all routes at 0%" means
//     "no preference expressed", not "never select".
//  4. Otherwise every weight is rescaled to weight/total*100.
//
// BuildTable never fails; malformed input degrades to an empty or
// equal-weight table rather than aborting the evaluation.
func BuildTable(routes []Route, hasElse bool) Table {
	t := Table{hasElse: hasElse}

	total := 0.0
	for i, route := range routes {
		w, ok := coerceWeight(route.Weight)
		if !ok {
			continue
		}
		if w < 0 {
			w = 0
		} else if w > 100 {
			w = 100
		}
		total += w
		t.entries = append(t.entries, entry{index: i, weight: w})
	}

	if len(t.entries) == 0 {
		return t
	}

	if total == 0 {
		equal := 100.0 / float64(len(t.entries))
		for i := range t.entries {
			t.entries[i].weight = equal
		}
		return t
	}

	for i := range t.entries {
		t.entries[i].weight = t.entries[i].weight / total * 100
	}
	return t
}

// Empty reports whether no valid route survived normalization.
func (t Table) Empty() bool {
	return len(t.entries) == 0
}

// Len returns the number of valid entries.
func (t Table) Len() int {
	return len(t.entries)
}

// HasElse reports whether the catch-all branch is enabled.
func (t Table) HasElse() bool {
	return t.hasElse
}

// Weights returns the normalized weights in table order, for diagnostics.
func (t Table) Weights() []float64 {
	ws := make([]float64, len(t.entries))
	for i, e := range t.entries {
		ws[i] = e.weight
	}
	return ws
}

// RouteIndex returns the original configuration index of the i-th entry.
func (t Table) RouteIndex(i int) int {
	return t.entries[i].index
}
