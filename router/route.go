// Package router implements the Random Router: a node component that fires
// exactly one of its configured output branches per evaluation, chosen at
// random according to configured percentage weights, and suppresses all
// others.
package router

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Route is one configured branch of a Random Router node.
type Route struct {
	// Name identifies the output branch. Duplicate names are allowed and
	// treated as independent entries, never merged.
	Name string `yaml:"name" json:"name"`

	// Weight is the raw configured percentage, semantically in [0, 100].
	// It arrives from UI table rows or YAML and may be a float, an int, a
	// numeric string, or garbage; coercion and clamping happen at table
	// build time.
	Weight any `yaml:"weight" json:"weight"`

	// Override, when meaningful, is emitted verbatim as the branch payload
	// instead of the pass-through input. Blank or "none" means unset.
	Override string `yaml:"override" json:"override"`
}

// Config is the Random Router node configuration, supplied by the host
// before each evaluation. It may change between evaluations.
type Config struct {
	Routes []Route `yaml:"routes" json:"routes"`

	// EnableElse toggles the catch-all output, active only when no valid
	// route exists to select.
	EnableElse bool `yaml:"enable_else" json:"enable_else"`
}

// coerceWeight converts a raw configured weight to a finite float64.
// Anything that does not coerce is reported as invalid, never as an error:
// a broken row degrades to "filtered out".
func coerceWeight(v any) (float64, bool) {
	var w float64
	switch n := v.(type) {
	case float64:
		w = n
	case float32:
		w = float64(n)
	case int:
		w = float64(n)
	case int8:
		w = float64(n)
	case int16:
		w = float64(n)
	case int32:
		w = float64(n)
	case int64:
		w = float64(n)
	case uint:
		w = float64(n)
	case uint8:
		w = float64(n)
	case uint16:
		w = float64(n)
	case uint32:
		w = float64(n)
	case uint64:
		w = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		w = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		w = f
	default:
		return 0, false
	}

	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, false
	}
	return w, true
}
