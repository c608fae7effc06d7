package router

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/flowgrid/components/runtime"
)

// ElseOutputName is the reserved name of the catch-all output.
const ElseOutputName = "else"

// Dispatcher orchestrates one-shot route selection for a Random Router node.
// The Dispatcher itself holds only configuration and collaborators; every
// per-invocation decision lives on the Evaluation, so one Dispatcher can
// serve any number of sequential or parallel evaluations.
//
// Contract per Evaluation: the first output accessor call builds the route
// table and, if the table is non-empty, samples exactly once. Every later
// call within the same Evaluation reads that cached decision, so the host can
// query outputs in any order and exactly one branch fires.
type Dispatcher struct {
	cfg Config
	rng RandomSource
	l   *slog.Logger
}

// New builds a Dispatcher for cfg. A nil rng falls back to the system
// source, a nil logger to slog.Default().
func New(cfg Config, rng RandomSource, l *slog.Logger) *Dispatcher {
	if rng == nil {
		rng = SystemSource()
	}
	if l == nil {
		l = slog.Default()
	}
	return &Dispatcher{cfg: cfg, rng: rng, l: l}
}

// Config returns the dispatcher's configuration.
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// dispatchState is the memoized outcome of the single selection made within
// one Evaluation.
type dispatchState struct {
	table     Table
	selection Selection
}

type memoKeyType struct{}

// memoKey keys the dispatch state on the Evaluation memo.
var memoKey memoKeyType

// state returns the dispatch state for eval, performing the selection on the
// first call and reading the cache on every later one.
func (d *Dispatcher) state(eval *runtime.Evaluation) *dispatchState {
	if v, ok := eval.Memo(memoKey); ok {
		return v.(*dispatchState)
	}

	st := &dispatchState{
		table:     BuildTable(d.cfg.Routes, d.cfg.EnableElse),
		selection: Selection{Index: -1},
	}
	if !st.table.Empty() {
		st.selection = Sample(st.table, d.rng)
	}
	eval.SetMemo(memoKey, st)

	switch {
	case len(d.cfg.Routes) == 0:
		eval.SetStatus("No routes configured")
		d.l.InfoContext(eval, "No routes configured", "evaluation", eval.ID)
	case st.selection.None():
		if d.cfg.EnableElse {
			eval.SetStatus("No route selected - routing to Else output")
		} else {
			eval.SetStatus("No route selected and Else output is disabled")
		}
		d.l.InfoContext(eval, "No valid routes to select",
			"evaluation", eval.ID,
			"configured", len(d.cfg.Routes),
			"else_enabled", d.cfg.EnableElse)
	default:
		name := d.cfg.Routes[st.selection.Index].Name
		eval.SetStatus(fmt.Sprintf("Selected: %s", name))
		d.l.InfoContext(eval, "Random selection",
			"evaluation", eval.ID,
			"route", name,
			"index", st.selection.Index,
			"draw", st.selection.Draw)
	}

	return st
}

// RouteOutput returns the verdict for the output named name. Active exactly
// when the selected route carries that name; with duplicate names the
// accessor fires if any of its indexes was the selected one.
func (d *Dispatcher) RouteOutput(eval *runtime.Evaluation, name string, passthrough runtime.Payload) runtime.Output {
	st := d.state(eval)
	if st.selection.None() {
		return runtime.Suppress()
	}

	selected := d.cfg.Routes[st.selection.Index]
	if selected.Name != name {
		return runtime.Suppress()
	}

	return runtime.Activate(routePayload(selected, passthrough))
}

// RouteOutputAt returns the verdict for the output at configuration index
// index, for hosts that render outputs positionally. Out-of-range indexes
// yield a suppressed output.
func (d *Dispatcher) RouteOutputAt(eval *runtime.Evaluation, index int, passthrough runtime.Payload) runtime.Output {
	st := d.state(eval)
	if index < 0 || index >= len(d.cfg.Routes) {
		return runtime.Suppress()
	}
	if st.selection.None() || st.selection.Index != index {
		return runtime.Suppress()
	}

	return runtime.Activate(routePayload(d.cfg.Routes[index], passthrough))
}

// ElseOutput returns the verdict for the catch-all output. It is active only
// when the catch-all is enabled, at least one route is configured, and no
// route could be selected. If a route was selected it is always inactive,
// regardless of call order.
func (d *Dispatcher) ElseOutput(eval *runtime.Evaluation, passthrough runtime.Payload) runtime.Output {
	st := d.state(eval)
	if !d.cfg.EnableElse || len(d.cfg.Routes) == 0 {
		return runtime.Suppress()
	}
	if !st.selection.None() {
		return runtime.Suppress()
	}

	return runtime.Activate(passthrough)
}

// Selection exposes the cached selection for eval, performing it first if
// needed. Diagnostics only.
func (d *Dispatcher) Selection(eval *runtime.Evaluation) Selection {
	return d.state(eval).selection
}

// OutputNames implements runtime.Component: the configured route names in
// order, plus the catch-all when enabled.
func (d *Dispatcher) OutputNames() []string {
	names := make([]string, 0, len(d.cfg.Routes)+1)
	for _, r := range d.cfg.Routes {
		names = append(names, r.Name)
	}
	if d.cfg.EnableElse {
		names = append(names, ElseOutputName)
	}
	return names
}

// Output implements runtime.Component.
func (d *Dispatcher) Output(eval *runtime.Evaluation, name string, input runtime.Payload) (runtime.Output, error) {
	if name == ElseOutputName && d.cfg.EnableElse {
		return d.ElseOutput(eval, input), nil
	}
	return d.RouteOutput(eval, name, input), nil
}

// routePayload resolves a selected route's payload: the override verbatim
// when it is non-blank and not the "none" sentinel, otherwise the
// pass-through input.
func routePayload(route Route, passthrough runtime.Payload) runtime.Payload {
	trimmed := strings.TrimSpace(route.Override)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return passthrough
	}
	return runtime.TextPayload(route.Override)
}
