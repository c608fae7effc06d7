// Package logic contains flow-control components: branch routing on text
// comparison or expressions, delays, and per-process variables.
package logic

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/flowgrid/components/runtime"
)

// Comparison operators for the Conditional Router.
const (
	OpEquals     = "equals"
	OpNotEquals  = "not_equals"
	OpContains   = "contains"
	OpStartsWith = "starts_with"
	OpEndsWith   = "ends_with"
	OpRegex      = "regex"
	OpExpression = "expression"
)

// ElseOutputName is the catch-all output of the Conditional Router. Unlike
// the Random Router it is always declared: a conditional with no matching
// case must still route somewhere.
const ElseOutputName = "else"

// Case is one configured branch: a label (used as the output name) and the
// value the input is compared against. In expression mode Value is an
// expression evaluated against the input payload.
type Case struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// ConditionalConfig configures a Conditional Router node.
type ConditionalConfig struct {
	Operator      string `yaml:"operator" default:"equals" validate:"oneof=equals not_equals contains starts_with ends_with regex expression"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	Cases         []Case `yaml:"cases"`
}

// Conditional routes an input to the first case whose condition matches and
// suppresses all other outputs, falling through to the catch-all when
// nothing matches. Like the Random Router, the decision is made once per
// Evaluation and every accessor reads the memoized result.
type Conditional struct {
	cfg ConditionalConfig
	l   *slog.Logger

	// Compiled expressions, cached across evaluations.
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func NewConditional(cfg ConditionalConfig, l *slog.Logger) *Conditional {
	if l == nil {
		l = slog.Default()
	}
	return &Conditional{
		cfg:      cfg,
		l:        l,
		programs: make(map[string]*vm.Program),
	}
}

type condMemoKey struct{}

type condState struct {
	matched int // index into cfg.Cases, -1 when nothing matched
}

func (c *Conditional) state(eval *runtime.Evaluation, input runtime.Payload) *condState {
	if v, ok := eval.Memo(condMemoKey{}); ok {
		return v.(*condState)
	}

	st := &condState{matched: -1}
	for i, cs := range c.cfg.Cases {
		if cs.Value == "" {
			continue
		}
		if c.matches(eval, cs.Value, input) {
			st.matched = i
			break
		}
	}
	eval.SetMemo(condMemoKey{}, st)

	if st.matched >= 0 {
		eval.SetStatus(fmt.Sprintf("Matched %s", c.cfg.Cases[st.matched].Label))
	} else {
		eval.SetStatus("Routed to Else (no match)")
	}

	return st
}

func (c *Conditional) matches(eval *runtime.Evaluation, value string, input runtime.Payload) bool {
	if c.cfg.Operator == OpExpression {
		return c.matchExpression(eval, value, input)
	}

	text := input.Text()
	match := value
	if !c.cfg.CaseSensitive && c.cfg.Operator != OpRegex {
		text = strings.ToLower(text)
		match = strings.ToLower(match)
	}

	switch c.cfg.Operator {
	case OpEquals:
		return text == match
	case OpNotEquals:
		return text != match
	case OpContains:
		return strings.Contains(text, match)
	case OpStartsWith:
		return strings.HasPrefix(text, match)
	case OpEndsWith:
		return strings.HasSuffix(text, match)
	case OpRegex:
		matched, err := regexp.MatchString(value, input.Text())
		if err != nil {
			c.l.WarnContext(eval, "Invalid regex in case value",
				"pattern", value,
				"error", err)
			return false
		}
		return matched
	default:
		return false
	}
}

// matchExpression evaluates a case expression with the input payload in
// scope: `input` is the text form, `data` the structured form.
func (c *Conditional) matchExpression(eval *runtime.Evaluation, expression string, input runtime.Payload) bool {
	env := map[string]any{
		"input": input.Text(),
		"data":  input.Map(),
	}

	program, err := c.program(expression, env)
	if err != nil {
		c.l.WarnContext(eval, "Failed to compile case expression",
			"expression", expression,
			"error", err)
		return false
	}

	result, err := expr.Run(program, env)
	if err != nil {
		c.l.WarnContext(eval, "Failed to evaluate case expression",
			"expression", expression,
			"error", err)
		return false
	}

	switch v := result.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		c.l.WarnContext(eval, "Case expression returned non-boolean",
			"expression", expression,
			"result_type", fmt.Sprintf("%T", result))
		return false
	}
}

func (c *Conditional) program(expression string, env map[string]any) (*vm.Program, error) {
	c.mu.RLock()
	program, ok := c.programs[expression]
	c.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.programs[expression] = program
	c.mu.Unlock()
	return program, nil
}

// OutputNames implements runtime.Component: case labels in order, plus the
// always-present catch-all.
func (c *Conditional) OutputNames() []string {
	names := make([]string, 0, len(c.cfg.Cases)+1)
	for _, cs := range c.cfg.Cases {
		names = append(names, cs.Label)
	}
	return append(names, ElseOutputName)
}

// Output implements runtime.Component. The matched case forwards the input
// unchanged; everything else is suppressed. The catch-all fires only when no
// case matched.
func (c *Conditional) Output(eval *runtime.Evaluation, name string, input runtime.Payload) (runtime.Output, error) {
	st := c.state(eval, input)

	if name == ElseOutputName {
		if st.matched < 0 {
			return runtime.Activate(input), nil
		}
		return runtime.Suppress(), nil
	}

	if st.matched >= 0 && c.cfg.Cases[st.matched].Label == name {
		return runtime.Activate(input), nil
	}
	return runtime.Suppress(), nil
}
