package runtime

// Output is the verdict a component returns for one named output within an
// evaluation. Active=false is an explicit suppression signal: the host must
// prune everything downstream of that edge, not evaluate it with an empty
// value.
type Output struct {
	Payload Payload
	Active  bool
}

// Activate builds an active verdict carrying p.
func Activate(p Payload) Output {
	return Output{Payload: p, Active: true}
}

// Suppress builds the suppression verdict.
func Suppress() Output {
	return Output{}
}

// Component is one node implementation. The host engine asks it for each
// declared output, one at a time, in unspecified order, all within the same
// Evaluation. Implementations must give consistent answers under any call
// order: decisions made on the first call are memoized on the Evaluation.
type Component interface {
	// OutputNames lists the outputs in declaration order. For components
	// with configurable branches the list follows the configured order.
	OutputNames() []string

	// Output computes the verdict for one named output. input is the
	// pass-through payload arriving at the node. Unknown names yield a
	// suppressed output, not an error.
	Output(eval *Evaluation, name string, input Payload) (Output, error)
}
