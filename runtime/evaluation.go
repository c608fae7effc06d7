package runtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var _ context.Context = &Evaluation{}

// Evaluation is the lifetime boundary of one node execution. The host engine
// constructs one Evaluation per node invocation, reads every output through
// it, and discards it afterwards. All per-invocation component state (memoized
// dispatch decisions, shared values) lives here, never on the component
// instance, so unrelated evaluations can never leak state into each other.
//
// An Evaluation is strictly sequential: the host calls output accessors one
// at a time, in unspecified order. It must not be shared across goroutines;
// parallel evaluations each get their own Evaluation.
type Evaluation struct {
	ID     string
	Store  *ValueStore
	status string
	memo   map[any]any
	ctx    context.Context // real context carrying deadline/cancellation
}

func NewEvaluation() *Evaluation {
	return &Evaluation{
		ID:    uuid.New().String(),
		Store: NewValueStore(),
		memo:  make(map[any]any),
		ctx:   context.Background(),
	}
}

// context.Context implementation. Delegates to the embedded ctx so that
// host-side timeouts and cancellations propagate through slog and any
// component performing blocking work (Wait, HTTP calls).

func (e *Evaluation) Deadline() (deadline time.Time, ok bool) {
	return e.ctx.Deadline()
}

func (e *Evaluation) Done() <-chan struct{} {
	return e.ctx.Done()
}

func (e *Evaluation) Err() error {
	return e.ctx.Err()
}

func (e *Evaluation) Value(key any) any {
	k, ok := key.(string)
	if !ok {
		return e.ctx.Value(key)
	}

	v, _ := e.Store.Get(k)
	return v
}

// WithContext returns a shallow copy of the Evaluation with a new embedded
// context. Use this to apply a per-invocation deadline without mutating the
// original. Mirrors the http.Request.WithContext pattern. The copy shares
// the memo map and ValueStore, so outputs read through the copy observe the
// same one-shot decisions.
func (e *Evaluation) WithContext(ctx context.Context) *Evaluation {
	if ctx == nil {
		ctx = context.Background()
	}
	clone := *e
	clone.ctx = ctx
	return &clone
}

// Memo returns per-evaluation component state stored under key.
// Components key their state with unexported types so entries cannot collide.
func (e *Evaluation) Memo(key any) (any, bool) {
	v, ok := e.memo[key]
	return v, ok
}

// SetMemo stores per-evaluation component state under key. Stored values
// survive for the remainder of the evaluation; they are never recomputed
// even if the same accessor is called again.
func (e *Evaluation) SetMemo(key, value any) {
	e.memo[key] = value
}

// SetStatus records a human-readable line describing what the component
// decided ("Selected: Route A", "No routes configured"). Advisory only:
// hosts surface it for observability, nothing may branch on it.
func (e *Evaluation) SetStatus(status string) {
	e.status = status
}

func (e *Evaluation) Status() string {
	return e.status
}
