package runtime

import (
	"context"
	"fmt"
	"testing"
)

// stubComponent is a minimal Component for registry tests. It echoes its
// input on a single output.
type stubComponent struct {
	name string
}

func (s *stubComponent) OutputNames() []string {
	return []string{"out"}
}

func (s *stubComponent) Output(eval *Evaluation, name string, input Payload) (Output, error) {
	if name != "out" {
		return Suppress(), nil
	}
	return Activate(input), nil
}

// lifecycleComponent records lifecycle calls into a shared journal.
type lifecycleComponent struct {
	stubComponent
	id          string
	journal     *[]string
	initErr     error
	shutdownErr error
}

func (l *lifecycleComponent) Initialize(ctx context.Context) error {
	*l.journal = append(*l.journal, "init:"+l.id)
	return l.initErr
}

func (l *lifecycleComponent) Shutdown(ctx context.Context) error {
	*l.journal = append(*l.journal, "stop:"+l.id)
	return l.shutdownErr
}

func TestContainer_RegisterAndGet(t *testing.T) {
	c := NewContainer()

	comp := &stubComponent{name: "echo"}
	if err := c.Register("echo", comp); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got := c.Get("echo"); got != comp {
		t.Errorf("expected registered component back, got %v", got)
	}
	if got := c.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown component, got %v", got)
	}
}

func TestContainer_RegisterRejectsNilAndDuplicates(t *testing.T) {
	c := NewContainer()

	if err := c.Register("bad", nil); err == nil {
		t.Errorf("expected error for nil component")
	}

	if err := c.Register("dup", &stubComponent{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Register("dup", &stubComponent{}); err == nil {
		t.Errorf("expected error for duplicate registration")
	}
}

func TestContainer_NamesInRegistrationOrder(t *testing.T) {
	c := NewContainer()
	for _, name := range []string{"c", "a", "b"} {
		if err := c.Register(name, &stubComponent{}); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}

	names := c.Names()
	want := []string{"c", "a", "b"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestContainer_LifecycleOrder(t *testing.T) {
	c := NewContainer()
	var journal []string

	for _, id := range []string{"one", "two"} {
		if err := c.Register(id, &lifecycleComponent{id: id, journal: &journal}); err != nil {
			t.Fatalf("Register(%s) failed: %v", id, err)
		}
	}
	// Non-lifecycle components are ignored by Initialize/Shutdown.
	if err := c.Register("plain", &stubComponent{}); err != nil {
		t.Fatalf("Register(plain) failed: %v", err)
	}

	ctx := context.Background()
	if err := c.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	want := []string{"init:one", "init:two", "stop:two", "stop:one"}
	if len(journal) != len(want) {
		t.Fatalf("expected journal %v, got %v", want, journal)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Errorf("journal[%d]: expected %q, got %q", i, want[i], journal[i])
		}
	}
}

func TestContainer_InitializeFailsFast(t *testing.T) {
	c := NewContainer()
	var journal []string

	c.Register("one", &lifecycleComponent{id: "one", journal: &journal, initErr: fmt.Errorf("boom")})
	c.Register("two", &lifecycleComponent{id: "two", journal: &journal})

	if err := c.Initialize(context.Background()); err == nil {
		t.Fatalf("expected initialization error")
	}
	for _, entry := range journal {
		if entry == "init:two" {
			t.Errorf("expected fail-fast before second component")
		}
	}
}

func TestContainer_ShutdownCollectsErrors(t *testing.T) {
	c := NewContainer()
	var journal []string

	c.Register("one", &lifecycleComponent{id: "one", journal: &journal, shutdownErr: fmt.Errorf("boom")})
	c.Register("two", &lifecycleComponent{id: "two", journal: &journal})

	if err := c.Shutdown(context.Background()); err == nil {
		t.Fatalf("expected shutdown error surfaced")
	}

	// Both components still got their Shutdown call.
	want := map[string]bool{"stop:one": false, "stop:two": false}
	for _, entry := range journal {
		want[entry] = true
	}
	for entry, seen := range want {
		if !seen {
			t.Errorf("expected %q in journal %v", entry, journal)
		}
	}
}
