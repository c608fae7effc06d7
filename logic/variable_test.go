package logic

import (
	"testing"
	"time"

	"github.com/flowgrid/components/runtime"
)

func TestVariable_WriteThenRead(t *testing.T) {
	store := NewSharedStore()

	write := NewVariable(VariableConfig{Operation: VarWrite, Name: "region", Value: "eu-west"}, store, testLogger())
	out, err := write.Output(runtime.NewEvaluation(), VariableOutputName, runtime.Payload{})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if out.Payload.Text() != "eu-west" {
		t.Errorf("expected written value echoed, got %q", out.Payload.Text())
	}

	read := NewVariable(VariableConfig{Operation: VarRead, Name: "region"}, store, testLogger())
	out, err = read.Output(runtime.NewEvaluation(), VariableOutputName, runtime.Payload{})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out.Payload.Text() != "eu-west" {
		t.Errorf("expected eu-west, got %q", out.Payload.Text())
	}
}

func TestVariable_WriteUsesInputWhenValueBlank(t *testing.T) {
	store := NewSharedStore()
	write := NewVariable(VariableConfig{Operation: VarWrite, Name: "last_input"}, store, testLogger())

	_, err := write.Output(runtime.NewEvaluation(), VariableOutputName, runtime.TextPayload("from upstream"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	value, ok := store.Read("last_input")
	if !ok || value != "from upstream" {
		t.Errorf("expected input text stored, got %q (ok=%v)", value, ok)
	}
}

func TestVariable_ReadMissingReturnsDefault(t *testing.T) {
	read := NewVariable(VariableConfig{Operation: VarRead, Name: "absent", Default: "fallback"}, NewSharedStore(), testLogger())

	eval := runtime.NewEvaluation()
	out, err := read.Output(eval, VariableOutputName, runtime.Payload{})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out.Payload.Text() != "fallback" {
		t.Errorf("expected default, got %q", out.Payload.Text())
	}
	if eval.Status() != "Variable absent not set - using default" {
		t.Errorf("unexpected status %q", eval.Status())
	}
}

func TestVariable_TTLExpiry(t *testing.T) {
	store := NewSharedStore()
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	store.Write("token", "abc", 60*time.Second)

	if v, ok := store.Read("token"); !ok || v != "abc" {
		t.Fatalf("expected fresh value, got %q (ok=%v)", v, ok)
	}

	current = current.Add(61 * time.Second)
	if _, ok := store.Read("token"); ok {
		t.Errorf("expected expired variable to be gone")
	}
	// Expired entries are evicted, so a later read inside the original TTL
	// window still misses.
	current = time.Unix(1000, 0)
	if _, ok := store.Read("token"); ok {
		t.Errorf("expected evicted variable to stay gone")
	}
}

func TestVariable_ZeroTTLNeverExpires(t *testing.T) {
	store := NewSharedStore()
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	store.Write("pinned", "v", 0)
	current = current.Add(365 * 24 * time.Hour)

	if v, ok := store.Read("pinned"); !ok || v != "v" {
		t.Errorf("expected zero-TTL variable to persist, got %q (ok=%v)", v, ok)
	}
}

func TestVariable_Delete(t *testing.T) {
	store := NewSharedStore()
	store.Write("gone", "x", 0)

	del := NewVariable(VariableConfig{Operation: VarDelete, Name: "gone"}, store, testLogger())
	if _, err := del.Output(runtime.NewEvaluation(), VariableOutputName, runtime.Payload{}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, ok := store.Read("gone"); ok {
		t.Errorf("expected variable deleted")
	}
}

func TestVariable_UnknownOperation(t *testing.T) {
	v := NewVariable(VariableConfig{Operation: "rotate", Name: "x"}, NewSharedStore(), testLogger())

	out, err := v.Output(runtime.NewEvaluation(), VariableOutputName, runtime.Payload{})
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
	if out.Active {
		t.Errorf("expected output suppressed")
	}
}
