package logic

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/flowgrid/components/runtime"
)

// Variable operations.
const (
	VarRead   = "read"
	VarWrite  = "write"
	VarDelete = "delete"
)

// VariableOutputName is the single output of the Variable component.
const VariableOutputName = "value"

// SharedStore is the process-level variable cache shared by Variable
// components across evaluations. Entries expire after their TTL; a zero TTL
// means no expiration.
type SharedStore struct {
	mu      sync.Mutex
	entries map[string]storeEntry
	now     func() time.Time
}

type storeEntry struct {
	value    string
	ttl      time.Duration
	storedAt time.Time
}

func NewSharedStore() *SharedStore {
	return &SharedStore{
		entries: make(map[string]storeEntry),
		now:     time.Now,
	}
}

// Read returns the current value of name, reporting false when the variable
// is missing or expired. Expired entries are evicted on read.
func (s *SharedStore) Read(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	if e.ttl > 0 && s.now().Sub(e.storedAt) > e.ttl {
		delete(s.entries, name)
		return "", false
	}
	return e.value, true
}

func (s *SharedStore) Write(name, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = storeEntry{value: value, ttl: ttl, storedAt: s.now()}
}

func (s *SharedStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

// VariableConfig configures a Variable node.
type VariableConfig struct {
	Operation string `yaml:"operation" default:"read" validate:"oneof=read write delete"`
	Name      string `yaml:"name" validate:"required"`

	// Value is written in write mode; when blank the input payload's text
	// is written instead.
	Value string `yaml:"value"`

	// Default is returned in read mode when the variable is missing or
	// expired.
	Default string `yaml:"default"`

	TTLSeconds int `yaml:"ttl_seconds" default:"3600" validate:"gte=0"`
}

// Variable reads, writes, or deletes a named value in a SharedStore.
type Variable struct {
	cfg   VariableConfig
	store *SharedStore
	l     *slog.Logger
}

func NewVariable(cfg VariableConfig, store *SharedStore, l *slog.Logger) *Variable {
	if store == nil {
		store = NewSharedStore()
	}
	if l == nil {
		l = slog.Default()
	}
	return &Variable{cfg: cfg, store: store, l: l}
}

// OutputNames implements runtime.Component.
func (v *Variable) OutputNames() []string {
	return []string{VariableOutputName}
}

// Output implements runtime.Component.
func (v *Variable) Output(eval *runtime.Evaluation, name string, input runtime.Payload) (runtime.Output, error) {
	if name != VariableOutputName {
		return runtime.Suppress(), nil
	}

	switch v.cfg.Operation {
	case VarRead:
		value, ok := v.store.Read(v.cfg.Name)
		if !ok {
			value = v.cfg.Default
			eval.SetStatus(fmt.Sprintf("Variable %s not set - using default", v.cfg.Name))
		} else {
			eval.SetStatus(fmt.Sprintf("Read %s", v.cfg.Name))
		}
		return runtime.Activate(runtime.TextPayload(value)), nil

	case VarWrite:
		value := v.cfg.Value
		if value == "" {
			value = input.Text()
		}
		v.store.Write(v.cfg.Name, value, time.Duration(v.cfg.TTLSeconds)*time.Second)
		eval.SetStatus(fmt.Sprintf("Wrote %s", v.cfg.Name))
		return runtime.Activate(runtime.TextPayload(value)), nil

	case VarDelete:
		v.store.Delete(v.cfg.Name)
		eval.SetStatus(fmt.Sprintf("Deleted %s", v.cfg.Name))
		return runtime.Activate(runtime.TextPayload("")), nil

	default:
		return runtime.Suppress(), fmt.Errorf("unknown variable operation: %s", v.cfg.Operation)
	}
}
