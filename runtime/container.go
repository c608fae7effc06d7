package runtime

import (
	"context"
	"fmt"
)

// Container is the component registry backing one host (or harness) process.
// It tracks registration order so lifecycle shutdown can run in reverse.
type Container struct {
	components map[string]Component
	order      []string
	lifecycle  []Lifecycle
}

func NewContainer() *Container {
	return &Container{
		components: make(map[string]Component),
	}
}

// Register adds a component instance under name. Lifecycle capability is
// detected once at registration time.
func (c *Container) Register(name string, component Component) error {
	if component == nil {
		return fmt.Errorf("component %q cannot be nil", name)
	}
	if _, exists := c.components[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}

	c.components[name] = component
	c.order = append(c.order, name)

	if lc, ok := component.(Lifecycle); ok {
		c.lifecycle = append(c.lifecycle, lc)
	}

	return nil
}

// Get returns the component registered under name, or nil.
func (c *Container) Get(name string) Component {
	return c.components[name]
}

// Names returns component names in registration order.
func (c *Container) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Initialize calls Initialize on all Lifecycle components, failing fast on
// the first error.
func (c *Container) Initialize(ctx context.Context) error {
	for i, lc := range c.lifecycle {
		if err := lc.Initialize(ctx); err != nil {
			return fmt.Errorf("component #%d initialization failed: %w", i, err)
		}
	}
	return nil
}

// Shutdown calls Shutdown on all Lifecycle components in reverse order of
// initialization, collecting errors instead of stopping at the first one.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(c.lifecycle) - 1; i >= 0; i-- {
		if err := c.lifecycle[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("component #%d shutdown failed: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}
