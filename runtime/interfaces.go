package runtime

import "context"

// Lifecycle lets components establish and release external resources.
// Components implementing it have Initialize called at container startup and
// Shutdown during graceful shutdown. Config and dependencies are already set
// on the component when Initialize runs.
type Lifecycle interface {
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
