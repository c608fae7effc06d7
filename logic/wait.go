package logic

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/flowgrid/components/runtime"
)

// WaitOutputName is the single output of the Wait component.
const WaitOutputName = "output"

// WaitConfig configures a Wait node. The delay is capped at one hour.
type WaitConfig struct {
	DelaySeconds float64 `yaml:"delay_seconds" default:"1" validate:"gte=0,lte=3600"`
}

// Wait returns its input unchanged after a configured delay. The sleep
// honors the Evaluation's deadline/cancellation, so a host tearing down an
// evaluation does not leave a goroutine sleeping.
type Wait struct {
	cfg WaitConfig
	l   *slog.Logger
}

func NewWait(cfg WaitConfig, l *slog.Logger) *Wait {
	if l == nil {
		l = slog.Default()
	}
	return &Wait{cfg: cfg, l: l}
}

// OutputNames implements runtime.Component.
func (w *Wait) OutputNames() []string {
	return []string{WaitOutputName}
}

// Output implements runtime.Component.
func (w *Wait) Output(eval *runtime.Evaluation, name string, input runtime.Payload) (runtime.Output, error) {
	if name != WaitOutputName {
		return runtime.Suppress(), nil
	}

	delay := time.Duration(w.cfg.DelaySeconds * float64(time.Second))
	if delay > 0 {
		w.l.InfoContext(eval, "Waiting before forwarding input",
			"evaluation", eval.ID,
			"delay", delay)

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-eval.Done():
			return runtime.Suppress(), fmt.Errorf("wait interrupted: %w", eval.Err())
		case <-timer.C:
		}
	}

	eval.SetStatus(fmt.Sprintf("Waited %s", delay))
	return runtime.Activate(input), nil
}
