package clicker

import (
	"fmt"
	"time"

	"github.com/frudas24/airclick/internal/wininput"
)

// Status is the terminal state of a run.
type Status string

const (
	// StatusCompleted means the repeat bound was reached.
	StatusCompleted Status = "completed"
	// StatusStopped means the run was cancelled through RunControl.
	StatusStopped Status = "stopped"
	// StatusFailed means the injector or a precondition aborted the run.
	StatusFailed Status = "failed"
)

// Point is a cursor position in virtual-desktop coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Outcome is emitted once per run.
type Outcome struct {
	Status     Status    `json:"status"`
	Cycles     int       `json:"cycles"`
	Reason     string    `json:"reason,omitempty"`
	Err        error     `json:"-"`
	Start      *Point    `json:"start,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Elapsed returns the wall time spent in the run.
func (o Outcome) Elapsed() time.Duration {
	if o.FinishedAt.Before(o.StartedAt) {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// String renders a one-line summary.
func (o Outcome) String() string {
	switch o.Status {
	case StatusFailed:
		return fmt.Sprintf("failed after %d cycles: %s", o.Cycles, o.Reason)
	default:
		return fmt.Sprintf("%s after %d cycles", o.Status, o.Cycles)
	}
}

// InjectionError reports a press or release the host refused to perform.
type InjectionError struct {
	Op     string
	Button wininput.Button
	Err    error
}

// Error implements error.
func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s %s button: %v", e.Op, e.Button, e.Err)
}

// Unwrap returns the underlying injector error.
func (e *InjectionError) Unwrap() error {
	return e.Err
}
