package clicker

import "sync/atomic"

// RunControl is the cancellation flag shared by a control surface and the loop.
// The zero value is stopped and ready to use.
type RunControl struct {
	running atomic.Bool
}

// NewRunControl returns a stopped RunControl.
func NewRunControl() *RunControl {
	return &RunControl{}
}

// Start marks the control as running. Call it before handing off to Loop.Run.
func (c *RunControl) Start() {
	c.running.Store(true)
}

// Stop clears the running flag and reports whether this call changed it.
func (c *RunControl) Stop() bool {
	return c.running.Swap(false)
}

// IsRunning reports whether the loop should keep going.
func (c *RunControl) IsRunning() bool {
	return c.running.Load()
}
