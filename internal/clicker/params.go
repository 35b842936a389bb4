// Package clicker runs the press/hold/release actuation loop.
package clicker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/airclick/internal/wininput"
)

// DefaultUnboundedThreshold is the limit at which a bounded run becomes unbounded.
const DefaultUnboundedThreshold = 999

// MaxIntervalMs is the longest accepted hold, one day.
const MaxIntervalMs = 24 * 60 * 60 * 1000

// Params describes one run. Repeat == 0 means unbounded.
type Params struct {
	IntervalMs int             `json:"intervalMs"`
	Repeat     int             `json:"repeat"`
	Button     wininput.Button `json:"button"`
}

// ParseOptions tunes ParseParams.
type ParseOptions struct {
	// UnboundedThreshold turns limits at or above it into unbounded runs. Zero disables.
	UnboundedThreshold int
}

// ValidationError reports an out-of-contract run parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseParams validates raw operator input once and builds run parameters.
//
// An empty limit, "inf", "infinite", or any value at or above the unbounded
// threshold selects an unbounded run.
func ParseParams(interval, limit, button string, opts ParseOptions) (Params, error) {
	var p Params

	raw := strings.TrimSpace(interval)
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return Params{}, &ValidationError{Field: "interval", Value: raw, Reason: "must be an integer number of milliseconds"}
	}
	p.IntervalMs = ms

	repeat, err := parseLimit(limit, opts.UnboundedThreshold)
	if err != nil {
		return Params{}, err
	}
	p.Repeat = repeat

	b, err := wininput.ParseButton(button)
	if err != nil {
		return Params{}, &ValidationError{Field: "button", Value: button, Reason: "must be left or right"}
	}
	p.Button = b

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// parseLimit converts the limit field into a repeat count (0 = unbounded).
func parseLimit(limit string, threshold int) (int, error) {
	raw := strings.TrimSpace(limit)
	switch strings.ToLower(raw) {
	case "", "inf", "infinite":
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: "limit", Value: raw, Reason: "must be a positive integer or \"inf\""}
	}
	if n <= 0 {
		return 0, &ValidationError{Field: "limit", Value: raw, Reason: "must be at least 1"}
	}
	if threshold > 0 && n >= threshold {
		return 0, nil
	}
	return n, nil
}

// Validate asserts the run preconditions.
func (p Params) Validate() error {
	if p.IntervalMs < 0 {
		return &ValidationError{Field: "interval", Value: strconv.Itoa(p.IntervalMs), Reason: "must be >= 0"}
	}
	if p.IntervalMs > MaxIntervalMs {
		return &ValidationError{Field: "interval", Value: strconv.Itoa(p.IntervalMs), Reason: fmt.Sprintf("must be <= %d", MaxIntervalMs)}
	}
	if p.Repeat < 0 {
		return &ValidationError{Field: "limit", Value: strconv.Itoa(p.Repeat), Reason: "must be >= 0 (0 = unbounded)"}
	}
	if p.Button != wininput.ButtonLeft && p.Button != wininput.ButtonRight {
		return &ValidationError{Field: "button", Value: p.Button.String(), Reason: "must be left or right"}
	}
	return nil
}

// Interval returns the hold duration of one cycle.
func (p Params) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// Bounded reports whether the run stops on its own after Repeat cycles.
func (p Params) Bounded() bool {
	return p.Repeat > 0
}

// LimitLabel renders the repeat count for display.
func (p Params) LimitLabel() string {
	if !p.Bounded() {
		return "unlimited"
	}
	return strconv.Itoa(p.Repeat)
}

// String summarizes the parameters for logs.
func (p Params) String() string {
	return fmt.Sprintf("%s every %dms (max: %s)", p.Button, p.IntervalMs, p.LimitLabel())
}
