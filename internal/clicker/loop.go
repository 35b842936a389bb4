package clicker

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/wininput"
)

// RepositionFunc maps the starting cursor position of a bounded run to the
// position the pointer should be moved to. ok=false leaves the pointer alone.
type RepositionFunc func(x, y int) (nx, ny int, ok bool)

// Loop performs timed press/hold/release cycles against an injector.
type Loop struct {
	Injector wininput.Injector
	// Sleep holds the button down; defaults to time.Sleep.
	Sleep func(time.Duration) error
	// Reposition is applied before the first cycle of a bounded run.
	Reposition RepositionFunc
	Log        zerolog.Logger

	now func() time.Time
}

// NewLoop returns a loop driving the given injector.
func NewLoop(injector wininput.Injector, log zerolog.Logger) (*Loop, error) {
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	return &Loop{Injector: injector, Log: log}, nil
}

// Run executes cycles until the bound is reached, control is stopped, or the
// injector fails. Cancellation is observed before the first cycle and after
// every completed cycle; a started press always has its release attempted.
// control is left stopped on every exit path.
func (l *Loop) Run(params Params, control *RunControl) Outcome {
	out := Outcome{StartedAt: l.clock()}
	if control == nil {
		return l.finish(out, StatusFailed, 0, errors.New("run control is required"))
	}
	defer control.Stop()

	if l.Injector == nil {
		return l.finish(out, StatusFailed, 0, errors.New("injector is required"))
	}
	if err := params.Validate(); err != nil {
		return l.finish(out, StatusFailed, 0, err)
	}

	l.Log.Info().
		Str("button", params.Button.String()).
		Int("interval_ms", params.IntervalMs).
		Str("max", params.LimitLabel()).
		Msg("run started")

	if params.Bounded() {
		out.Start = l.trackStart()
	}

	hold := params.Interval()
	cycles := 0
	for {
		if !control.IsRunning() {
			return l.finish(out, StatusStopped, cycles, nil)
		}
		if err := l.cycle(params.Button, hold); err != nil {
			return l.finish(out, StatusFailed, cycles, err)
		}
		cycles++
		if params.Bounded() && cycles >= params.Repeat {
			return l.finish(out, StatusCompleted, cycles, nil)
		}
	}
}

// cycle performs a single press, hold, release.
func (l *Loop) cycle(b wininput.Button, hold time.Duration) error {
	if err := l.Injector.ButtonDown(b); err != nil {
		return &InjectionError{Op: "press", Button: b, Err: err}
	}
	sleepErr := l.sleep(hold)
	if err := l.Injector.ButtonUp(b); err != nil {
		return &InjectionError{Op: "release", Button: b, Err: err}
	}
	if sleepErr != nil {
		return fmt.Errorf("hold %s: %w", hold, sleepErr)
	}
	return nil
}

// trackStart records the cursor position and applies the optional reposition.
// Failures here are cosmetic and never end the run.
func (l *Loop) trackStart() *Point {
	x, y, err := l.Injector.CursorPos()
	if err != nil {
		l.Log.Warn().Err(err).Msg("cursor position unavailable")
		return nil
	}
	start := &Point{X: x, Y: y}
	if l.Reposition == nil {
		return start
	}
	nx, ny, ok := l.Reposition(x, y)
	if !ok {
		return start
	}
	if err := l.Injector.MoveAbs(nx, ny); err != nil {
		l.Log.Warn().Err(err).Int("x", nx).Int("y", ny).Msg("reposition failed")
	}
	return start
}

// finish stamps the outcome and logs it.
func (l *Loop) finish(out Outcome, status Status, cycles int, err error) Outcome {
	out.Status = status
	out.Cycles = cycles
	out.FinishedAt = l.clock()
	if err != nil {
		out.Err = err
		out.Reason = err.Error()
	}

	var ev *zerolog.Event
	if status == StatusFailed {
		ev = l.Log.Error().Err(err)
	} else {
		ev = l.Log.Info()
	}
	ev.Str("status", string(status)).
		Int("cycles", cycles).
		Dur("elapsed", out.Elapsed()).
		Msg("run finished")
	return out
}

func (l *Loop) sleep(d time.Duration) error {
	if l.Sleep != nil {
		return l.Sleep(d)
	}
	time.Sleep(d)
	return nil
}

func (l *Loop) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}
