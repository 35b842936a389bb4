package testutil

import (
	"sync"

	"github.com/frudas24/airclick/internal/wininput"
)

// Call records a single injected action.
type Call struct {
	Name   string
	Button wininput.Button
	X      int
	Y      int
}

// FakeInjector implements wininput.Injector and records calls for tests.
// It is safe for use from the click loop goroutine and the test goroutine.
type FakeInjector struct {
	mu    sync.Mutex
	calls []Call

	// X and Y are reported by CursorPos; HasXY=false makes CursorPos fail.
	X     int
	Y     int
	HasXY bool

	// FailDownAt makes the Nth ButtonDown (1-based) return Err. Zero disables.
	FailDownAt int
	// FailUpAt makes the Nth ButtonUp (1-based) return Err. Zero disables.
	FailUpAt int
	// Err is returned by failing operations.
	Err error

	// OnDown runs after a successful ButtonDown with the running press count.
	OnDown func(n int)

	downs int
	ups   int
}

// Ensure FakeInjector implements the interface.
var _ wininput.Injector = (*FakeInjector)(nil)

// MoveAbs records an absolute move.
func (f *FakeInjector) MoveAbs(x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "MoveAbs", X: x, Y: y})
	f.X, f.Y = x, y
	return nil
}

// CursorPos reports the configured position.
func (f *FakeInjector) CursorPos() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.HasXY {
		return 0, 0, f.errOrDefault()
	}
	return f.X, f.Y, nil
}

// ButtonDown records a button press.
func (f *FakeInjector) ButtonDown(b wininput.Button) error {
	f.mu.Lock()
	f.downs++
	n := f.downs
	if f.FailDownAt > 0 && n == f.FailDownAt {
		err := f.errOrDefault()
		f.mu.Unlock()
		return err
	}
	f.calls = append(f.calls, Call{Name: "ButtonDown", Button: b})
	hook := f.OnDown
	f.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return nil
}

// ButtonUp records a button release.
func (f *FakeInjector) ButtonUp(b wininput.Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ups++
	if f.FailUpAt > 0 && f.ups == f.FailUpAt {
		return f.errOrDefault()
	}
	f.calls = append(f.calls, Call{Name: "ButtonUp", Button: b})
	return nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeInjector) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Pairs counts complete ButtonDown/ButtonUp pairs and reports whether the
// recorded sequence strictly alternates press then release.
func (f *FakeInjector) Pairs() (int, bool) {
	pairs := 0
	pressed := false
	for _, c := range f.Calls() {
		switch c.Name {
		case "ButtonDown":
			if pressed {
				return pairs, false
			}
			pressed = true
		case "ButtonUp":
			if !pressed {
				return pairs, false
			}
			pressed = false
			pairs++
		}
	}
	return pairs, !pressed
}

func (f *FakeInjector) errOrDefault() error {
	if f.Err != nil {
		return f.Err
	}
	return wininput.ErrInjection
}
