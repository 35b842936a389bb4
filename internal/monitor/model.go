// Package monitor describes display geometry and enumeration.
package monitor

import "errors"

// ErrNoMonitors is returned when enumeration is unsupported or finds nothing.
var ErrNoMonitors = errors.New("no monitors available")

// Monitor describes a display and its bounds in virtual-desktop pixels.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// Contains reports whether a point is on the monitor (right/bottom edges exclusive).
func (m Monitor) Contains(x, y int) bool {
	if m.W <= 0 || m.H <= 0 {
		return false
	}
	return x >= m.X && x < m.X+m.W && y >= m.Y && y < m.Y+m.H
}

// Clamp returns the point on the monitor closest to (x, y).
func (m Monitor) Clamp(x, y int) (int, int) {
	return clamp(x, m.X, m.X+m.W-1), clamp(y, m.Y, m.Y+m.H-1)
}

// Containing returns the monitor under the point, falling back to the
// monitor with index fallback.
func Containing(list []Monitor, x, y, fallback int) (Monitor, bool) {
	for _, m := range list {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return GetMonitorByIndex(list, fallback)
}

// ShiftWithin returns a reposition hook that moves the pointer dx pixels
// horizontally, clamped to the monitor it started on. A zero dx or an empty
// monitor list disables repositioning.
func ShiftWithin(list []Monitor, fallback, dx int) func(x, y int) (int, int, bool) {
	if dx == 0 || len(list) == 0 {
		return nil
	}
	monitors := append([]Monitor(nil), list...)
	return func(x, y int) (int, int, bool) {
		m, ok := Containing(monitors, x, y, fallback)
		if !ok {
			return 0, 0, false
		}
		nx, ny := m.Clamp(x+dx, y)
		return nx, ny, true
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
