package monitor

import "testing"

// TestGetMonitorByIndex_Found verifies a monitor is found by index.
func TestGetMonitorByIndex_Found(t *testing.T) {
	list := []Monitor{
		{Index: 1, W: 100, H: 100},
		{Index: 2, W: 200, H: 200},
	}
	m, ok := GetMonitorByIndex(list, 2)
	if !ok || m.Index != 2 {
		t.Fatalf("expected index 2, got ok=%v monitor=%+v", ok, m)
	}
}

// TestGetMonitorByIndex_NotFound verifies missing indexes return false.
func TestGetMonitorByIndex_NotFound(t *testing.T) {
	list := []Monitor{{Index: 1, W: 100, H: 100}}
	_, ok := GetMonitorByIndex(list, 3)
	if ok {
		t.Fatalf("expected not found")
	}
}

// TestContains_Edges verifies the right and bottom edges are outside.
func TestContains_Edges(t *testing.T) {
	m := Monitor{X: 10, Y: 20, W: 5, H: 4}
	if !m.Contains(10, 20) || !m.Contains(14, 23) {
		t.Fatalf("expected inner corners to be inside")
	}
	if m.Contains(15, 20) || m.Contains(10, 24) {
		t.Fatalf("expected far edges to be outside")
	}
}

// TestClamp verifies points are pulled onto the monitor.
func TestClamp(t *testing.T) {
	m := Monitor{X: -1920, Y: 0, W: 1920, H: 1080}
	if x, y := m.Clamp(-2000, 5000); x != -1920 || y != 1079 {
		t.Fatalf("unexpected clamp (%d,%d)", x, y)
	}
	if x, y := m.Clamp(-5, 5); x != -5 || y != 5 {
		t.Fatalf("expected inside point unchanged, got (%d,%d)", x, y)
	}
}

// TestContaining_Fallback verifies the fallback index is used off-screen.
func TestContaining_Fallback(t *testing.T) {
	list := []Monitor{
		{Index: 1, X: 0, Y: 0, W: 1920, H: 1080, Primary: true},
		{Index: 2, X: 1920, Y: 0, W: 1280, H: 1024},
	}
	if m, ok := Containing(list, 2000, 10, 1); !ok || m.Index != 2 {
		t.Fatalf("expected monitor 2, got %+v ok=%v", m, ok)
	}
	if m, ok := Containing(list, -50, -50, 1); !ok || m.Index != 1 {
		t.Fatalf("expected fallback monitor 1, got %+v ok=%v", m, ok)
	}
}

// TestShiftWithin verifies the reposition hook shifts and clamps.
func TestShiftWithin(t *testing.T) {
	list := []Monitor{
		{Index: 1, X: 0, Y: 0, W: 1920, H: 1080},
		{Index: 2, X: 1920, Y: 0, W: 1280, H: 1024},
	}
	shift := ShiftWithin(list, 1, -100)
	if shift == nil {
		t.Fatalf("expected hook")
	}
	if x, y, ok := shift(500, 300); !ok || x != 400 || y != 300 {
		t.Fatalf("unexpected shift (%d,%d) ok=%v", x, y, ok)
	}
	if x, _, ok := shift(1950, 300); !ok || x != 1920 {
		t.Fatalf("expected clamp to monitor 2 left edge, got %d ok=%v", x, ok)
	}
	if ShiftWithin(list, 1, 0) != nil || ShiftWithin(nil, 1, -100) != nil {
		t.Fatalf("expected disabled hooks")
	}
}
