//go:build !windows

package wininput

import (
	"errors"
	"testing"
)

// TestNoopInjector_Unsupported verifies every operation reports ErrUnsupported.
func TestNoopInjector_Unsupported(t *testing.T) {
	inj, err := NewInjector()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if err := inj.ButtonDown(ButtonLeft); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ButtonDown: expected ErrUnsupported, got %v", err)
	}
	if err := inj.ButtonUp(ButtonRight); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ButtonUp: expected ErrUnsupported, got %v", err)
	}
	if _, _, err := inj.CursorPos(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("CursorPos: expected ErrUnsupported, got %v", err)
	}
	if err := inj.MoveAbs(1, 2); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("MoveAbs: expected ErrUnsupported, got %v", err)
	}
}
