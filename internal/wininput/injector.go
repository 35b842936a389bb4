// Package wininput defines pointer input injection interfaces.
package wininput

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported indicates WinAPI input injection is not available.
	ErrUnsupported = errors.New("wininput is only supported on Windows")
	// ErrInjection is a generic refusal by the host to accept synthetic input.
	ErrInjection = errors.New("input injection refused")
)

// Button identifies a pointer button.
type Button int

const (
	// ButtonLeft is the primary pointer button.
	ButtonLeft Button = iota
	// ButtonRight is the secondary pointer button.
	ButtonRight
)

// String returns the lowercase button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// MarshalText encodes the button as its name.
func (b Button) MarshalText() ([]byte, error) {
	switch b {
	case ButtonLeft, ButtonRight:
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("unknown button %d", int(b))
	}
}

// UnmarshalText decodes a button name accepted by ParseButton.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButton maps a user-facing button name to a Button. Empty means left.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "left", "mouse button left":
		return ButtonLeft, nil
	case "right", "mouse button right":
		return ButtonRight, nil
	default:
		return ButtonLeft, fmt.Errorf("unknown button %q", name)
	}
}

// Injector defines the pointer operations used by the click loop.
type Injector interface {
	MoveAbs(x, y int) error
	CursorPos() (x, y int, err error)
	ButtonDown(b Button) error
	ButtonUp(b Button) error
}
