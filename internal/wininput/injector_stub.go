//go:build !windows

// Package wininput defines pointer input injection interfaces.
package wininput

// NoopInjector is a placeholder injector for non-Windows builds.
type NoopInjector struct{}

// NewInjector returns a non-functional injector on non-Windows platforms.
func NewInjector() (Injector, error) {
	return &NoopInjector{}, ErrUnsupported
}

// MoveAbs returns ErrUnsupported.
func (n *NoopInjector) MoveAbs(x, y int) error {
	_ = x
	_ = y
	return ErrUnsupported
}

// CursorPos returns ErrUnsupported.
func (n *NoopInjector) CursorPos() (int, int, error) {
	return 0, 0, ErrUnsupported
}

// ButtonDown returns ErrUnsupported.
func (n *NoopInjector) ButtonDown(b Button) error {
	_ = b
	return ErrUnsupported
}

// ButtonUp returns ErrUnsupported.
func (n *NoopInjector) ButtonUp(b Button) error {
	_ = b
	return ErrUnsupported
}
