//go:build windows

// Package wininput defines pointer input injection interfaces.
package wininput

import (
	"fmt"

	"github.com/lxn/win"
)

// MoveAbs moves the cursor to an absolute screen coordinate.
func (w *WinInjector) MoveAbs(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	win.SetCursorPos(int32(x), int32(y))
	return nil
}

// CursorPos reports the current cursor position in virtual-desktop coordinates.
func (w *WinInjector) CursorPos() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, fmt.Errorf("GetCursorPos failed: %w", lastError())
	}
	return int(pt.X), int(pt.Y), nil
}

// ButtonDown presses the given mouse button.
func (w *WinInjector) ButtonDown(b Button) error {
	flag, err := buttonFlag(b, true)
	if err != nil {
		return err
	}
	return sendMouseInput(flag, 0, 0, 0)
}

// ButtonUp releases the given mouse button.
func (w *WinInjector) ButtonUp(b Button) error {
	flag, err := buttonFlag(b, false)
	if err != nil {
		return err
	}
	return sendMouseInput(flag, 0, 0, 0)
}

// buttonFlag returns the MOUSEEVENTF flag for a button transition.
func buttonFlag(b Button, down bool) (uint32, error) {
	switch {
	case b == ButtonLeft && down:
		return win.MOUSEEVENTF_LEFTDOWN, nil
	case b == ButtonLeft:
		return win.MOUSEEVENTF_LEFTUP, nil
	case b == ButtonRight && down:
		return win.MOUSEEVENTF_RIGHTDOWN, nil
	case b == ButtonRight:
		return win.MOUSEEVENTF_RIGHTUP, nil
	default:
		return 0, fmt.Errorf("unsupported button %s", b)
	}
}

// mapAbsolute converts screen coordinates to the WinAPI absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
