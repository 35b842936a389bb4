//go:build windows

// Package wininput defines pointer input injection interfaces.
package wininput

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// WinInjector injects mouse input using WinAPI.
type WinInjector struct{}

// NewInjector returns a Windows input injector.
func NewInjector() (Injector, error) {
	return &WinInjector{}, nil
}

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32, data uint32) error {
	input := win.MOUSE_INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:        dx,
			Dy:        dy,
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return lastError()
	}
	return nil
}

// lastError wraps the thread's last WinAPI error code.
func lastError() error {
	if code := win.GetLastError(); code != 0 {
		return syscall.Errno(code)
	}
	return syscall.EINVAL
}
