//go:build windows

package monitor

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// ListMonitors enumerates attached displays in system order. Indexes are
// 1-based and match MONITOR_INDEX.
func ListMonitors() ([]Monitor, error) {
	var list []Monitor
	callback := syscall.NewCallback(func(h win.HMONITOR, _ win.HDC, _ *win.RECT, _ uintptr) uintptr {
		if m, ok := describe(h, len(list)+1); ok {
			list = append(list, m)
		}
		return 1
	})

	if !win.EnumDisplayMonitors(0, nil, callback, 0) {
		return nil, fmt.Errorf("enumerate monitors: %w", syscall.GetLastError())
	}
	if len(list) == 0 {
		return nil, ErrNoMonitors
	}
	return list, nil
}

// describe reads the bounds of one display.
func describe(h win.HMONITOR, index int) (Monitor, bool) {
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(h, &info) {
		return Monitor{}, false
	}
	r := info.RcMonitor
	return Monitor{
		Index:   index,
		X:       int(r.Left),
		Y:       int(r.Top),
		W:       int(r.Right - r.Left),
		H:       int(r.Bottom - r.Top),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}, true
}
