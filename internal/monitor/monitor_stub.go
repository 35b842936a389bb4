//go:build !windows

package monitor

import "fmt"

// ListMonitors reports ErrNoMonitors on non-Windows platforms.
func ListMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("%w: display enumeration needs Windows", ErrNoMonitors)
}
