package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/runner"
)

// exitGrace is how long quitting waits past one hold for the final release.
const exitGrace = 2 * time.Second

// Run opens the control panel on the terminal and blocks until the operator
// quits. Any run still active when the program exits is stopped, and Run
// returns only after its last press has been released.
func Run(runs *runner.Manager, opts clicker.ParseOptions, defaults Defaults) error {
	if runs == nil {
		return errors.New("run manager is required")
	}
	outcomes, unsubscribe := runs.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(New(runs, outcomes, opts, defaults), tea.WithAltScreen())
	_, err := p.Run()
	return errors.Join(err, releaseOnExit(runs))
}

// releaseOnExit stops whatever run is active and waits for its release.
func releaseOnExit(runs *runner.Manager) error {
	return runs.StopAndWait(exitGrace)
}
