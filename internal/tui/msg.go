package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/airclick/internal/clicker"
)

// outcomeMsg carries the outcome of a finished run.
type outcomeMsg clicker.Outcome

// outcomesClosedMsg signals the outcome channel closed.
type outcomesClosedMsg struct{}

// waitForOutcome blocks on the outcome channel and returns the next message.
func waitForOutcome(ch <-chan clicker.Outcome) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		out, ok := <-ch
		if !ok {
			return outcomesClosedMsg{}
		}
		return outcomeMsg(out)
	}
}
