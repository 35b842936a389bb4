package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/wininput"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(clicker.Outcome(msg))

	case outcomesClosedMsg:
		m.running = false
		m.stopping = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.running {
			m.runs.StopRun(m.active.ID)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Stop):
		if m.running && !m.stopping {
			m.stopping = m.runs.StopRun(m.active.ID)
		}
		return m, nil
	}

	// Fields are read-only while a run is active.
	if m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Start):
		return m.start()

	case key.Matches(msg, m.keys.Reset):
		return m.reset(), nil

	case key.Matches(msg, m.keys.Next):
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m.setFocus(m.focus - 1)

	case m.focus == fieldButton && key.Matches(msg, m.keys.Left, m.keys.Right, m.keys.Toggle):
		m.button = otherButton(m.button)
		return m, nil
	}

	if m.focus == fieldButton {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// start validates the fields and asks the manager for a run.
func (m Model) start() (tea.Model, tea.Cmd) {
	params, err := clicker.ParseParams(
		m.inputs[fieldInterval].Value(),
		m.inputs[fieldLimit].Value(),
		m.button.String(),
		m.opts,
	)
	if err != nil {
		m.err = err
		return m, nil
	}
	h, err := m.runs.StartRun(params)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.running = true
	m.stopping = false
	m.active = h
	return m.blurAll(), nil
}

func (m Model) handleOutcome(out clicker.Outcome) (tea.Model, tea.Cmd) {
	m.last = &out
	m.running = false
	m.stopping = false
	if out.Status == clicker.StatusFailed {
		m.err = out.Err
	}
	m, focusCmd := m.setFocus(m.focus)
	return m, tea.Batch(focusCmd, waitForOutcome(m.outcomes))
}

func otherButton(b wininput.Button) wininput.Button {
	if b == wininput.ButtonLeft {
		return wininput.ButtonRight
	}
	return wininput.ButtonLeft
}
