package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/wininput"
)

// Runs is the run manager surface the TUI drives.
type Runs interface {
	StartRun(clicker.Params) (runner.Handle, error)
	StopRun(id string) bool
}

// Defaults seeds the input fields and is restored by reset.
type Defaults struct {
	Interval string
	Limit    string
	Button   string
}

const (
	fieldInterval = iota
	fieldLimit
	fieldButton
	fieldCount
)

// Model is the root bubbletea model for the control panel.
type Model struct {
	runs     Runs
	outcomes <-chan clicker.Outcome
	opts     clicker.ParseOptions
	defaults Defaults

	inputs []textinput.Model
	button wininput.Button
	focus  int

	keys keyMap
	help help.Model

	running  bool
	stopping bool
	active   runner.Handle
	last     *clicker.Outcome
	err      error
	width    int
}

// New creates the control panel model. outcomes should be a subscription
// on the same manager as runs.
func New(runs Runs, outcomes <-chan clicker.Outcome, opts clicker.ParseOptions, defaults Defaults) Model {
	interval := textinput.New()
	interval.Placeholder = "100"
	interval.CharLimit = 9
	interval.Prompt = ""

	limit := textinput.New()
	limit.Placeholder = "inf"
	limit.CharLimit = 9
	limit.Prompt = ""

	m := Model{
		runs:     runs,
		outcomes: outcomes,
		opts:     opts,
		defaults: defaults,
		inputs:   []textinput.Model{interval, limit},
		keys:     newKeyMap(),
		help:     help.New(),
		width:    80,
	}
	m = m.reset()
	m.inputs[fieldInterval].Focus()
	return m
}

// Init starts listening for run outcomes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForOutcome(m.outcomes))
}

// Running reports whether a run started from this model is active.
func (m Model) Running() bool { return m.running }

// ActiveID returns the handle id of the active run.
func (m Model) ActiveID() string { return m.active.ID }

// reset restores the defaults into the fields.
func (m Model) reset() Model {
	m.inputs[fieldInterval].SetValue(m.defaults.Interval)
	m.inputs[fieldLimit].SetValue(m.defaults.Limit)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	b, err := wininput.ParseButton(m.defaults.Button)
	if err != nil {
		b = wininput.ButtonLeft
	}
	m.button = b
	m.err = nil
	return m
}

// setFocus moves focus to field i and updates input focus state.
func (m Model) setFocus(i int) (Model, tea.Cmd) {
	m.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m, cmd
}

// blurAll disables text entry while a run is active.
func (m Model) blurAll() Model {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m
}
