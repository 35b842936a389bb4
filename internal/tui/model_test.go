package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/testutil"
	"github.com/frudas24/airclick/internal/wininput"
)

// fakeRuns records start and stop requests.
type fakeRuns struct {
	started  []clicker.Params
	stopped  []string
	startErr error
}

func (f *fakeRuns) StartRun(p clicker.Params) (runner.Handle, error) {
	if f.startErr != nil {
		return runner.Handle{}, f.startErr
	}
	f.started = append(f.started, p)
	return runner.Handle{ID: "run-1", Params: p}, nil
}

func (f *fakeRuns) StopRun(id string) bool {
	f.stopped = append(f.stopped, id)
	return true
}

var testDefaults = Defaults{Interval: "100", Limit: "", Button: "left"}

func newTestModel(runs *fakeRuns) Model {
	return New(runs, make(chan clicker.Outcome, 1), clicker.ParseOptions{UnboundedThreshold: 999}, testDefaults)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestNew_Defaults verifies the fields are seeded from defaults.
func TestNew_Defaults(t *testing.T) {
	m := newTestModel(&fakeRuns{})
	if m.inputs[fieldInterval].Value() != "100" || m.inputs[fieldLimit].Value() != "" {
		t.Fatalf("unexpected field values %q %q", m.inputs[fieldInterval].Value(), m.inputs[fieldLimit].Value())
	}
	if m.button != wininput.ButtonLeft || m.focus != fieldInterval || m.Running() {
		t.Fatalf("unexpected initial model state")
	}
	if m.Init() == nil {
		t.Fatalf("Init should return a command")
	}
}

// TestStart_ValidInput verifies enter starts a run with the typed parameters.
func TestStart_ValidInput(t *testing.T) {
	runs := &fakeRuns{}
	m := newTestModel(runs)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("5"))
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Running() || m.ActiveID() != "run-1" {
		t.Fatalf("expected running model")
	}
	if len(runs.started) != 1 {
		t.Fatalf("expected one start, got %d", len(runs.started))
	}
	p := runs.started[0]
	if p.IntervalMs != 100 || p.Repeat != 5 || p.Button != wininput.ButtonRight {
		t.Fatalf("unexpected params %+v", p)
	}
	if !strings.Contains(m.View(), "running") {
		t.Fatalf("expected running status in view")
	}
}

// TestStart_InvalidInput verifies validation errors are shown and nothing starts.
func TestStart_InvalidInput(t *testing.T) {
	runs := &fakeRuns{}
	m := newTestModel(runs)
	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, runes("a"))
	m = press(m, runes("s"))

	if m.Running() || len(runs.started) != 0 {
		t.Fatalf("expected no run")
	}
	var verr *clicker.ValidationError
	if !errors.As(m.err, &verr) || verr.Field != "interval" {
		t.Fatalf("expected interval validation error, got %v", m.err)
	}
	if !strings.Contains(m.View(), "interval") {
		t.Fatalf("expected error in view")
	}
}

// TestStart_ManagerError verifies a rejected start is reported.
func TestStart_ManagerError(t *testing.T) {
	runs := &fakeRuns{startErr: runner.ErrRunActive}
	m := press(newTestModel(runs), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Running() || !errors.Is(m.err, runner.ErrRunActive) {
		t.Fatalf("expected ErrRunActive, got running=%v err=%v", m.Running(), m.err)
	}
}

// TestRunning_FieldsLocked verifies edits and focus changes are ignored while running.
func TestRunning_FieldsLocked(t *testing.T) {
	runs := &fakeRuns{}
	m := press(newTestModel(runs), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, runes("9"), tea.KeyMsg{Type: tea.KeyTab}, runes("r"))
	if m.inputs[fieldInterval].Value() != "100" || m.focus != fieldInterval {
		t.Fatalf("expected fields unchanged while running")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(runs.started) != 1 {
		t.Fatalf("expected no second start, got %d", len(runs.started))
	}
}

// TestStop_UsesHandle verifies x stops the active run once.
func TestStop_UsesHandle(t *testing.T) {
	runs := &fakeRuns{}
	m := press(newTestModel(runs), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, runes("x"), runes("x"))
	if len(runs.stopped) != 1 || runs.stopped[0] != "run-1" {
		t.Fatalf("expected one stop for run-1, got %v", runs.stopped)
	}
	if !strings.Contains(m.View(), "stopping") {
		t.Fatalf("expected stopping status")
	}
}

// TestOutcome_UnlocksFields verifies an outcome ends the running state.
func TestOutcome_UnlocksFields(t *testing.T) {
	runs := &fakeRuns{}
	m := press(newTestModel(runs), tea.KeyMsg{Type: tea.KeyEnter})

	updated, cmd := m.Update(outcomeMsg(clicker.Outcome{Status: clicker.StatusStopped, Cycles: 7}))
	m = updated.(Model)
	if cmd == nil {
		t.Fatalf("outcome should keep listening for outcomes")
	}
	if m.Running() || m.last == nil || m.last.Cycles != 7 {
		t.Fatalf("unexpected model after outcome")
	}
	if !strings.Contains(m.View(), "stopped after 7 cycles") {
		t.Fatalf("expected outcome in view, got %q", m.View())
	}
	m = press(m, runes("1"))
	if m.inputs[fieldInterval].Value() != "1001" {
		t.Fatalf("expected fields editable again, got %q", m.inputs[fieldInterval].Value())
	}
}

// TestOutcome_FailedShowsReason verifies failures surface as errors.
func TestOutcome_FailedShowsReason(t *testing.T) {
	m := press(newTestModel(&fakeRuns{}), tea.KeyMsg{Type: tea.KeyEnter})
	failure := errors.New("press left button: refused")
	updated, _ := m.Update(outcomeMsg(clicker.Outcome{Status: clicker.StatusFailed, Cycles: 2, Reason: failure.Error(), Err: failure}))
	m = updated.(Model)
	if !errors.Is(m.err, failure) || !strings.Contains(m.View(), "refused") {
		t.Fatalf("expected failure to be shown, got %v", m.err)
	}
}

// TestReset_RestoresDefaults verifies r restores the default values.
func TestReset_RestoresDefaults(t *testing.T) {
	m := newTestModel(&fakeRuns{})
	m = press(m, runes("7"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.inputs[fieldInterval].Value() != "1007" || m.button != wininput.ButtonRight {
		t.Fatalf("unexpected edited state %q %s", m.inputs[fieldInterval].Value(), m.button)
	}
	m = press(m, runes("r"))
	if m.inputs[fieldInterval].Value() != "100" || m.button != wininput.ButtonLeft {
		t.Fatalf("expected defaults after reset")
	}
}

// TestQuit_StopsActiveRun verifies quitting stops the run and exits.
func TestQuit_StopsActiveRun(t *testing.T) {
	runs := &fakeRuns{}
	m := press(newTestModel(runs), tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if len(runs.stopped) != 1 {
		t.Fatalf("expected run to be stopped on quit")
	}
}

// TestWindowSize verifies width tracking.
func TestWindowSize(t *testing.T) {
	updated, cmd := newTestModel(&fakeRuns{}).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cmd != nil {
		t.Fatalf("window size should not produce a command")
	}
	if updated.(Model).width != 120 {
		t.Fatalf("expected width 120")
	}
}

// TestWaitForOutcome verifies channel messages become tea messages.
func TestWaitForOutcome(t *testing.T) {
	ch := make(chan clicker.Outcome, 1)
	ch <- clicker.Outcome{Status: clicker.StatusCompleted, Cycles: 3}
	if msg, ok := waitForOutcome(ch)().(outcomeMsg); !ok || msg.Cycles != 3 {
		t.Fatalf("expected outcomeMsg, got %#v", msg)
	}
	close(ch)
	if _, ok := waitForOutcome(ch)().(outcomesClosedMsg); !ok {
		t.Fatalf("expected outcomesClosedMsg")
	}
	if waitForOutcome(nil) != nil {
		t.Fatalf("expected nil command for nil channel")
	}
}

// TestQuit_ReleasesHeldButton verifies quitting mid-hold leaves no button pressed.
func TestQuit_ReleasesHeldButton(t *testing.T) {
	pressed := make(chan struct{}, 1)
	inj := &testutil.FakeInjector{OnDown: func(int) {
		select {
		case pressed <- struct{}{}:
		default:
		}
	}}
	loop, err := clicker.NewLoop(inj, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}
	runs, err := runner.New(loop, zerolog.Nop())
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	defaults := Defaults{Interval: "500", Button: "left"}
	m := New(runs, make(chan clicker.Outcome, 1), clicker.ParseOptions{UnboundedThreshold: 999}, defaults)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Running() {
		t.Fatalf("expected a running model, err=%v", m.err)
	}
	select {
	case <-pressed:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the first press")
	}

	_ = press(m, runes("q"))
	if err := releaseOnExit(runs); err != nil {
		t.Fatalf("releaseOnExit failed: %v", err)
	}
	if pairs, balanced := inj.Pairs(); pairs < 1 || !balanced {
		t.Fatalf("button left pressed after quit: pairs=%d calls=%v", pairs, inj.Calls())
	}
	if runs.Snapshot().Running {
		t.Fatalf("run still active after quit")
	}
}
