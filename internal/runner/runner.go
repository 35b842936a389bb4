// Package runner owns the single active click run and its outcome fan-out.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
)

// ErrRunActive is returned by StartRun while another run is outstanding.
var ErrRunActive = errors.New("a run is already active")

// Handle identifies a started run.
type Handle struct {
	ID        string         `json:"id"`
	Params    clicker.Params `json:"params"`
	StartedAt time.Time      `json:"startedAt"`
}

// State is a read-only view of the manager.
type State struct {
	Running bool             `json:"running"`
	Active  *Handle          `json:"active,omitempty"`
	Last    *clicker.Outcome `json:"last,omitempty"`
}

// Manager starts and stops runs. At most one run is active at a time; the
// RunControl is created once and reused for every run.
type Manager struct {
	mu      sync.Mutex
	loop    *clicker.Loop
	control *clicker.RunControl
	log     zerolog.Logger
	active  *Handle
	done    chan struct{}
	last    *clicker.Outcome
	subs    map[chan clicker.Outcome]struct{}
	newID   func() string
}

// New returns a manager driving loop.
func New(loop *clicker.Loop, log zerolog.Logger) (*Manager, error) {
	if loop == nil {
		return nil, errors.New("loop is required")
	}
	return &Manager{
		loop:    loop,
		control: clicker.NewRunControl(),
		log:     log,
		subs:    make(map[chan clicker.Outcome]struct{}),
		newID:   uuid.NewString,
	}, nil
}

// StartRun validates params, claims the active slot and runs the loop on its
// own goroutine. It fails with ErrRunActive while a run is outstanding.
func (m *Manager) StartRun(params clicker.Params) (Handle, error) {
	if err := params.Validate(); err != nil {
		return Handle{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return Handle{}, ErrRunActive
	}

	h := Handle{ID: m.newID(), Params: params, StartedAt: time.Now()}
	done := make(chan struct{})
	m.active = &h
	m.done = done
	m.control.Start()
	m.log.Debug().Str("run", h.ID).Str("params", params.String()).Msg("run accepted")

	go m.run(h, done)
	return h, nil
}

// StopRun requests cancellation of the run identified by id, or of whatever
// run is active when id is empty. Stale ids and idle managers are ignored.
// It reports whether a running loop was signalled by this call.
func (m *Manager) StopRun(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return false
	}
	if id != "" && id != m.active.ID {
		m.log.Debug().Str("run", id).Str("active", m.active.ID).Msg("stop ignored for stale run")
		return false
	}
	if !m.control.Stop() {
		return false
	}
	m.log.Info().Str("run", m.active.ID).Msg("stop requested")
	return true
}

// Subscribe registers for run outcomes. Every run publishes exactly one
// outcome; a subscriber that lags only keeps the newest one.
func (m *Manager) Subscribe() (<-chan clicker.Outcome, func()) {
	ch := make(chan clicker.Outcome, 1)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, ch)
			close(ch)
			m.mu.Unlock()
		})
	}
	return ch, cancel
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State{Running: m.active != nil}
	if m.active != nil {
		h := *m.active
		s.Active = &h
	}
	if m.last != nil {
		o := *m.last
		s.Last = &o
	}
	return s
}

// Wait blocks until no run is active or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	default:
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops any active run and waits for it to finish.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.StopRun("")
	return m.Wait(ctx)
}

// StopAndWait stops the active run and waits for its last release, allowing
// one full hold of the active run plus grace. It is a no-op when idle.
func (m *Manager) StopAndWait(grace time.Duration) error {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return nil
	}
	hold := m.active.Params.Interval()
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), hold+grace)
	defer cancel()
	if err := m.Shutdown(ctx); err != nil {
		m.log.Error().Err(err).Dur("hold", hold).Msg("run did not finish; button may still be pressed")
		return fmt.Errorf("wait for release: %w", err)
	}
	return nil
}

// run executes one loop and releases the active slot.
func (m *Manager) run(h Handle, done chan struct{}) {
	defer close(done)
	out := m.loop.Run(h.Params, m.control)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = nil
	m.last = &out
	m.publishLocked(out)
}

// publishLocked sends an outcome to all subscribers, replacing any unread one.
func (m *Manager) publishLocked(out clicker.Outcome) {
	for ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- out:
		default:
		}
	}
}
