package control

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/preset"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/session"
)

// ConnPolicy controls how a second control connection is handled.
type ConnPolicy int

const (
	// ConnReject refuses new connections while one is active.
	ConnReject ConnPolicy = iota
	// ConnReplace closes the active connection when a new one arrives.
	ConnReplace
)

// Runs is the run manager surface the control socket drives.
type Runs interface {
	StartRun(clicker.Params) (runner.Handle, error)
	StopRun(id string) bool
	Snapshot() runner.State
	Subscribe() (<-chan clicker.Outcome, func())
}

// PresetLookup resolves a named preset.
type PresetLookup func(name string) (preset.Preset, error)

// Options configures a Server.
type Options struct {
	Policy     ConnPolicy
	Parse      clicker.ParseOptions
	LookupFunc PresetLookup
	Log        zerolog.Logger
}

// Server handles websocket run control.
type Server struct {
	mu       sync.Mutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	runs     Runs
	opts     Options
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, runs Runs, opts Options) (*Server, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if runs == nil {
		return nil, errors.New("run manager is required")
	}
	return &Server{
		session: sess,
		runs:    runs,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.rejectConn(conn, err.Error())
		return
	}
	defer s.cleanupConn(conn)

	outcomes, unsubscribe := s.runs.Subscribe()
	defer unsubscribe()
	done := make(chan struct{})
	defer close(done)
	go s.forwardOutcomes(conn, outcomes, done)

	if err := s.sendState(conn); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(conn, msg); err != nil {
			s.opts.Log.Debug().Err(err).Msg("control connection closed")
			return
		}
	}
}

// acceptConn registers a new connection according to the policy.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		if s.opts.Policy != ConnReplace {
			return fmt.Errorf("control connection already active")
		}
		_ = s.conn.Close()
	}
	s.conn = conn
	return nil
}

// rejectConn sends a policy violation close and closes the socket.
func (s *Server) rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	_ = conn.Close()
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// handleMessage dispatches a single control message. Only write failures
// end the connection; request errors are reported as error events.
func (s *Server) handleMessage(conn *websocket.Conn, msg Message) error {
	switch msg.T {
	case MsgStart:
		return s.handleStart(conn, msg)
	case MsgStop:
		s.runs.StopRun(msg.ID)
		return s.sendState(conn)
	case MsgState:
		return s.sendState(conn)
	default:
		return s.sendTo(conn, Event{T: EventError, Code: CodeUnknown, Error: fmt.Sprintf("unknown message %q", msg.T)})
	}
}

// handleStart resolves parameters and starts a run.
func (s *Server) handleStart(conn *websocket.Conn, msg Message) error {
	draft := session.Draft{Interval: msg.Interval, Limit: msg.Limit, Button: msg.Button}
	if msg.Preset != "" {
		p, err := s.lookup(msg.Preset)
		if err != nil {
			return s.sendError(conn, err)
		}
		draft = session.Draft{Interval: p.Interval, Limit: p.Limit, Button: p.Button}
	}

	params, err := clicker.ParseParams(draft.Interval, draft.Limit, draft.Button, s.opts.Parse)
	if err != nil {
		return s.sendError(conn, err)
	}
	h, err := s.runs.StartRun(params)
	if err != nil {
		return s.sendError(conn, err)
	}
	s.session.SetDraft(draft)
	s.opts.Log.Info().Str("run", h.ID).Str("params", params.String()).Msg("run started from control socket")
	return s.sendState(conn)
}

func (s *Server) lookup(name string) (preset.Preset, error) {
	if s.opts.LookupFunc == nil {
		return preset.Preset{}, preset.ErrNotFound
	}
	return s.opts.LookupFunc(name)
}

// forwardOutcomes pushes each run outcome followed by the new state.
func (s *Server) forwardOutcomes(conn *websocket.Conn, outcomes <-chan clicker.Outcome, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case out, ok := <-outcomes:
			if !ok {
				return
			}
			if err := s.sendTo(conn, Event{T: EventOutcome, Outcome: &out}); err != nil {
				return
			}
			if err := s.sendState(conn); err != nil {
				return
			}
		}
	}
}

// sendState writes the current run state and draft.
func (s *Server) sendState(conn *websocket.Conn) error {
	state := s.runs.Snapshot()
	draft := s.session.Draft()
	return s.sendTo(conn, Event{T: EventState, State: &state, Draft: &draft})
}

// sendError maps a request error onto an error event.
func (s *Server) sendError(conn *websocket.Conn, err error) error {
	return s.sendTo(conn, ErrorEvent(err))
}

// ErrorEvent classifies err for clients.
func ErrorEvent(err error) Event {
	ev := Event{T: EventError, Code: CodeInternal, Error: err.Error()}
	var verr *clicker.ValidationError
	switch {
	case errors.As(err, &verr):
		ev.Code = CodeInvalid
		ev.Field = verr.Field
	case errors.Is(err, runner.ErrRunActive):
		ev.Code = CodeRunActive
	case errors.Is(err, preset.ErrNotFound):
		ev.Code = CodeNotFound
	}
	return ev
}

// sendTo writes an event to the connection if it is still the active one.
func (s *Server) sendTo(conn *websocket.Conn, ev Event) error {
	s.mu.Lock()
	active := s.conn
	s.mu.Unlock()
	if active != conn {
		return fmt.Errorf("connection not active")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(ev)
}
