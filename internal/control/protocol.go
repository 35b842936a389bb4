// Package control serves the run control websocket.
package control

import (
	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/session"
)

// Client message types.
const (
	MsgStart = "start"
	MsgStop  = "stop"
	MsgState = "state"
)

// Server event types.
const (
	EventState   = "state"
	EventOutcome = "outcome"
	EventError   = "error"
)

// Error codes carried by error events.
const (
	CodeInvalid   = "invalid_params"
	CodeRunActive = "run_active"
	CodeNotFound  = "preset_not_found"
	CodeUnknown   = "unknown_message"
	CodeInternal  = "internal"
)

// Message is a client to server control payload.
type Message struct {
	T        string `json:"t"`
	ID       string `json:"id,omitempty"`
	Interval string `json:"interval,omitempty"`
	Limit    string `json:"limit,omitempty"`
	Button   string `json:"button,omitempty"`
	Preset   string `json:"preset,omitempty"`
}

// Event is a server to client control payload.
type Event struct {
	T       string           `json:"t"`
	State   *runner.State    `json:"state,omitempty"`
	Draft   *session.Draft   `json:"draft,omitempty"`
	Outcome *clicker.Outcome `json:"outcome,omitempty"`
	Code    string           `json:"code,omitempty"`
	Field   string           `json:"field,omitempty"`
	Error   string           `json:"error,omitempty"`
}
