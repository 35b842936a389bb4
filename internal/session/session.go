// Package session holds runtime state for the active operator.
package session

import "sync"

// Draft is the last parameter input the operator submitted, kept raw so a
// control surface can redisplay exactly what was typed.
type Draft struct {
	Interval string `json:"interval"`
	Limit    string `json:"limit"`
	Button   string `json:"button"`
}

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	PasswordMode  bool
	MonitorIndex  int
	Draft         Draft
}

// Session holds runtime state for the active operator.
type Session struct {
	mu            sync.RWMutex
	password      string
	passwordMode  bool
	authenticated bool
	monitorIndex  int
	draft         Draft
}

// New returns a session protected by password. An empty password with
// password mode disabled yields a session that is always authenticated.
func New(password string, passwordMode bool) *Session {
	return &Session{
		password:     password,
		passwordMode: passwordMode,
		monitorIndex: 1,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.passwordMode {
		s.authenticated = true
		return true
	}
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated || !s.passwordMode
}

// SetMonitor sets the selected monitor index.
func (s *Session) SetMonitor(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitorIndex = idx
}

// Monitor returns the selected monitor index.
func (s *Session) Monitor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitorIndex
}

// SetDraft stores the latest submitted parameters.
func (s *Session) SetDraft(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

// Draft returns the latest submitted parameters.
func (s *Session) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated || !s.passwordMode,
		PasswordMode:  s.passwordMode,
		MonitorIndex:  s.monitorIndex,
		Draft:         s.draft,
	}
}
