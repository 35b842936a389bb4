package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/control"
	"github.com/frudas24/airclick/internal/preset"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/session"
	"github.com/frudas24/airclick/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/start", a.handleStart)
	mux.HandleFunc("/api/stop", a.handleStop)
	mux.HandleFunc("/api/presets", a.handlePresets)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", a.staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

// StartRequest is the body of POST /api/start. Preset, when set, replaces
// the other fields.
type StartRequest struct {
	Interval string `json:"interval"`
	Limit    string `json:"limit"`
	Button   string `json:"button"`
	Preset   string `json:"preset,omitempty"`
}

type stopRequest struct {
	ID string `json:"id"`
}

type stopResponse struct {
	Stopped bool `json:"stopped"`
}

type stateResponse struct {
	runner.State
	Draft         session.Draft `json:"draft"`
	MonitorIndex  int           `json:"monitor"`
	Authenticated bool          `json:"authenticated"`
	PasswordMode  bool          `json:"passwordMode"`
	Summary       string        `json:"summary,omitempty"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		a.log.Warn().Str("remote", r.RemoteAddr).Msg("login rejected")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	list, err := a.ListMonitors()
	if err != nil {
		http.Error(w, "failed to list monitors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleState returns run state and the session draft.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		State:         a.runs.Snapshot(),
		Draft:         snap.Draft,
		MonitorIndex:  snap.MonitorIndex,
		Authenticated: snap.Authenticated,
		PasswordMode:  snap.PasswordMode,
	}
	if resp.Last != nil {
		resp.Summary = resp.Last.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStart validates parameters and starts a run.
func (a *App) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h, err := a.StartRun(req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleStop requests cancellation. It always succeeds.
func (a *App) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	var req stopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stopResponse{Stopped: a.runs.StopRun(req.ID)})
}

// handlePresets lists, saves and deletes presets.
func (a *App) handlePresets(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	var (
		list preset.List
		err  error
	)
	switch r.Method {
	case http.MethodGet:
		list, err = a.Presets()
	case http.MethodPost:
		var p preset.Preset
		if decodeErr := json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		list, err = a.SavePreset(p)
	case http.MethodDelete:
		list, err = a.DeletePreset(r.URL.Query().Get("name"))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// writeError maps domain errors to status codes with a control error body.
func (a *App) writeError(w http.ResponseWriter, err error) {
	ev := control.ErrorEvent(err)
	status := http.StatusInternalServerError
	var verr *clicker.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, runner.ErrRunActive):
		status = http.StatusConflict
	case errors.Is(err, preset.ErrNotFound):
		status = http.StatusNotFound
	default:
		a.log.Error().Err(err).Msg("request failed")
	}
	w.Header().Set("X-Error-Code", ev.Code)
	writeJSON(w, status, ev)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.log.Warn().Err(err).Msg("static assets unavailable")
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
