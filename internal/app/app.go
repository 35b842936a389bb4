// Package app wires HTTP, the control socket and run state together.
package app

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/config"
	"github.com/frudas24/airclick/internal/control"
	"github.com/frudas24/airclick/internal/monitor"
	"github.com/frudas24/airclick/internal/preset"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/session"
)

// App coordinates the HTTP API, the control websocket and the run manager.
type App struct {
	mu       sync.Mutex
	cfg      config.Config
	session  *session.Session
	runs     *runner.Manager
	control  *control.Server
	monitors []monitor.Monitor
	log      zerolog.Logger
}

// New creates a new application with its dependencies wired. monitors may be
// empty on hosts without display enumeration.
func New(cfg config.Config, sess *session.Session, runs *runner.Manager, monitors []monitor.Monitor, log zerolog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if runs == nil {
		return nil, errors.New("run manager is required")
	}

	app := &App{
		cfg:      cfg,
		session:  sess,
		runs:     runs,
		monitors: append([]monitor.Monitor(nil), monitors...),
		log:      log,
	}

	ctrl, err := control.NewServer(sess, runs, control.Options{
		Policy:     control.ConnReplace,
		Parse:      app.ParseOptions(),
		LookupFunc: app.LookupPreset,
		Log:        log.With().Str("component", "control").Logger(),
	})
	if err != nil {
		return nil, err
	}
	app.control = ctrl
	return app, nil
}

// Start initializes session state from configuration and checks the presets file.
func (a *App) Start() error {
	a.session.SetMonitor(a.cfg.MonitorIndex)
	a.session.SetDraft(session.Draft{
		Interval: strconv.Itoa(a.cfg.DefaultIntervalMs),
		Limit:    a.cfg.DefaultLimit,
		Button:   a.cfg.DefaultButton,
	})

	presets, err := a.Presets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	a.log.Info().Int("presets", len(presets)).Int("monitors", len(a.monitors)).Msg("app started")
	return nil
}

// Stop cancels any active run and waits for its final release. The wait is
// one hold of the active run plus grace.
func (a *App) Stop(grace time.Duration) error {
	return a.runs.StopAndWait(grace)
}

// ParseOptions returns the parameter parsing options from configuration.
func (a *App) ParseOptions() clicker.ParseOptions {
	return clicker.ParseOptions{UnboundedThreshold: a.cfg.UnboundedThreshold}
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() ([]monitor.Monitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out, nil
}

// Presets reads the preset file.
func (a *App) Presets() (preset.List, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return preset.Load(a.cfg.PresetsPath)
}

// LookupPreset returns the named preset or preset.ErrNotFound.
func (a *App) LookupPreset(name string) (preset.Preset, error) {
	list, err := a.Presets()
	if err != nil {
		return preset.Preset{}, err
	}
	p, ok := list.Find(name)
	if !ok {
		return preset.Preset{}, fmt.Errorf("%w: %s", preset.ErrNotFound, name)
	}
	return p, nil
}

// SavePreset validates and stores a preset, replacing one with the same name.
func (a *App) SavePreset(p preset.Preset) (preset.List, error) {
	if err := p.Validate(a.ParseOptions()); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	list, err := preset.Load(a.cfg.PresetsPath)
	if err != nil {
		return nil, err
	}
	list = list.Upsert(p)
	if err := preset.Save(a.cfg.PresetsPath, list); err != nil {
		return nil, err
	}
	a.log.Info().Str("preset", p.Name).Msg("preset saved")
	return list, nil
}

// DeletePreset removes a preset by name.
func (a *App) DeletePreset(name string) (preset.List, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	list, err := preset.Load(a.cfg.PresetsPath)
	if err != nil {
		return nil, err
	}
	list, err = list.Delete(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	if err := preset.Save(a.cfg.PresetsPath, list); err != nil {
		return nil, err
	}
	a.log.Info().Str("preset", name).Msg("preset deleted")
	return list, nil
}

// StartRun resolves the request into parameters and starts a run.
func (a *App) StartRun(req StartRequest) (runner.Handle, error) {
	draft := session.Draft{Interval: req.Interval, Limit: req.Limit, Button: req.Button}
	if req.Preset != "" {
		p, err := a.LookupPreset(req.Preset)
		if err != nil {
			return runner.Handle{}, err
		}
		draft = session.Draft{Interval: p.Interval, Limit: p.Limit, Button: p.Button}
	}
	params, err := clicker.ParseParams(draft.Interval, draft.Limit, draft.Button, a.ParseOptions())
	if err != nil {
		return runner.Handle{}, err
	}
	h, err := a.runs.StartRun(params)
	if err != nil {
		return runner.Handle{}, err
	}
	a.session.SetDraft(draft)
	return h, nil
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
