package main

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/config"
	"github.com/frudas24/airclick/internal/monitor"
	"github.com/frudas24/airclick/internal/runner"
	"github.com/frudas24/airclick/internal/wininput"
)

// load reads configuration and builds the logger. Terminal surfaces pass
// local=true so UI_PASSWORD is not required.
func (o *rootOptions) load(logOut io.Writer, local bool) (config.Config, zerolog.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if local {
		cfg, err = config.LoadLocal(o.dataDir)
	} else {
		cfg, err = config.LoadFrom(o.dataDir)
	}
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	log := newLogger(logOut, cfg.LogLevel, o.debug)
	if o.debug {
		log.Debug().Msg("debug logging enabled")
	}
	return cfg, log, nil
}

// newRunner wires the platform injector, the monitor list and the run
// manager. Unsupported platforms get a manager whose runs fail on the first
// press, which keeps the API surfaces usable for inspection.
func newRunner(cfg config.Config, log zerolog.Logger) (*runner.Manager, []monitor.Monitor, error) {
	injector, err := wininput.NewInjector()
	if err != nil {
		if !errors.Is(err, wininput.ErrUnsupported) {
			return nil, nil, err
		}
		log.Warn().Err(err).Msg("pointer injection unavailable; runs will fail")
	}

	monitors, err := monitor.ListMonitors()
	if err != nil {
		log.Warn().Err(err).Msg("monitor enumeration failed")
		monitors = nil
	}
	return buildRunner(injector, monitors, cfg, log)
}

// buildRunner assembles the loop and manager around an injector.
func buildRunner(injector wininput.Injector, monitors []monitor.Monitor, cfg config.Config, log zerolog.Logger) (*runner.Manager, []monitor.Monitor, error) {
	loop, err := clicker.NewLoop(injector, log.With().Str("component", "loop").Logger())
	if err != nil {
		return nil, nil, err
	}
	loop.Reposition = monitor.ShiftWithin(monitors, cfg.MonitorIndex, cfg.RecenterOffsetPx)

	runs, err := runner.New(loop, log.With().Str("component", "runner").Logger())
	if err != nil {
		return nil, nil, err
	}
	return runs, monitors, nil
}

// parseOptions returns the parameter parsing options from configuration.
func parseOptions(cfg config.Config) clicker.ParseOptions {
	return clicker.ParseOptions{UnboundedThreshold: cfg.UnboundedThreshold}
}
