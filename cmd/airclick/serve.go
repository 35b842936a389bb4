package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frudas24/airclick/internal/app"
	"github.com/frudas24/airclick/internal/config"
	"github.com/frudas24/airclick/internal/session"
)

// shutdownTimeout bounds the HTTP drain. Stopping an active run waits one
// hold of that run on top of it.
const shutdownTimeout = 5 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web control page and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			staticDir, _ := cmd.Flags().GetString("static")
			return runServe(opts, staticDir)
		},
	}
	cmd.Flags().String("static", "", "serve static files from this directory before the embedded copy")
	return cmd
}

// runServe wires the application and blocks until shutdown.
func runServe(opts *rootOptions, staticDir string) error {
	cfg, log, err := opts.load(os.Stderr, false)
	if err != nil {
		return err
	}
	logStartup(log, cfg)

	runs, monitors, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	sess := session.New(cfg.UIPassword, cfg.PasswordMode)
	appInstance, err := app.New(cfg, sess, runs, monitors, log.With().Str("component", "app").Logger())
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(shutdownTimeout); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, staticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signalContext()
	defer stop()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup prints startup checks and connection info.
func logStartup(log zerolog.Logger, cfg config.Config) {
	log.Info().Str("version", version).Msg("AirClick starting")
	logEnvStatus(log, cfg)
	log.Info().Str("presets", cfg.PresetsPath).Int("monitor", cfg.MonitorIndex).Msg("run defaults")
	logListenStatus(log, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and required values are set.
func logEnvStatus(log zerolog.Logger, cfg config.Config) {
	envPath := config.EnvPath(cfg.DataDir)
	if fileExists(envPath) {
		log.Info().Str("path", envPath).Msg("env check: ok")
	} else {
		log.Info().Str("path", envPath).Msg("env check: missing")
	}
	if !cfg.PasswordMode {
		log.Warn().Msg("env PASSWORD_MODE: disabled (dev mode)")
		return
	}
	if strings.TrimSpace(cfg.UIPassword) == "" {
		log.Warn().Msg("env UI_PASSWORD: missing")
	} else {
		log.Info().Msg("env UI_PASSWORD: set")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log zerolog.Logger, addr string) {
	log.Info().Str("addr", addr).Msg("listen addr")
	if url, ok := localURL(addr); ok {
		log.Info().Str("url", url).Msg("local url")
	}
}

// localURL turns a listen address into a browsable URL.
func localURL(addr string) (string, bool) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", false
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port), true
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
