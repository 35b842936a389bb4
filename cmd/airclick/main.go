// Package main is the entry point for the AirClick CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	debug   bool
	dataDir string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "airclick",
		Short:        "AirClick: timed pointer clicking from the browser, terminal or shell",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose debug logging")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "./data", "directory holding .env and presets.yaml")

	root.AddCommand(
		serveCmd(opts),
		clickCmd(opts),
		tuiCmd(opts),
		presetsCmd(opts),
	)
	return root
}

// newLogger builds the console logger used by every command.
func newLogger(w io.Writer, level zerolog.Level, debug bool) zerolog.Logger {
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
