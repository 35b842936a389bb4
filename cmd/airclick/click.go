package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/config"
	"github.com/frudas24/airclick/internal/preset"
	"github.com/frudas24/airclick/internal/runner"
)

// clickFlags are the raw values of the click command flags. Empty values
// fall back to the configured defaults.
type clickFlags struct {
	interval string
	limit    string
	button   string
	preset   string
}

func clickCmd(opts *rootOptions) *cobra.Command {
	flags := &clickFlags{}
	cmd := &cobra.Command{
		Use:   "click",
		Short: "Run clicks headless until the limit is reached or Ctrl+C",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			params, err := resolveClickParams(cfg, *flags)
			if err != nil {
				return err
			}
			runs, _, err := newRunner(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()
			if !params.Bounded() {
				fmt.Fprintln(cmd.OutOrStdout(), "clicking until Ctrl+C")
			}
			out, err := clickUntil(ctx, runs, params)
			if err != nil {
				return err
			}
			return reportOutcome(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&flags.interval, "interval", "", "hold time and gap between clicks in ms (default from config)")
	cmd.Flags().StringVar(&flags.limit, "limit", "", "maximum clicks; empty or inf for unbounded")
	cmd.Flags().StringVar(&flags.button, "button", "", "left or right")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "use a saved preset instead of the other flags")
	return cmd
}

// resolveClickParams builds run parameters from a preset or the flags.
func resolveClickParams(cfg config.Config, f clickFlags) (clicker.Params, error) {
	opts := parseOptions(cfg)
	if f.preset != "" {
		list, err := preset.Load(cfg.PresetsPath)
		if err != nil {
			return clicker.Params{}, err
		}
		p, ok := list.Find(f.preset)
		if !ok {
			return clicker.Params{}, fmt.Errorf("%w: %s", preset.ErrNotFound, f.preset)
		}
		return p.Params(opts)
	}

	interval := f.interval
	if interval == "" {
		interval = strconv.Itoa(cfg.DefaultIntervalMs)
	}
	limit := f.limit
	if limit == "" {
		limit = cfg.DefaultLimit
	}
	button := f.button
	if button == "" {
		button = cfg.DefaultButton
	}
	return clicker.ParseParams(interval, limit, button, opts)
}

// clickUntil starts one run and waits for its outcome. Cancelling ctx stops
// the run after the current cycle; the outcome is still returned.
func clickUntil(ctx context.Context, runs *runner.Manager, params clicker.Params) (clicker.Outcome, error) {
	outcomes, unsubscribe := runs.Subscribe()
	defer unsubscribe()

	h, err := runs.StartRun(params)
	if err != nil {
		return clicker.Outcome{}, err
	}

	select {
	case out := <-outcomes:
		return out, nil
	case <-ctx.Done():
		runs.StopRun(h.ID)
	}
	return <-outcomes, nil
}

// reportOutcome prints the outcome and turns a failed run into an error.
func reportOutcome(w io.Writer, out clicker.Outcome) error {
	fmt.Fprintf(w, "%s in %s\n", out, out.Elapsed())
	if out.Status == clicker.StatusFailed {
		return fmt.Errorf("run failed: %s", out.Reason)
	}
	return nil
}
