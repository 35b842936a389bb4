package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frudas24/airclick/internal/preset"
	"github.com/frudas24/airclick/internal/tui"
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal control panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The panel owns the terminal; only warnings reach stderr.
			cfg, log, err := opts.load(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			runs, _, err := newRunner(cfg, log.Level(maxLevel(log.GetLevel())))
			if err != nil {
				return err
			}
			return tui.Run(runs, parseOptions(cfg), tui.Defaults{
				Interval: strconv.Itoa(cfg.DefaultIntervalMs),
				Limit:    cfg.DefaultLimit,
				Button:   cfg.DefaultButton,
			})
		},
	}
}

func presetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved click presets",
	}
	cmd.AddCommand(presetsListCmd(opts), presetsSaveCmd(opts), presetsDeleteCmd(opts))
	return cmd
}

func presetsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			list, err := preset.Load(cfg.PresetsPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatPresetList(list))
			return nil
		},
	}
}

func presetsSaveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or replace a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			interval, _ := cmd.Flags().GetString("interval")
			limit, _ := cmd.Flags().GetString("limit")
			button, _ := cmd.Flags().GetString("button")
			p := preset.Preset{Name: args[0], Interval: interval, Limit: limit, Button: button}
			if err := p.Validate(parseOptions(cfg)); err != nil {
				return err
			}

			list, err := preset.Load(cfg.PresetsPath)
			if err != nil {
				return err
			}
			if err := preset.Save(cfg.PresetsPath, list.Upsert(p)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", strings.TrimSpace(p.Name))
			return nil
		},
	}
	cmd.Flags().String("interval", "100", "hold time and gap between clicks in ms")
	cmd.Flags().String("limit", "", "maximum clicks; empty or inf for unbounded")
	cmd.Flags().String("button", "left", "left or right")
	return cmd
}

func presetsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			list, err := preset.Load(cfg.PresetsPath)
			if err != nil {
				return err
			}
			list, err = list.Delete(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			if err := preset.Save(cfg.PresetsPath, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// formatPresetList renders presets as an aligned table.
func formatPresetList(list preset.List) string {
	if len(list) == 0 {
		return "No presets saved\n"
	}
	var b strings.Builder
	b.WriteString("Presets\n")
	b.WriteString("───────\n")
	for _, p := range list {
		limit := p.Limit
		if limit == "" {
			limit = "inf"
		}
		button := p.Button
		if button == "" {
			button = "left"
		}
		fmt.Fprintf(&b, "  %-20s  %6s ms  %6s  %s\n", p.Name, p.Interval, limit, button)
	}
	return b.String()
}

// maxLevel keeps informational logs from drawing over the terminal panel.
func maxLevel(level zerolog.Level) zerolog.Level {
	if level < zerolog.WarnLevel {
		return zerolog.WarnLevel
	}
	return level
}
