package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/internal/render"
)

func newInspectCmd(cfg *config.Config) *cobra.Command {
	var (
		orderStr   string
		tickHz     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Show image summary",
		Long:  "Decode an image and display its cursors, level histogram, and tick span, plus capture metadata when a .meta.json sidecar exists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], orderStr, tickHz, cfg, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&orderStr, "order", "", "image byte order: little, big")
	cmd.Flags().IntVar(&tickHz, "tick-hz", 0, "tick rate for elapsed-time display (0 = raw ticks)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func runInspect(path, orderStr string, tickHz int, cfg *config.Config, jsonOutput bool) error {
	img, err := loadImage(path, orderStr, cfg.Dump.ByteOrder)
	if err != nil {
		return err
	}

	// The sidecar is optional; absence is not an error.
	var meta *rawdump.Metadata
	if m, err := rawdump.ReadMetadata(path); err == nil {
		meta = &m
	}

	summary := render.BuildSummary(path, img, meta)
	if jsonOutput {
		return summary.WriteJSON(os.Stdout)
	}
	summary.WriteText(os.Stdout, effectiveTickHz(tickHz, cfg))
	return nil
}

// effectiveTickHz resolves the flag against the configured default.
func effectiveTickHz(flag int, cfg *config.Config) int {
	if flag > 0 {
		return flag
	}
	return cfg.Dump.TickHz
}
