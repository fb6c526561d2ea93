package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/tui"
)

func newViewCmd(cfg *config.Config) *cobra.Command {
	var (
		orderStr string
		tickHz   int
	)

	cmd := &cobra.Command{
		Use:   "view <image>",
		Short: "Browse an image interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0], orderStr, tickHz, cfg)
		},
	}

	cmd.Flags().StringVar(&orderStr, "order", "", "image byte order: little, big")
	cmd.Flags().IntVar(&tickHz, "tick-hz", 0, "tick rate for elapsed-time display (0 = raw ticks)")

	return cmd
}

func runView(path, orderStr string, tickHz int, cfg *config.Config) error {
	img, err := loadImage(path, orderStr, cfg.Dump.ByteOrder)
	if err != nil {
		return err
	}

	model := tui.New(path, img, effectiveTickHz(tickHz, cfg))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
