package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/export"
	"github.com/ACIDBURN2501/embedded-log/internal/render"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

func newDumpCmd(cfg *config.Config) *cobra.Command {
	var (
		orderStr   string
		tickHz     int
		levelStr   string
		grepStr    string
		raw        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Print entries in chronological order",
		Long:  "Decode an image and print the surviving entries oldest-first. With --raw, print the physical slot array instead, including stale slots past the valid count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], orderStr, tickHz, levelStr, grepStr, cfg, raw, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&orderStr, "order", "", "image byte order: little, big")
	cmd.Flags().IntVar(&tickHz, "tick-hz", 0, "tick rate for elapsed-time display (0 = raw ticks)")
	cmd.Flags().StringVar(&levelStr, "level", "", "only show entries at this level: info, warn, fault")
	cmd.Flags().StringVar(&grepStr, "grep", "", "regex filter on message text")
	cmd.Flags().BoolVar(&raw, "raw", false, "print physical slot order, stale slots included")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSONL")

	return cmd
}

func parseLevel(s string) (ramlog.Level, bool, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, false, nil
	case "info":
		return ramlog.Info, true, nil
	case "warn":
		return ramlog.Warn, true, nil
	case "fault":
		return ramlog.Fault, true, nil
	default:
		return 0, false, fmt.Errorf("unknown level %q: expected info, warn, or fault", s)
	}
}

func runDump(path, orderStr string, tickHz int, levelStr, grepStr string, cfg *config.Config, raw, jsonOutput bool) error {
	level, levelSet, err := parseLevel(levelStr)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	var grep *regexp.Regexp
	if grepStr != "" {
		grep, err = regexp.Compile(grepStr)
		if err != nil {
			return cli.NewUsageError(fmt.Sprintf("invalid --grep: %v", err))
		}
	}

	img, err := loadImage(path, orderStr, cfg.Dump.ByteOrder)
	if err != nil {
		return err
	}

	entries := img.Chronological()
	if raw {
		entries = img.Entries[:]
	}

	hz := effectiveTickHz(tickHz, cfg)
	enc := json.NewEncoder(os.Stdout)
	for i, e := range entries {
		if levelSet && e.Level != level {
			continue
		}
		if grep != nil && !grep.MatchString(e.Message()) {
			continue
		}
		if jsonOutput {
			if err := enc.Encode(export.Record{
				Seq:     i,
				Tick:    e.Timestamp,
				Level:   e.Level.String(),
				Message: e.Message(),
			}); err != nil {
				return err
			}
			continue
		}
		fmt.Println(render.FormatEntry(i, e, hz))
	}
	return nil
}
