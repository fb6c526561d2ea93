package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/export"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		orderStr   string
		formatStr  string
		outPath    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "Export entries to jsonl, CSV, parquet, or sqlite",
		Long:  "Convert a decoded image to external formats for ingestion into analytics tooling (DuckDB, pandas, spreadsheets).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], orderStr, formatStr, outPath, cfg, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&orderStr, "order", "", "image byte order: little, big")
	cmd.Flags().StringVar(&formatStr, "format", "", "output format: jsonl, csv, parquet, sqlite")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output summary as JSON")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(path, orderStr, formatStr, outPath string, cfg *config.Config, jsonOutput bool) error {
	if formatStr == "" {
		formatStr = cfg.Export.Format
	}
	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	img, err := loadImage(path, orderStr, cfg.Dump.ByteOrder)
	if err != nil {
		return err
	}

	written, err := export.Export(img, outPath, format)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Debug("export complete", zap.Int("records", written), zap.String("out", outPath))

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"source":  path,
			"format":  formatStr,
			"output":  outPath,
			"records": written,
		})
	}

	_, _ = fmt.Fprintf(os.Stderr, "Exported %d entries -> %s\n", written, outPath)
	return nil
}
