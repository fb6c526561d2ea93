package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
dump:
  byte_order: big
  tick_hz: 1000
export:
  format: parquet
upload:
  to: s3://firmware-logs/dumps
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dump.ByteOrder != "big" {
		t.Fatalf("byte_order = %q, want %q", cfg.Dump.ByteOrder, "big")
	}
	if cfg.Dump.TickHz != 1000 {
		t.Fatalf("tick_hz = %d, want 1000", cfg.Dump.TickHz)
	}
	if cfg.Export.Format != "parquet" {
		t.Fatalf("format = %q, want %q", cfg.Export.Format, "parquet")
	}
	if cfg.Upload.To != "s3://firmware-logs/dumps" {
		t.Fatalf("to = %q", cfg.Upload.To)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := writeConfig(t, "dump: [not a map")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
dump:
  byte_order: little
  tick_hz: 100
`)

	t.Setenv("RAMLOG_BYTE_ORDER", "big")
	t.Setenv("RAMLOG_TICK_HZ", "32768")
	t.Setenv("RAMLOG_EXPORT_FORMAT", "jsonl")
	t.Setenv("RAMLOG_UPLOAD_TO", "gs://bucket/x")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dump.ByteOrder != "big" {
		t.Fatalf("byte_order = %q, want env override", cfg.Dump.ByteOrder)
	}
	if cfg.Dump.TickHz != 32768 {
		t.Fatalf("tick_hz = %d, want 32768", cfg.Dump.TickHz)
	}
	if cfg.Export.Format != "jsonl" || cfg.Upload.To != "gs://bucket/x" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestEnvInvalidTickHzIgnored(t *testing.T) {
	path := writeConfig(t, "dump:\n  tick_hz: 100\n")

	t.Setenv("RAMLOG_TICK_HZ", "fast")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dump.TickHz != 100 {
		t.Fatalf("tick_hz = %d, want 100", cfg.Dump.TickHz)
	}
}
