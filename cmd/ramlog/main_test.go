package main

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

// writeTestImage saves a small capture and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	var tick uint32
	s := &ramlog.Store{}
	s.Init(func() uint32 { tick += 5; return tick - 5 })
	s.Event(ramlog.Info, "Boot")
	s.Event(ramlog.Fault, "Overtemp!")
	s.Event(ramlog.Warn, "Retrying...")

	path := filepath.Join(t.TempDir(), "dump.bin")
	if err := rawdump.WriteFile(path, rawdump.Capture(s), binary.LittleEndian); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in    string
		level ramlog.Level
		set   bool
	}{
		{"", 0, false},
		{"info", ramlog.Info, true},
		{"WARN", ramlog.Warn, true},
		{"Fault", ramlog.Fault, true},
	}
	for _, c := range cases {
		level, set, err := parseLevel(c.in)
		if err != nil {
			t.Fatalf("parseLevel(%q) error: %v", c.in, err)
		}
		if level != c.level || set != c.set {
			t.Fatalf("parseLevel(%q) = %v, %v", c.in, level, set)
		}
	}

	if _, _, err := parseLevel("debug"); err == nil {
		t.Fatal("parseLevel accepted unknown level")
	}
}

func TestLoadImage(t *testing.T) {
	path := writeTestImage(t)

	img, err := loadImage(path, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if img.Count != 3 {
		t.Fatalf("count = %d, want 3", img.Count)
	}
}

func TestLoadImageMissing(t *testing.T) {
	_, err := loadImage(filepath.Join(t.TempDir(), "nope.bin"), "", "")
	var ce *cli.Error
	if !errors.As(err, &ce) || ce.Code != cli.ExitNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestLoadImageBadOrder(t *testing.T) {
	_, err := loadImage(writeTestImage(t), "middle", "")
	var ce *cli.Error
	if !errors.As(err, &ce) || ce.Code != cli.ExitUsage {
		t.Fatalf("err = %v, want usage error", err)
	}
}

func TestLoadImageCorrupt(t *testing.T) {
	// A little-endian image read as big-endian has wild cursor values.
	_, err := loadImage(writeTestImage(t), "big", "")
	var ce *cli.Error
	if !errors.As(err, &ce) || ce.Code != cli.ExitCorrupt {
		t.Fatalf("err = %v, want corrupt error", err)
	}
}

func TestRunDump(t *testing.T) {
	cfg := &config.Config{}
	if err := runDump(writeTestImage(t), "", 0, "fault", "", cfg, false, true); err != nil {
		t.Fatal(err)
	}
	if err := runDump(writeTestImage(t), "", 0, "", "Retry", cfg, false, false); err != nil {
		t.Fatal(err)
	}
}

func TestRunDumpBadGrep(t *testing.T) {
	err := runDump(writeTestImage(t), "", 0, "", "(unclosed", &config.Config{}, false, false)
	var ce *cli.Error
	if !errors.As(err, &ce) || ce.Code != cli.ExitUsage {
		t.Fatalf("err = %v, want usage error", err)
	}
}

func TestRunExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.jsonl")
	if err := runExport(writeTestImage(t), "", "jsonl", out, &config.Config{}, false); err != nil {
		t.Fatal(err)
	}
}

func TestRunExportFormatFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.Format = "csv"
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := runExport(writeTestImage(t), "", "", out, cfg, false); err != nil {
		t.Fatal(err)
	}
}

func TestRunSelftestSavesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "self.bin.zst")
	if err := runSelftest(out); err != nil {
		t.Fatal(err)
	}

	img, err := loadImage(out, "little", "")
	if err != nil {
		t.Fatal(err)
	}
	if img.Count != ramlog.Entries {
		t.Fatalf("selftest image count = %d, want full ring", img.Count)
	}

	meta, err := rawdump.ReadMetadata(out)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Source != "selftest" {
		t.Fatalf("meta source = %q", meta.Source)
	}
}

func TestEffectiveTickHz(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dump.TickHz = 100
	if got := effectiveTickHz(0, cfg); got != 100 {
		t.Fatalf("effectiveTickHz(0) = %d, want config value", got)
	}
	if got := effectiveTickHz(32768, cfg); got != 32768 {
		t.Fatalf("effectiveTickHz(flag) = %d, want flag value", got)
	}
}
