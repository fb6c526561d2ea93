// Package export converts decoded store images to formats analytics
// tooling can ingest.
package export

import (
	"fmt"

	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
)

// Format identifies the output format.
type Format string

const (
	FormatJSONL   Format = "jsonl"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "jsonl":
		return FormatJSONL, nil
	case "csv":
		return FormatCSV, nil
	case "parquet":
		return FormatParquet, nil
	case "sqlite":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported format %q: expected jsonl, csv, parquet, or sqlite", s)
	}
}

// Record is one exported entry. Seq is the chronological position
// within the image, 0 = oldest surviving.
type Record struct {
	Seq     int    `json:"seq"`
	Tick    uint32 `json:"tick"`
	Level   string `json:"level"`
	Message string `json:"msg"`
}

// Writer writes records to an output format.
type Writer interface {
	Write(Record) error
	Close() error
}

// Export writes the image's surviving entries, oldest-first, to dst in
// the given format. Returns the number of records written.
func Export(img *rawdump.Image, dst string, format Format) (int, error) {
	w, err := newWriter(dst, format)
	if err != nil {
		return 0, fmt.Errorf("create writer: %w", err)
	}

	var written int
	for i, e := range img.Chronological() {
		rec := Record{
			Seq:     i,
			Tick:    e.Timestamp,
			Level:   e.Level.String(),
			Message: e.Message(),
		}
		if err := w.Write(rec); err != nil {
			_ = w.Close()
			return written, fmt.Errorf("write record %d: %w", i, err)
		}
		written++
	}

	if err := w.Close(); err != nil {
		return written, fmt.Errorf("close writer: %w", err)
	}
	return written, nil
}

func newWriter(path string, format Format) (Writer, error) {
	switch format {
	case FormatJSONL:
		return newJSONLWriter(path)
	case FormatCSV:
		return newCSVWriter(path)
	case FormatParquet:
		return newParquetWriter(path)
	case FormatSQLite:
		return newSQLiteWriter(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}
