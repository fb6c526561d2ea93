package export

import (
	"encoding/csv"
	"os"
	"strconv"
)

type csvWriter struct {
	file *os.File
	w    *csv.Writer
}

func newCSVWriter(path string) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"seq", "tick", "level", "msg"}); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &csvWriter{file: f, w: w}, nil
}

func (w *csvWriter) Write(r Record) error {
	return w.w.Write([]string{
		strconv.Itoa(r.Seq),
		strconv.FormatUint(uint64(r.Tick), 10),
		r.Level,
		r.Message,
	})
}

func (w *csvWriter) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
