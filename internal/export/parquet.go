package export

import (
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// parquetRecord is the Parquet schema struct.
type parquetRecord struct {
	Seq   int32  `parquet:"seq"`
	Tick  int64  `parquet:"tick"`
	Level string `parquet:"level"`
	Msg   string `parquet:"msg"`
}

type parquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[parquetRecord]
	batch  []parquetRecord
}

func newParquetWriter(path string) (*parquetWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := parquet.NewGenericWriter[parquetRecord](f,
		parquet.Compression(&zstd.Codec{}),
	)

	return &parquetWriter{file: f, writer: w}, nil
}

func (w *parquetWriter) Write(r Record) error {
	// An image holds at most one buffer's worth of entries, so a single
	// batch flushed at close is fine.
	w.batch = append(w.batch, parquetRecord{
		Seq:   int32(r.Seq),
		Tick:  int64(r.Tick),
		Level: r.Level,
		Msg:   r.Message,
	})
	return nil
}

func (w *parquetWriter) Close() error {
	if len(w.batch) > 0 {
		if _, err := w.writer.Write(w.batch); err != nil {
			_ = w.writer.Close()
			_ = w.file.Close()
			return err
		}
	}
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
