// Package rawdump decodes raw memory images of a ramlog store captured
// from a target, e.g. via a debugger's dump-memory command, and turns
// them back into ordered entries on the host.
package rawdump

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

// ErrCorrupt marks images whose cursors fail validation.
var ErrCorrupt = errors.New("corrupt image")

// ImageSize is the size in bytes of a raw image: the head and count
// cursors followed by the packed entry array.
const ImageSize = 4 + ramlog.Entries*(4+2+ramlog.MsgLen)

// Image is a decoded store image. Field order matches the on-target
// layout: u16 head, u16 count, then the entry array in physical slot
// order.
type Image struct {
	Head    uint16
	Count   uint16
	Entries [ramlog.Entries]ramlog.Entry
}

// ParseByteOrder maps a config/flag value to a byte order. The empty
// string means little-endian, the common case for Cortex-M targets.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch s {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q: expected little or big", s)
	}
}

// Decode reads a raw image file. Files ending in .zst are transparently
// zstd-decompressed first.
func Decode(path string, order binary.ByteOrder) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return DecodeReader(r, order)
}

// DecodeReader reads and validates one raw image from r.
func DecodeReader(r io.Reader, order binary.ByteOrder) (*Image, error) {
	var img Image
	if err := binary.Read(r, order, &img); err != nil {
		return nil, fmt.Errorf("read image (want %d bytes): %w", ImageSize, err)
	}
	if img.Head >= ramlog.Entries {
		return nil, fmt.Errorf("%w: head %d out of range [0,%d)", ErrCorrupt, img.Head, ramlog.Entries)
	}
	if img.Count > ramlog.Entries {
		return nil, fmt.Errorf("%w: count %d exceeds capacity %d", ErrCorrupt, img.Count, ramlog.Entries)
	}
	return &img, nil
}

// WriteFile encodes img to path, zstd-compressing when the path ends in
// .zst.
func WriteFile(path string, img *Image, order binary.ByteOrder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	var w io.Writer = f
	var zw *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("create zstd writer: %w", err)
		}
		w = zw
	}

	err = binary.Write(w, order, img)
	if zw != nil {
		if zerr := zw.Close(); zerr != nil && err == nil {
			err = zerr
		}
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// Capture snapshots a live in-process store. Returns nil for a nil
// store.
func Capture(s *ramlog.Store) *Image {
	if s == nil {
		return nil
	}
	img := &Image{Head: s.Head()}
	buf, count := s.Buffer()
	img.Count = count
	copy(img.Entries[:], buf)
	return img
}

// Chronological returns the surviving entries oldest-first, applying
// the store's index translation to the physical array.
func (img *Image) Chronological() []ramlog.Entry {
	if img == nil || img.Count == 0 {
		return nil
	}
	out := make([]ramlog.Entry, 0, img.Count)
	start := (int(img.Head) + ramlog.Entries - int(img.Count)) % ramlog.Entries
	for i := 0; i < int(img.Count); i++ {
		out = append(out, img.Entries[(start+i)%ramlog.Entries])
	}
	return out
}
