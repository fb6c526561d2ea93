package rawdump

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Metadata records the provenance of a saved image in a JSON sidecar
// next to the image file.
type Metadata struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ByteOrder  string    `json:"byte_order"`
	CapturedAt time.Time `json:"captured_at"`
}

// NewMetadata creates metadata with a fresh capture ID.
func NewMetadata(source, byteOrder string) Metadata {
	return Metadata{
		ID:         uuid.NewString(),
		Source:     source,
		ByteOrder:  byteOrder,
		CapturedAt: time.Now().UTC(),
	}
}

// MetaPath returns the sidecar path for an image path.
func MetaPath(imagePath string) string {
	return imagePath + ".meta.json"
}

// WriteMetadata stores the sidecar for the image at imagePath.
func WriteMetadata(imagePath string, m Metadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(MetaPath(imagePath), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads the sidecar for the image at imagePath.
func ReadMetadata(imagePath string) (Metadata, error) {
	data, err := os.ReadFile(MetaPath(imagePath))
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return m, nil
}
