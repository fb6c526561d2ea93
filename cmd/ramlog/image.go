package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
)

// loadImage decodes an image file, mapping failures to categorized CLI
// errors. orderFlag beats cfgOrder when non-empty.
func loadImage(path, orderFlag, cfgOrder string) (*rawdump.Image, error) {
	orderStr := orderFlag
	if orderStr == "" {
		orderStr = cfgOrder
	}
	order, err := rawdump.ParseByteOrder(orderStr)
	if err != nil {
		return nil, cli.NewUsageError(err.Error())
	}

	logger.Debug("decoding image", zap.String("path", path), zap.String("order", orderStr))

	img, err := rawdump.Decode(path, order)
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, cli.NewNotFoundError(fmt.Sprintf("image %s does not exist", path))
	case errors.Is(err, rawdump.ErrCorrupt):
		return nil, cli.NewCorruptError(err.Error())
	default:
		return nil, err
	}
}
