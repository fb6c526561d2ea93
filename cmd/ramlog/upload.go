package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/cloud"
	"github.com/ACIDBURN2501/embedded-log/internal/config"
	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
)

func newUploadCmd(cfg *config.Config) *cobra.Command {
	var (
		to   string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image or export artifact to cloud storage",
		Long:  "Upload a dump image (with its .meta.json sidecar, when present) or an exported file to S3 or GCS. With --list, show the objects already stored under the destination prefix instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = cfg.Upload.To
			}
			if to == "" {
				return cli.NewUsageError("--to is required (or set upload.to in config)")
			}
			if list {
				return runUploadList(cmd.Context(), to)
			}
			if len(args) != 1 {
				return cli.NewUsageError("expected a file to upload")
			}
			return runUpload(cmd.Context(), args[0], to)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination URL (s3://bucket/prefix or gs://bucket/prefix)")
	cmd.Flags().BoolVar(&list, "list", false, "list objects under the destination prefix")

	return cmd
}

func connect(ctx context.Context, toURL string) (cloud.Backend, string, error) {
	scheme, bucket, prefix, err := cloud.ParseURL(toURL)
	if err != nil {
		return nil, "", cli.NewUsageError(fmt.Sprintf("invalid --to: %v", err))
	}
	backend, err := cloud.NewBackend(ctx, scheme, bucket)
	if err != nil {
		return nil, "", cli.NewNetworkError(fmt.Sprintf("connect to %s: %v", scheme, err))
	}
	return backend, prefix, nil
}

func runUpload(ctx context.Context, path, toURL string) error {
	backend, prefix, err := connect(ctx, toURL)
	if err != nil {
		return err
	}

	files := []string{path}
	if _, err := os.Stat(rawdump.MetaPath(path)); err == nil {
		files = append(files, rawdump.MetaPath(path))
	}

	var total int64
	for _, p := range files {
		size, err := uploadOne(ctx, backend, prefix, p)
		if err != nil {
			return err
		}
		total += size
	}

	_, _ = fmt.Fprintf(os.Stderr, "Uploaded %d file(s) (%d bytes) to %s\n", len(files), total, toURL)
	return nil
}

func uploadOne(ctx context.Context, backend cloud.Backend, prefix, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, cli.NewNotFoundError(fmt.Sprintf("%s does not exist", path))
		}
		return 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	key := filepath.Base(path)
	if prefix != "" {
		key = prefix + "/" + key
	}

	logger.Debug("uploading", zap.String("key", key), zap.Int64("bytes", info.Size()))
	if err := backend.Upload(ctx, key, f, info.Size()); err != nil {
		return 0, cli.NewNetworkError(fmt.Sprintf("upload %s: %v", key, err))
	}
	return info.Size(), nil
}

func runUploadList(ctx context.Context, toURL string) error {
	backend, prefix, err := connect(ctx, toURL)
	if err != nil {
		return err
	}

	objects, err := backend.List(ctx, prefix)
	if err != nil {
		return cli.NewNetworkError(err.Error())
	}
	for _, obj := range objects {
		fmt.Printf("%10d  %s\n", obj.Size, obj.Key)
	}
	return nil
}
