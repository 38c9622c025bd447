// SPDX-License-Identifier: MIT

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	xlog "github.com/geodatabr/geodatabr/internal/log"
)

// WriteFiles writes the produced artifacts into dir with atomic, durable
// writes: each file is staged, fsynced and renamed into place, so readers
// never observe a partial export.
func WriteFiles(ctx context.Context, dir string, files []File) error {
	logger := xlog.WithComponentFromContext(ctx, "export")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	for _, file := range files {
		path := filepath.Join(dir, file.Name)
		pending, err := renameio.NewPendingFile(path)
		if err != nil {
			return fmt.Errorf("create pending file %s: %w", file.Name, err)
		}
		if _, err := pending.Write(file.Data); err != nil {
			_ = pending.Cleanup()
			return fmt.Errorf("write %s: %w", file.Name, err)
		}
		if err := pending.CloseAtomicallyReplace(); err != nil {
			_ = pending.Cleanup()
			return fmt.Errorf("atomically replace %s: %w", file.Name, err)
		}
		logger.Debug().
			Str("event", "export.write").
			Str("path", path).
			Int("bytes", len(file.Data)).
			Msg("artifact written")
	}
	return nil
}

// ZipBundle packs multiple artifacts into a single zip archive, used when a
// multi-file format has to be delivered over a single response.
func ZipBundle(name string, files []File) (File, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			return File{}, fmt.Errorf("add %s to bundle: %w", file.Name, err)
		}
		if _, err := w.Write(file.Data); err != nil {
			return File{}, fmt.Errorf("write %s to bundle: %w", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return File{}, fmt.Errorf("close bundle: %w", err)
	}
	return File{Name: name + ".zip", Data: buf.Bytes()}, nil
}
