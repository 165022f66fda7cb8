// Package archive bundles completed outputs into a single zip blob for
// bulk download.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/compressyourphoto/phototools/internal/model"
)

// Pack builds a zip archive containing every done item's output under
// its output filename. It returns nil bytes when no item is done, which
// callers treat as a no-op.
func Pack(items []model.WorkItem) ([]byte, error) {
	var done []model.WorkItem
	for _, it := range items {
		if it.Status == model.StatusDone && len(it.Output) > 0 {
			done = append(done, it)
		}
	}
	if len(done) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, it := range done {
		w, err := zw.Create(it.OutputName)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", it.OutputName, err)
		}
		if _, err := w.Write(it.Output); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", it.OutputName, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
