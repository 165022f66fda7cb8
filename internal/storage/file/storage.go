// Package file persists finished blobs to the local filesystem. It is
// the non-browser stand-in for the download trigger: outputs are written
// straight to the user's chosen directory instead of going through a
// save dialog.
package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage writes files under a base output directory, grouped by
// optional subdirectories.
type Storage struct {
	baseDir string
}

// NewStorage creates a Storage rooted at baseDir, creating the directory
// if it does not exist yet.
func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Storage{baseDir: baseDir}, nil
}

// Save writes the reader's contents to subdir/filename under the base
// directory and returns the resulting path.
func (s *Storage) Save(subdir, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst := filepath.Join(dir, filename)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return dst, nil
}

// Load opens a previously saved file and returns a reader.
func (s *Storage) Load(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return f, nil
}

// Delete removes the specified file.
func (s *Storage) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
