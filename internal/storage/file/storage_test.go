package file

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestStorage_SaveLoadDelete(t *testing.T) {
	base := t.TempDir()

	s, err := NewStorage(filepath.Join(base, "out"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	path, err := s.Save("batch", "photo.jpg", bytes.NewReader([]byte("payload")))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if want := filepath.Join(base, "out", "batch", "photo.jpg"); path != want {
		t.Errorf("expected path %s, got %s", want, path)
	}

	rc, err := s.Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("expected payload, got %q", got)
	}

	if err := s.Delete(path); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat returned %v", err)
	}
}

func TestStorage_SaveWithoutSubdir(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	path, err := s.Save("", "archive.zip", bytes.NewReader([]byte("zip")))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if filepath.Base(path) != "archive.zip" {
		t.Errorf("unexpected path %s", path)
	}
}

func TestStorage_LoadMissing(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	if _, err := s.Load(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
