package model

import (
	"strings"
	"testing"
)

func TestNewWorkItem(t *testing.T) {
	source := []byte("pixels")
	item := NewWorkItem("photo.jpg", "image/jpeg", source)

	if item.Status != StatusPending {
		t.Errorf("new items start pending, got %s", item.Status)
	}
	if item.OriginalSize != len(source) {
		t.Errorf("original size: expected %d, got %d", len(source), item.OriginalSize)
	}
	if !strings.HasPrefix(item.ID, "photo.jpg-") {
		t.Errorf("id must embed the filename, got %q", item.ID)
	}
	if item.ErrMessage != "" || item.Output != nil {
		t.Error("new items carry no output or error")
	}
}

func TestNewWorkItem_UniqueIDs(t *testing.T) {
	a := NewWorkItem("same.jpg", "image/jpeg", nil)
	b := NewWorkItem("same.jpg", "image/jpeg", nil)

	if a.ID == b.ID {
		t.Errorf("two items for the same file must not collide: %q", a.ID)
	}
}

func TestDimensionsString(t *testing.T) {
	d := Dimensions{Width: 1920, Height: 1080}
	if got := d.String(); got != "1920x1080" {
		t.Errorf("expected 1920x1080, got %s", got)
	}
}
