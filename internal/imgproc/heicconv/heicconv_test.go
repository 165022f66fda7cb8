package heicconv

import (
	"errors"
	"testing"

	"github.com/compressyourphoto/phototools/internal/imgproc"
)

func TestIsHEIC(t *testing.T) {
	tests := []struct {
		mime     string
		filename string
		want     bool
	}{
		{"image/heic", "photo.heic", true},
		{"image/heif", "photo.bin", true},
		{"", "IMG_0001.HEIC", true},
		{"", "IMG_0001.heif", true},
		{"application/octet-stream", "photo.heic", true},
		{"image/jpeg", "photo.jpg", false},
		{"image/png", "photo.png", false},
		{"", "archive.heic.txt", false},
	}

	for _, tt := range tests {
		if got := IsHEIC(tt.mime, tt.filename); got != tt.want {
			t.Errorf("IsHEIC(%q, %q): expected %v, got %v", tt.mime, tt.filename, tt.want, got)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.heic", "photo.jpg"},
		{"photo.HEIC", "photo.jpg"},
		{"vacation.heif", "vacation.jpg"},
		{"photo.jpg", "photo.jpg"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestToJPEG_CorruptContainer(t *testing.T) {
	_, err := ToJPEG([]byte("not a heic container at all"))
	if !errors.Is(err, imgproc.ErrConversion) {
		t.Errorf("expected ErrConversion, got %v", err)
	}
}

func TestToJPEG_Empty(t *testing.T) {
	if _, err := ToJPEG(nil); !errors.Is(err, imgproc.ErrConversion) {
		t.Errorf("expected ErrConversion for empty input, got %v", err)
	}
}
