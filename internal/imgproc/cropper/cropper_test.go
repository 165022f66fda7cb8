package cropper

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/compressyourphoto/phototools/internal/imgproc"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	src := gradientImage(100, 80)

	out, err := Crop(src, Region{X: 10, Y: 20, Width: 30, Height: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := out.Bounds()
	if b.Dx() != 30 || b.Dy() != 25 {
		t.Fatalf("expected 30x25, got %dx%d", b.Dx(), b.Dy())
	}

	// Top-left output pixel maps to source (10, 20).
	if got := out.NRGBAAt(0, 0); got.R != 10 || got.G != 20 {
		t.Errorf("expected pixel from source (10,20), got %v", got)
	}
}

func TestCrop_Invalid(t *testing.T) {
	src := gradientImage(50, 50)

	tests := []struct {
		name   string
		region Region
	}{
		{name: "empty", region: Region{Width: 0, Height: 10}},
		{name: "negative offset", region: Region{X: -1, Y: 0, Width: 10, Height: 10}},
		{name: "exceeds width", region: Region{X: 45, Y: 0, Width: 10, Height: 10}},
		{name: "exceeds height", region: Region{X: 0, Y: 45, Width: 10, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(src, tt.region); !errors.Is(err, imgproc.ErrProcessing) {
				t.Errorf("expected ErrProcessing, got %v", err)
			}
		})
	}
}

func TestCircleCrop(t *testing.T) {
	src := gradientImage(100, 100)

	out, err := CircleCrop(src, Region{X: 10, Y: 10, Width: 40, Height: 999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Output is always square with side equal to the crop diameter,
	// regardless of the requested height.
	b := out.Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("expected 40x40, got %dx%d", b.Dx(), b.Dy())
	}

	// Corners lie outside the inscribed circle and must be transparent.
	_, _, _, a := out.At(0, 0).RGBA()
	if a != 0 {
		t.Errorf("top-left corner should be transparent, alpha=%d", a)
	}
	_, _, _, a = out.At(39, 39).RGBA()
	if a != 0 {
		t.Errorf("bottom-right corner should be transparent, alpha=%d", a)
	}

	// The center is inside the circle and stays opaque.
	_, _, _, a = out.At(20, 20).RGBA()
	if a == 0 {
		t.Error("center pixel should be opaque")
	}
}

func TestCircleCrop_OutOfBounds(t *testing.T) {
	src := gradientImage(30, 30)

	if _, err := CircleCrop(src, Region{X: 0, Y: 0, Width: 40}); !errors.Is(err, imgproc.ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", err)
	}
}
