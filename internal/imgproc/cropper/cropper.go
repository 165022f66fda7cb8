// Package cropper extracts a pixel region from an image, optionally
// clipped to the inscribed circle for avatar-style crops.
package cropper

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/compressyourphoto/phototools/internal/imgproc"
)

// Region is a crop rectangle in source pixel coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Region) validate(src image.Image) error {
	b := src.Bounds()
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: crop region %dx%d is empty", imgproc.ErrProcessing, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 || r.X+r.Width > b.Dx() || r.Y+r.Height > b.Dy() {
		return fmt.Errorf("%w: crop region exceeds image bounds %dx%d", imgproc.ErrProcessing, b.Dx(), b.Dy())
	}
	return nil
}

// Crop extracts the region as a new bitmap.
func Crop(src image.Image, r Region) (*image.NRGBA, error) {
	if err := r.validate(src); err != nil {
		return nil, err
	}

	rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	return imaging.Crop(src, rect), nil
}

// CircleCrop extracts a square region of side r.Width and masks it to
// the inscribed circle, leaving the corners fully transparent. The
// output bounding box always equals the crop diameter, so callers must
// encode it as PNG to preserve the transparency.
func CircleCrop(src image.Image, r Region) (image.Image, error) {
	// Circular crops are square by construction.
	r.Height = r.Width

	cropped, err := Crop(src, r)
	if err != nil {
		return nil, err
	}

	d := r.Width
	radius := float64(d) / 2

	dc := gg.NewContext(d, d)
	dc.DrawCircle(radius, radius, radius)
	dc.Clip()
	dc.DrawImage(cropped, 0, 0)

	return dc.Image(), nil
}
