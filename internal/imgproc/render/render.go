// Package render is the single redraw primitive behind resize, convert
// and enhance: it produces a bitmap of exactly the requested dimensions
// with an optional filter baked in, then serializes it to JPEG, PNG or
// WebP at a 0-100 quality factor.
package render

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"

	"github.com/compressyourphoto/phototools/internal/imgproc"
)

// Format is a target encoding for serialized output.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", s)
	}
}

// Extension returns the filename extension conventionally used for the
// format ("jpg", not "jpeg").
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// MIME returns the media type of the format.
func (f Format) MIME() string {
	return "image/" + string(f)
}

// FormatForMIME maps a source media type onto the format used when the
// output keeps the input encoding. Anything that is not PNG or WebP is
// re-encoded as JPEG.
func FormatForMIME(mime string) Format {
	switch {
	case strings.Contains(mime, "png"):
		return PNG
	case strings.Contains(mime, "webp"):
		return WebP
	default:
		return JPEG
	}
}

// Filter is the enhancement composition applied before the redraw.
// Brightness, contrast and saturation are percentage deltas around zero,
// mirroring the slider ranges of the enhance tool. Grayscale and Sepia
// are mutually exclusive quick filters that replace the adjustments.
type Filter struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Grayscale  bool
	Sepia      bool
}

// IsZero reports whether the filter leaves pixels untouched.
func (f Filter) IsZero() bool {
	return f.Brightness == 0 && f.Contrast == 0 && f.Saturation == 0 &&
		!f.Grayscale && !f.Sepia
}

// Decode reads image bytes into memory, honoring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imgproc.ErrDecode, err)
	}

	return img, nil
}

// Render draws src at exactly width x height with the filter applied.
// A nil filter or zero dimensions-change short-circuits the respective
// step, so the same primitive serves plain format conversion as well.
func Render(src image.Image, width, height int, filter *Filter) *image.NRGBA {
	out := imaging.Clone(src)

	if filter != nil && !filter.IsZero() {
		out = applyFilter(out, *filter)
	}

	b := out.Bounds()
	if width > 0 && height > 0 && (b.Dx() != width || b.Dy() != height) {
		out = imaging.Resize(out, width, height, imaging.Lanczos)
	}

	return out
}

func applyFilter(img *image.NRGBA, f Filter) *image.NRGBA {
	if f.Grayscale {
		return imaging.Grayscale(img)
	}
	if f.Sepia {
		return sepia(img)
	}

	out := img
	if f.Brightness != 0 {
		out = imaging.AdjustBrightness(out, f.Brightness)
	}
	if f.Contrast != 0 {
		out = imaging.AdjustContrast(out, f.Contrast)
	}
	if f.Saturation != 0 {
		out = imaging.AdjustSaturation(out, f.Saturation)
	}

	return out
}

// sepia applies the standard sepia tone matrix per pixel, leaving alpha
// untouched.
func sepia(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	pix := out.Pix

	for i := 0; i+3 < len(pix); i += 4 {
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])

		pix[i] = clamp8(0.393*r + 0.769*g + 0.189*b)
		pix[i+1] = clamp8(0.349*r + 0.686*g + 0.168*b)
		pix[i+2] = clamp8(0.272*r + 0.534*g + 0.131*b)
	}

	return out
}

func clamp8(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// Encode serializes img to the chosen format. Quality is the user-facing
// 0-100 factor; PNG is lossless and ignores it. A serialization failure
// surfaces as ErrEncode.
func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	var buf bytes.Buffer

	switch format {
	case JPEG:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("%w: %v", imgproc.ErrEncode, err)
		}
	case PNG:
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("%w: %v", imgproc.ErrEncode, err)
		}
	case WebP:
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("%w: %v", imgproc.ErrEncode, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", imgproc.ErrEncode, format)
	}

	return buf.Bytes(), nil
}
