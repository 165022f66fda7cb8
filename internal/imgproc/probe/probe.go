// Package probe reports the native pixel dimensions of an image without
// fully decoding it.
package probe

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/gen2brain/heic"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/compressyourphoto/phototools/internal/imgproc"
	"github.com/compressyourphoto/phototools/internal/model"
)

// Dimensions decodes only the image header and returns the intrinsic
// width and height. Corrupt or unsupported input yields ErrDecode.
func Dimensions(data []byte) (model.Dimensions, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Dimensions{}, fmt.Errorf("%w: %v", imgproc.ErrDecode, err)
	}

	return model.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
