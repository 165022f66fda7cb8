package tool

import (
	"context"
	"strings"

	"github.com/compressyourphoto/phototools/internal/imgproc/heicconv"
	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/model"
)

// ConvertOptions configures a format-conversion batch.
type ConvertOptions struct {
	Format  render.Format
	Quality int
}

// ConvertPipeline re-encodes each item into the target format. HEIC
// input passes through the JPEG intermediate first, so the canvas
// redraw only ever sees standard bitmap formats.
type ConvertPipeline struct {
	opts ConvertOptions
}

// NewConvert creates a conversion pipeline.
func NewConvert(opts ConvertOptions) *ConvertPipeline {
	if opts.Quality == 0 {
		opts.Quality = 90
	}
	return &ConvertPipeline{opts: opts}
}

// FormatLabel derives the display label of the source format from the
// declared MIME type, falling back to the filename extension.
func FormatLabel(mime, filename string) string {
	m := strings.ToLower(mime)
	switch {
	case strings.Contains(m, "jpeg"), strings.Contains(m, "jpg"):
		return "JPG"
	case strings.Contains(m, "png"):
		return "PNG"
	case strings.Contains(m, "webp"):
		return "WebP"
	case strings.Contains(m, "heic"), strings.Contains(m, "heif"):
		return "HEIC"
	case strings.Contains(m, "gif"):
		return "GIF"
	case strings.Contains(m, "bmp"):
		return "BMP"
	}

	if i := strings.LastIndexByte(filename, '.'); i >= 0 && i < len(filename)-1 {
		return strings.ToUpper(filename[i+1:])
	}
	return "Unknown"
}

// Process implements Pipeline.
func (p *ConvertPipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	source := item.Source

	if heicconv.IsHEIC(item.MIME, item.Filename) {
		jpegData, err := heicconv.ToJPEG(source)
		if err != nil {
			return Result{}, err
		}
		source = jpegData
	}

	img, err := render.Decode(source)
	if err != nil {
		return Result{}, err
	}

	data, err := render.Encode(img, p.opts.Format, p.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:     data,
		Filename: baseName(item.Filename) + "." + p.opts.Format.Extension(),
	}, nil
}
