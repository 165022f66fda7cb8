package tool

import (
	"context"

	"github.com/disintegration/imaging"

	"github.com/compressyourphoto/phototools/internal/imgproc/heicconv"
	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/model"
)

// CompressOptions configures a compression batch.
type CompressOptions struct {
	// Quality is the user-facing 0-100 lossy quality factor.
	Quality int

	// MaxDimension, when positive, caps the longer image side; larger
	// inputs are downscaled proportionally before re-encoding.
	MaxDimension int

	// OutputFormat overrides the source encoding when set.
	OutputFormat render.Format
}

// CompressPipeline re-encodes each item at the configured quality.
type CompressPipeline struct {
	opts CompressOptions
}

// NewCompress creates a compression pipeline.
func NewCompress(opts CompressOptions) *CompressPipeline {
	if opts.Quality == 0 {
		opts.Quality = 80
	}
	return &CompressPipeline{opts: opts}
}

// Process implements Pipeline.
func (p *CompressPipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	source := item.Source
	filename := item.Filename
	mime := item.MIME

	if heicconv.IsHEIC(mime, filename) {
		jpegData, err := heicconv.ToJPEG(source)
		if err != nil {
			return Result{}, err
		}
		source = jpegData
		filename = heicconv.NormalizeName(filename)
		mime = "image/jpeg"
	}

	img, err := render.Decode(source)
	if err != nil {
		return Result{}, err
	}

	var newDims *model.Dimensions
	if p.opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > p.opts.MaxDimension || b.Dy() > p.opts.MaxDimension {
			img = imaging.Fit(img, p.opts.MaxDimension, p.opts.MaxDimension, imaging.Lanczos)
			fitted := img.Bounds()
			newDims = &model.Dimensions{Width: fitted.Dx(), Height: fitted.Dy()}
		}
	}

	format := p.opts.OutputFormat
	if format == "" {
		format = render.FormatForMIME(mime)
	}

	data, err := render.Encode(img, format, p.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:     data,
		Filename: baseName(filename) + "." + format.Extension(),
		NewDims:  newDims,
	}, nil
}
