package tool

import (
	"context"
	"fmt"
	"math"

	"github.com/compressyourphoto/phototools/internal/imgproc/cropper"
	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/model"
)

// cropAspects are the named width:height ratios the crop tool offers
// besides free-form and circle.
var cropAspects = map[string][2]int{
	"1:1":  {1, 1},
	"16:9": {16, 9},
	"9:16": {9, 16},
	"4:3":  {4, 3},
	"3:4":  {3, 4},
}

// HeightForAspect derives a region height from its width for a named
// aspect ratio. "free" and the empty string return 0, leaving the height
// to the caller.
func HeightForAspect(aspect string, width int) (int, error) {
	if aspect == "" || aspect == "free" {
		return 0, nil
	}

	r, ok := cropAspects[aspect]
	if !ok {
		return 0, fmt.Errorf("unknown aspect ratio: %q", aspect)
	}

	return int(math.Round(float64(width) * float64(r[1]) / float64(r[0]))), nil
}

// CropOptions configures a crop batch.
type CropOptions struct {
	Region cropper.Region

	// Circle clips the region to the inscribed circle. Circular output
	// is always PNG so the transparent corners survive encoding.
	Circle bool

	Quality int
}

// CropPipeline extracts a pixel region from each item.
type CropPipeline struct {
	opts CropOptions
}

// NewCrop creates a crop pipeline.
func NewCrop(opts CropOptions) *CropPipeline {
	if opts.Quality == 0 {
		opts.Quality = 92
	}
	return &CropPipeline{opts: opts}
}

// Process implements Pipeline.
func (p *CropPipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	img, err := render.Decode(item.Source)
	if err != nil {
		return Result{}, err
	}

	if p.opts.Circle {
		out, err := cropper.CircleCrop(img, p.opts.Region)
		if err != nil {
			return Result{}, err
		}

		data, err := render.Encode(out, render.PNG, p.opts.Quality)
		if err != nil {
			return Result{}, err
		}

		d := p.opts.Region.Width
		return Result{
			Data:     data,
			Filename: baseName(item.Filename) + "_cropped.png",
			NewDims:  &model.Dimensions{Width: d, Height: d},
		}, nil
	}

	out, err := cropper.Crop(img, p.opts.Region)
	if err != nil {
		return Result{}, err
	}

	data, err := render.Encode(out, render.JPEG, p.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:     data,
		Filename: baseName(item.Filename) + "_cropped.jpg",
		NewDims:  &model.Dimensions{Width: p.opts.Region.Width, Height: p.opts.Region.Height},
	}, nil
}
