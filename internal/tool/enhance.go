package tool

import (
	"context"
	"fmt"

	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/imgproc/sharpen"
	"github.com/compressyourphoto/phototools/internal/model"
)

// QuickFilter is one of the enhance tool's one-click looks. A quick
// filter other than none replaces the manual adjustments.
type QuickFilter string

const (
	FilterNone  QuickFilter = "none"
	FilterBW    QuickFilter = "bw"
	FilterSepia QuickFilter = "sepia"
	FilterVivid QuickFilter = "vivid"
)

// ParseQuickFilter normalizes a user-supplied filter name.
func ParseQuickFilter(s string) (QuickFilter, error) {
	switch QuickFilter(s) {
	case "", FilterNone:
		return FilterNone, nil
	case FilterBW, FilterSepia, FilterVivid:
		return QuickFilter(s), nil
	default:
		return "", fmt.Errorf("unknown quick filter: %q", s)
	}
}

// EnhanceOptions configures an enhancement batch. Brightness, contrast
// and saturation are percentage deltas around zero; sharpness is the
// 0-100 unsharp amount.
type EnhanceOptions struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Sharpness  float64

	Filter QuickFilter

	// Format is jpeg or png; enhance never emits webp.
	Format  render.Format
	Quality int
}

// AutoEnhance returns the one-click enhancement preset.
func AutoEnhance() EnhanceOptions {
	return EnhanceOptions{
		Brightness: 10,
		Contrast:   15,
		Saturation: 10,
		Sharpness:  20,
		Filter:     FilterNone,
	}
}

// EnhancePipeline bakes the filter composition and sharpening into each
// item.
type EnhancePipeline struct {
	opts EnhanceOptions
}

// NewEnhance creates an enhancement pipeline.
func NewEnhance(opts EnhanceOptions) *EnhancePipeline {
	if opts.Filter == "" {
		opts.Filter = FilterNone
	}
	if opts.Format == "" {
		opts.Format = render.JPEG
	}
	if opts.Quality == 0 {
		opts.Quality = 92
	}
	return &EnhancePipeline{opts: opts}
}

// filterSpec translates the options into the render filter, mirroring
// the tool's filter composition: the vivid look is a saturation boost
// of 50 plus a contrast boost of 10 on top of the manual values.
func (o EnhanceOptions) filterSpec() render.Filter {
	switch o.Filter {
	case FilterBW:
		return render.Filter{Grayscale: true}
	case FilterSepia:
		return render.Filter{Sepia: true}
	case FilterVivid:
		return render.Filter{
			Saturation: 50 + o.Saturation,
			Contrast:   10 + o.Contrast,
		}
	default:
		return render.Filter{
			Brightness: o.Brightness,
			Contrast:   o.Contrast,
			Saturation: o.Saturation,
		}
	}
}

// Process implements Pipeline.
func (p *EnhancePipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	img, err := render.Decode(item.Source)
	if err != nil {
		return Result{}, err
	}

	filter := p.opts.filterSpec()
	out := render.Render(img, 0, 0, &filter)

	// Sharpening only applies to the manual adjustment path.
	if p.opts.Sharpness > 0 && p.opts.Filter == FilterNone {
		sharpen.Apply(out, p.opts.Sharpness)
	}

	data, err := render.Encode(out, p.opts.Format, p.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:     data,
		Filename: fmt.Sprintf("%s_enhanced.%s", baseName(item.Filename), p.opts.Format.Extension()),
	}, nil
}
