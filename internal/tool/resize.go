package tool

import (
	"context"
	"fmt"
	"math"

	"github.com/compressyourphoto/phototools/internal/imgproc/probe"
	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/model"
)

// ResizeMode selects how target dimensions are derived. The three modes
// are mutually exclusive.
type ResizeMode string

const (
	ResizeByDimensions ResizeMode = "dimensions"
	ResizeByPercentage ResizeMode = "percentage"
	ResizeByPreset     ResizeMode = "preset"
)

// Preset is a named fixed width x height pair for common social targets.
// Presets force exact dimensions regardless of the source aspect ratio.
type Preset struct {
	Name   string
	Width  int
	Height int
}

// Presets lists the supported social-media targets.
var Presets = []Preset{
	{Name: "Instagram Post", Width: 1080, Height: 1080},
	{Name: "Instagram Story", Width: 1080, Height: 1920},
	{Name: "YouTube Thumbnail", Width: 1280, Height: 720},
	{Name: "LinkedIn", Width: 1200, Height: 627},
	{Name: "WhatsApp DP", Width: 500, Height: 500},
	{Name: "Passport Photo", Width: 600, Height: 600},
}

// FindPreset looks up a preset by name.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ResizeOptions configures a resize batch.
type ResizeOptions struct {
	Mode ResizeMode

	// ResizeByDimensions: zero means "not supplied".
	Width      int
	Height     int
	KeepAspect bool

	// ResizeByPercentage.
	Percent int

	// ResizeByPreset.
	Preset string

	// Quality of the re-encoded output; the default matches the
	// original tool's fixed encoder quality.
	Quality int
}

// DefaultResizeQuality matches the encoder quality the resize tool has
// always used.
const DefaultResizeQuality = 92

// TargetDimensions resolves the options against an item's original
// dimensions. With aspect lock enabled and exactly one of width/height
// supplied, the missing side is computed from the original aspect
// ratio; when both are supplied, both explicit values win and the lock
// is ignored.
func (o ResizeOptions) TargetDimensions(orig model.Dimensions) (model.Dimensions, error) {
	switch o.Mode {
	case ResizeByPreset:
		p, ok := FindPreset(o.Preset)
		if !ok {
			return model.Dimensions{}, fmt.Errorf("unknown preset: %q", o.Preset)
		}
		return model.Dimensions{Width: p.Width, Height: p.Height}, nil

	case ResizeByPercentage:
		if o.Percent <= 0 {
			return model.Dimensions{}, fmt.Errorf("percentage must be positive, got %d", o.Percent)
		}
		pct := float64(o.Percent) / 100
		return model.Dimensions{
			Width:  int(math.Round(float64(orig.Width) * pct)),
			Height: int(math.Round(float64(orig.Height) * pct)),
		}, nil

	case ResizeByDimensions:
		w, h := o.Width, o.Height
		if w == 0 {
			w = orig.Width
		}
		if h == 0 {
			h = orig.Height
		}
		if o.KeepAspect && o.Width > 0 && o.Height == 0 {
			h = int(math.Round(float64(o.Width) / float64(orig.Width) * float64(orig.Height)))
		}
		if o.KeepAspect && o.Height > 0 && o.Width == 0 {
			w = int(math.Round(float64(o.Height) / float64(orig.Height) * float64(orig.Width)))
		}
		if w <= 0 || h <= 0 {
			return model.Dimensions{}, fmt.Errorf("invalid target dimensions %dx%d", w, h)
		}
		return model.Dimensions{Width: w, Height: h}, nil

	default:
		return model.Dimensions{}, fmt.Errorf("unknown resize mode: %q", o.Mode)
	}
}

// ResizePipeline redraws each item at its resolved target dimensions,
// keeping the source encoding.
type ResizePipeline struct {
	opts ResizeOptions
}

// NewResize creates a resize pipeline. A zero quality falls back to the
// tool default.
func NewResize(opts ResizeOptions) *ResizePipeline {
	if opts.Quality == 0 {
		opts.Quality = DefaultResizeQuality
	}
	return &ResizePipeline{opts: opts}
}

// Process implements Pipeline.
func (p *ResizePipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	orig := item.OriginalDims
	if orig == nil {
		d, err := probe.Dimensions(item.Source)
		if err != nil {
			return Result{}, err
		}
		orig = &d
	}

	target, err := p.opts.TargetDimensions(*orig)
	if err != nil {
		return Result{}, err
	}

	img, err := render.Decode(item.Source)
	if err != nil {
		return Result{}, err
	}

	format := render.FormatForMIME(item.MIME)
	data, err := render.Encode(render.Render(img, target.Width, target.Height, nil), format, p.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	name := fmt.Sprintf("%s_%dx%d.%s", baseName(item.Filename), target.Width, target.Height, format.Extension())

	return Result{Data: data, Filename: name, NewDims: &target}, nil
}
