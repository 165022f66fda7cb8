// Package main provides the phototools CLI: batch image compression,
// resizing, format conversion, cropping and enhancement, processed
// entirely on the local machine.
package main

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/compressyourphoto/phototools/internal/archive"
	"github.com/compressyourphoto/phototools/internal/imgproc/cropper"
	"github.com/compressyourphoto/phototools/internal/imgproc/probe"
	"github.com/compressyourphoto/phototools/internal/imgproc/render"
	"github.com/compressyourphoto/phototools/internal/model"
	"github.com/compressyourphoto/phototools/internal/storage/file"
	"github.com/compressyourphoto/phototools/internal/tool"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "phototools",
		Usage:   l10n.T("Compress, resize, convert, crop and enhance images locally"),
		Version: version,
		Commands: []*cli.Command{
			compressCommand(),
			resizeCommand(),
			convertCommand(),
			cropCommand(),
			enhanceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

// outputFlags are shared by every tool command.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   l10n.T("Output directory for processed images"),
		},
		&cli.BoolFlag{
			Name:  "zip",
			Usage: l10n.T("Bundle all outputs into a single zip archive"),
		},
	}
}

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     l10n.T("Reduce image file size"),
		ArgsUsage: "FILE...",
		Flags: append(outputFlags(),
			&cli.IntFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Value:   80,
				Usage:   l10n.T("Quality factor (0-100)"),
			},
			&cli.IntFlag{
				Name:  "max-dimension",
				Usage: l10n.T("Cap the longer side in pixels (0 = keep size)"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   l10n.T("Override output format (jpeg, png, webp)"),
			},
		),
		Action: func(c *cli.Context) error {
			opts := tool.CompressOptions{
				Quality:      c.Int("quality"),
				MaxDimension: c.Int("max-dimension"),
			}
			if f := c.String("format"); f != "" {
				format, err := render.ParseFormat(f)
				if err != nil {
					return err
				}
				opts.OutputFormat = format
			}
			return runBatch(c, tool.NewCompress(opts), "compressed-photos.zip")
		},
	}
}

func resizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "resize",
		Usage:     l10n.T("Resize images by pixels, percentage or preset"),
		ArgsUsage: "FILE...",
		Flags: append(outputFlags(),
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Target width in pixels")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Target height in pixels")},
			&cli.BoolFlag{
				Name:  "keep-aspect",
				Value: true,
				Usage: l10n.T("Compute the missing dimension from the original aspect ratio"),
			},
			&cli.IntFlag{Name: "percent", Aliases: []string{"p"}, Usage: l10n.T("Scale both dimensions by percentage")},
			&cli.StringFlag{Name: "preset", Usage: l10n.T("Social media preset, e.g. \"Instagram Post\"")},
		),
		Action: func(c *cli.Context) error {
			opts := tool.ResizeOptions{
				Width:      c.Int("width"),
				Height:     c.Int("height"),
				KeepAspect: c.Bool("keep-aspect"),
				Percent:    c.Int("percent"),
				Preset:     c.String("preset"),
			}
			switch {
			case opts.Preset != "":
				opts.Mode = tool.ResizeByPreset
			case opts.Percent > 0:
				opts.Mode = tool.ResizeByPercentage
			default:
				opts.Mode = tool.ResizeByDimensions
			}
			return runBatch(c, tool.NewResize(opts), "resized-photos.zip")
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert images to JPG, PNG or WebP"),
		ArgsUsage: "FILE...",
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    l10n.T("Target format (jpeg, png, webp)"),
			},
			&cli.IntFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Value:   90,
				Usage:   l10n.T("Quality factor (0-100, ignored for png)"),
			},
		),
		Action: func(c *cli.Context) error {
			format, err := render.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}
			opts := tool.ConvertOptions{Format: format, Quality: c.Int("quality")}
			return runBatch(c, tool.NewConvert(opts), "converted-photos.zip")
		},
	}
}

func cropCommand() *cli.Command {
	return &cli.Command{
		Name:      "crop",
		Usage:     l10n.T("Crop a pixel region, optionally as a circular avatar"),
		ArgsUsage: "FILE...",
		Flags: append(outputFlags(),
			&cli.IntFlag{Name: "x", Usage: l10n.T("Region left offset in pixels")},
			&cli.IntFlag{Name: "y", Usage: l10n.T("Region top offset in pixels")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Required: true, Usage: l10n.T("Region width in pixels")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Region height in pixels (defaults to width)")},
			&cli.StringFlag{Name: "aspect", Value: "free", Usage: l10n.T("Aspect ratio preset (free, 1:1, 16:9, 9:16, 4:3, 3:4)")},
			&cli.BoolFlag{Name: "circle", Usage: l10n.T("Clip to the inscribed circle (always saves PNG)")},
		),
		Action: func(c *cli.Context) error {
			region := cropper.Region{
				X:      c.Int("x"),
				Y:      c.Int("y"),
				Width:  c.Int("width"),
				Height: c.Int("height"),
			}
			if region.Height == 0 {
				h, err := tool.HeightForAspect(c.String("aspect"), region.Width)
				if err != nil {
					return err
				}
				region.Height = h
			}
			if region.Height == 0 {
				region.Height = region.Width
			}
			opts := tool.CropOptions{Region: region, Circle: c.Bool("circle")}
			return runBatch(c, tool.NewCrop(opts), "cropped-photos.zip")
		},
	}
}

func enhanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "enhance",
		Usage:     l10n.T("Adjust brightness, contrast, saturation and sharpness"),
		ArgsUsage: "FILE...",
		Flags: append(outputFlags(),
			&cli.Float64Flag{Name: "brightness", Usage: l10n.T("Brightness adjustment (-100 to 100)")},
			&cli.Float64Flag{Name: "contrast", Usage: l10n.T("Contrast adjustment (-100 to 100)")},
			&cli.Float64Flag{Name: "saturation", Usage: l10n.T("Saturation adjustment (-100 to 100)")},
			&cli.Float64Flag{Name: "sharpness", Usage: l10n.T("Sharpen amount (0-100)")},
			&cli.StringFlag{Name: "filter", Value: "none", Usage: l10n.T("Quick filter (none, bw, sepia, vivid)")},
			&cli.BoolFlag{Name: "auto", Usage: l10n.T("Apply the one-click auto enhancement")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "jpeg", Usage: l10n.T("Output format (jpeg or png)")},
		),
		Action: func(c *cli.Context) error {
			var opts tool.EnhanceOptions
			if c.Bool("auto") {
				opts = tool.AutoEnhance()
			} else {
				filter, err := tool.ParseQuickFilter(c.String("filter"))
				if err != nil {
					return err
				}
				opts = tool.EnhanceOptions{
					Brightness: c.Float64("brightness"),
					Contrast:   c.Float64("contrast"),
					Saturation: c.Float64("saturation"),
					Sharpness:  c.Float64("sharpness"),
					Filter:     filter,
				}
			}

			format, err := render.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}
			if format == render.WebP {
				return fmt.Errorf("enhance outputs jpeg or png only")
			}
			opts.Format = format

			return runBatch(c, tool.NewEnhance(opts), "enhanced-photos.zip")
		},
	}
}

// runBatch loads the input files, sweeps them through the pipeline
// sequentially, and writes the outputs to the chosen directory.
func runBatch(c *cli.Context, p tool.Pipeline, zipName string) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no input files given")
	}

	o := tool.New()
	for _, path := range paths {
		item, err := loadItem(path)
		if err != nil {
			return err
		}
		o.Add(item)
	}

	err := o.Run(c.Context, p, func(current, total int) {
		fmt.Println(l10n.F("Processing %d/%d...", current, total))
	})
	if err != nil {
		return err
	}

	store, err := file.NewStorage(c.String("out"))
	if err != nil {
		return err
	}

	items := o.Items()

	if c.Bool("zip") {
		data, err := archive.Pack(items)
		if err != nil {
			return err
		}
		if data != nil {
			path, err := store.Save("", zipName, bytes.NewReader(data))
			if err != nil {
				return err
			}
			fmt.Println(l10n.F("Archive saved to %s", path))
		}
	} else {
		for _, it := range items {
			if it.Status != model.StatusDone {
				continue
			}
			path, err := store.Save("", it.OutputName, bytes.NewReader(it.Output))
			if err != nil {
				return err
			}
			fmt.Println(l10n.F("Saved %s (%d -> %d bytes)", path, it.OriginalSize, it.OutputSize))
		}
	}

	failed := 0
	for _, it := range items {
		if it.Status == model.StatusError {
			failed++
			fmt.Fprintln(os.Stderr, l10n.F("Failed %s: %s", it.Filename, it.ErrMessage))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(items))
	}

	return nil
}

// loadItem reads one input file into a pending work item, recording its
// declared media type, detected format label and, when the header is
// readable, its native dimensions.
func loadItem(path string) (model.WorkItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WorkItem{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	item := model.NewWorkItem(name, mimeForFile(name), data)
	item.SourceFormat = tool.FormatLabel(item.MIME, name)

	if dims, err := probe.Dimensions(data); err == nil {
		item.OriginalDims = &dims
	}

	return item, nil
}

func mimeForFile(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
