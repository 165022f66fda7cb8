// Package imgproc defines the error taxonomy shared by the image
// processing primitives. Every error is per-item and non-fatal to a
// batch: the orchestrator records it on the failing item and moves on.
package imgproc

import "errors"

var (
	// ErrDecode means the input bytes could not be read as an image.
	ErrDecode = errors.New("failed to decode image")

	// ErrConversion means a HEIC/HEIF container could not be converted
	// to a standard bitmap format.
	ErrConversion = errors.New("failed to convert image")

	// ErrEncode means the result could not be serialized to the target
	// encoding.
	ErrEncode = errors.New("failed to encode image")

	// ErrProcessing is the catch-all for transform failures.
	ErrProcessing = errors.New("failed to process image")
)
