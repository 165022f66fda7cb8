// Package heicconv converts HEIC/HEIF input to a JPEG intermediate so
// that downstream components only ever see standard bitmap formats.
package heicconv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/heic"

	"github.com/compressyourphoto/phototools/internal/imgproc"
)

// intermediateQuality is the JPEG quality used for the intermediate.
const intermediateQuality = 92

// IsHEIC detects HEIC/HEIF input by declared MIME type or filename
// extension.
func IsHEIC(mime, filename string) bool {
	m := strings.ToLower(mime)
	if strings.Contains(m, "heic") || strings.Contains(m, "heif") {
		return true
	}

	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".heic") || strings.HasSuffix(name, ".heif")
}

// ToJPEG decodes a HEIC container and re-encodes it as JPEG. Unsupported
// variants and corrupt containers surface as ErrConversion.
func ToJPEG(data []byte) ([]byte, error) {
	img, err := heic.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imgproc.ErrConversion, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(intermediateQuality)); err != nil {
		return nil, fmt.Errorf("%w: %v", imgproc.ErrConversion, err)
	}

	return buf.Bytes(), nil
}

// NormalizeName rewrites a .heic/.heif filename to the .jpg intermediate
// name.
func NormalizeName(filename string) string {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".heic", ".heif"} {
		if strings.HasSuffix(lower, ext) {
			return filename[:len(filename)-len(ext)] + ".jpg"
		}
	}
	return filename
}
