// Package sharpen applies an unsharp-style 3x3 convolution to a pixel
// buffer. The kernel weights the center at 1+4f and the four orthogonal
// neighbors at -f (corners zero), with f = amount/100. The weights sum
// to 1 for any f, so average brightness is invariant under sharpening.
package sharpen

import "image"

// Apply sharpens img in place. Amount is in [0,100]; zero is the
// identity. Only the RGB channels are touched, alpha passes through,
// and the outermost 1px ring keeps its original values because the
// kernel needs a full 3x3 neighborhood. The convolution reads from a
// copy of the source buffer so earlier writes never alias later reads.
func Apply(img *image.NRGBA, amount float64) {
	if img == nil || amount <= 0 {
		return
	}
	if amount > 100 {
		amount = 100
	}

	factor := amount / 100
	center := 1 + 4*factor

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width < 3 || height < 3 {
		return
	}

	src := make([]uint8, len(img.Pix))
	copy(src, img.Pix)

	stride := img.Stride

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			off := y*stride + x*4
			for c := 0; c < 3; c++ {
				i := off + c
				sum := center*float64(src[i]) -
					factor*float64(src[i-stride]) -
					factor*float64(src[i+stride]) -
					factor*float64(src[i-4]) -
					factor*float64(src[i+4])

				switch {
				case sum < 0:
					img.Pix[i] = 0
				case sum > 255:
					img.Pix[i] = 255
				default:
					img.Pix[i] = uint8(sum)
				}
			}
		}
	}
}
