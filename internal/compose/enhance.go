package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// ContrastThreshold is the red-channel value below which a pixel is forced to
// pure black.
const ContrastThreshold = 200

// Enhance returns a copy of src in which every pixel whose red channel is
// below ContrastThreshold has its RGB set to black. Alpha and near-white
// pixels are left alone, so applying Enhance twice equals applying it once.
//
// The threshold only looks at red and assumes a grayscale QR rendering.
func Enhance(src image.Image) *image.NRGBA {
	dst := imaging.Clone(src)
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			if row[i] < ContrastThreshold {
				row[i], row[i+1], row[i+2] = 0, 0, 0
			}
		}
	}
	return dst
}
