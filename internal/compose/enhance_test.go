package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func antialiased(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*7 + y*13) % 256)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: uint8(128 + (x % 128))})
		}
	}
	return img
}

func TestEnhanceThreshold(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 199, G: 180, B: 220, A: 77})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(3, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})

	got := Enhance(src)

	assert.Equal(t, color.NRGBA{0, 0, 0, 77}, got.NRGBAAt(0, 0), "dark pixel forced black, alpha kept")
	assert.Equal(t, color.NRGBA{200, 10, 10, 255}, got.NRGBAAt(1, 0), "threshold is exclusive")
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, got.NRGBAAt(2, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, got.NRGBAAt(3, 0))

	// source untouched
	assert.Equal(t, color.NRGBA{R: 199, G: 180, B: 220, A: 77}, src.NRGBAAt(0, 0))
}

func TestEnhanceIdempotent(t *testing.T) {
	for _, size := range []int{1, 17, 200} {
		once := Enhance(antialiased(size, size))
		twice := Enhance(once)
		assert.Equal(t, once.Pix, twice.Pix, "size %d", size)
	}
}

func TestEnhanceOffsetBounds(t *testing.T) {
	src := antialiased(30, 30).SubImage(image.Rect(10, 10, 20, 25))
	got := Enhance(src)
	assert.Equal(t, 10, got.Rect.Dx())
	assert.Equal(t, 15, got.Rect.Dy())
	assert.Equal(t, image.Point{}, got.Rect.Min)
}
