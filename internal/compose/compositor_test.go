package compose

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

func newCompositor(t *testing.T, logo *LogoFuture) *Compositor {
	t.Helper()
	fs, err := fonts.Default()
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	return New(fs, logo, log)
}

// fakeQR is a white square with dark gray anti-aliasing-like blocks.
func fakeQR(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/10+y/10)%2 == 0 {
				img.Set(x, y, color.RGBA{60, 60, 60, 255})
			}
		}
	}
	return img
}

func request(t *testing.T, amount *float64) upi.PaymentRequest {
	t.Helper()
	req, err := upi.NewPaymentRequest("alice@bank", "Alice", amount, "Lunch")
	require.NoError(t, err)
	return req
}

func rgba(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestCompositeDimensions(t *testing.T) {
	c := newCompositor(t, nil)
	for _, size := range []int{21, 100, 200, 333} {
		out, err := c.Composite(fakeQR(size), request(t, nil))
		require.NoError(t, err)
		assert.Equal(t, size+2*Padding, out.Bounds().Dx())
		assert.Equal(t, size+2*Padding+TextBandHeight, out.Bounds().Dy())
	}
}

func TestCompositeMissingBitmap(t *testing.T) {
	c := newCompositor(t, nil)
	_, err := c.Composite(nil, request(t, nil))
	assert.ErrorIs(t, err, ErrNoBitmap)

	_, err = c.Composite(image.NewRGBA(image.Rect(0, 0, 0, 0)), request(t, nil))
	assert.ErrorIs(t, err, ErrNoBitmap)
}

func TestCompositePaddingAndContrast(t *testing.T) {
	c := newCompositor(t, nil)
	out, err := c.Composite(fakeQR(200), request(t, nil))
	require.NoError(t, err)

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	assert.Equal(t, white, rgba(out, 5, 5), "padding is white")
	assert.Equal(t, white, rgba(out, 279, 5))
	// the dark gray block at QR (0,0) is drawn at (40,40) and enhanced to black
	assert.Equal(t, black, rgba(out, Padding, Padding))
	assert.Equal(t, black, rgba(out, Padding+5, Padding+5))
	// a white block stays white
	assert.Equal(t, white, rgba(out, Padding+15, Padding+5))
}

func TestCompositeLogo(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, LogoSize, LogoSize))
	draw.Draw(red, red.Bounds(), &image.Uniform{C: color.RGBA{255, 0, 0, 255}}, image.Point{}, draw.Src)

	c := newCompositor(t, ResolvedLogo(red))
	out, err := c.Composite(fakeQR(200), request(t, nil))
	require.NoError(t, err)

	cx, cy := Padding+100, Padding+100
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(out, cx, cy), "logo centred")
	// the margin ring around the logo is white even over dark modules
	for _, p := range []image.Point{
		{cx - LogoSize/2 - 3, cy},
		{cx + LogoSize/2 + 2, cy},
		{cx, cy - LogoSize/2 - 3},
		{cx, cy + LogoSize/2 + 2},
	} {
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(out, p.X, p.Y), "margin at %v", p)
	}
}

func TestCompositeLogoScaled(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 400, 400))
	draw.Draw(big, big.Bounds(), &image.Uniform{C: color.RGBA{0, 0, 255, 255}}, image.Point{}, draw.Src)

	c := newCompositor(t, ResolvedLogo(big))
	out, err := c.Composite(fakeQR(200), request(t, nil))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba(out, Padding+100-LogoSize/2+1, Padding+100))
	assert.NotEqual(t, color.RGBA{0, 0, 255, 255}, rgba(out, Padding+100-LogoSize/2-2, Padding+100))
}

func TestCompositeSkipsPendingLogo(t *testing.T) {
	pending := &LogoFuture{done: make(chan struct{})}
	c := newCompositor(t, pending)
	out, err := c.Composite(fakeQR(200), request(t, nil))
	require.NoError(t, err)

	// without the logo the centre shows the enhanced QR block pattern
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(out, Padding+100, Padding+100))
}

func darkPixelsInRows(img image.Image, y0, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				n++
			}
		}
	}
	return n
}

func TestCompositeCaptions(t *testing.T) {
	c := newCompositor(t, nil)

	// caption baselines are measured from the bottom edge of the QR
	base := Padding + 200
	withoutAmount, err := c.Composite(fakeQR(200), request(t, nil))
	require.NoError(t, err)
	assert.Positive(t, darkPixelsInRows(withoutAmount, base, base+scanCaptionOffset+4))
	assert.Zero(t, darkPixelsInRows(withoutAmount, base+scanCaptionOffset+6, base+TextBandHeight))

	am := 250.0
	withAmount, err := c.Composite(fakeQR(200), request(t, &am))
	require.NoError(t, err)
	assert.Positive(t, darkPixelsInRows(withAmount, base+scanCaptionOffset+6, base+TextBandHeight))
}
