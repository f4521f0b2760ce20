// Package compose flattens a rendered QR bitmap, the optional centre logo and
// the payment captions into the single image that gets previewed and exported.
package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// Layout, in pixels.
const (
	Padding        = 40
	TextBandHeight = 60
	LogoSize       = 40
	// LogoMargin is the white border kept between the logo and QR modules.
	LogoMargin = 5

	scanCaptionOffset   = 30
	amountCaptionOffset = 55
	scanCaptionSize     = 16
	amountCaptionSize   = 14
)

// ErrNoBitmap means compositing was requested before a QR was rendered.
var ErrNoBitmap = errors.New("compose: QR bitmap missing")

// Compositor builds the exported image. It is safe for concurrent use.
type Compositor struct {
	fonts *fonts.Set
	logo  *LogoFuture
	log   *logrus.Logger
}

// New returns a Compositor. logo may be nil or unresolved, in which case
// images are produced without the centre logo.
func New(fs *fonts.Set, logo *LogoFuture, log *logrus.Logger) *Compositor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Compositor{fonts: fs, logo: logo, log: log}
}

// Size returns the output dimensions for a QR bitmap of w x h pixels.
func Size(w, h int) (int, int) {
	return w + 2*Padding, h + 2*Padding + TextBandHeight
}

// Composite draws qr onto a white canvas with padding, forces dark pixels to
// black, overlays the logo if it has loaded and prints the captions for req.
func (c *Compositor) Composite(qr image.Image, req upi.PaymentRequest) (image.Image, error) {
	if qr == nil || qr.Bounds().Empty() {
		return nil, ErrNoBitmap
	}

	b := qr.Bounds()
	qw, qh := b.Dx(), b.Dy()
	dc := gg.NewContext(Size(qw, qh))
	dc.SetColor(color.White)
	dc.Clear()

	dc.DrawImage(Enhance(qr), Padding, Padding)

	if logo, ok := c.logo.Ready(); ok {
		cx, cy := Padding+qw/2, Padding+qh/2
		side := LogoSize + 2*LogoMargin
		dc.SetColor(color.White)
		dc.DrawRectangle(float64(cx-side/2), float64(cy-side/2), float64(side), float64(side))
		dc.Fill()
		dc.DrawImage(fitLogo(logo), cx-LogoSize/2, cy-LogoSize/2)
	} else {
		c.log.Debug("logo not ready, compositing without it")
	}

	centerX := float64(dc.Width()) / 2
	dc.SetColor(color.Black)

	dc.SetFontFace(c.fonts.Face(fonts.Bold, scanCaptionSize))
	dc.DrawStringAnchored(c.fonts.Printable(fonts.Bold, upi.ScanCaption(req)),
		centerX, float64(qh+Padding+scanCaptionOffset), 0.5, 0)

	if req.HasAmount() {
		dc.SetFontFace(c.fonts.Face(fonts.Regular, amountCaptionSize))
		dc.DrawStringAnchored(c.fonts.Printable(fonts.Regular, upi.AmountCaption(req)),
			centerX, float64(qh+Padding+amountCaptionOffset), 0.5, 0)
	}

	return dc.Image(), nil
}

func fitLogo(logo image.Image) image.Image {
	b := logo.Bounds()
	if b.Dx() == LogoSize && b.Dy() == LogoSize {
		return logo
	}
	return imaging.Resize(logo, LogoSize, LogoSize, imaging.Lanczos)
}
