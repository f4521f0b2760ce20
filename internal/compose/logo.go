package compose

import (
	"context"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// LogoFuture is a logo image that is loaded once in the background. Until it
// resolves, and forever if loading failed, the compositor draws no logo.
type LogoFuture struct {
	done chan struct{}
	img  image.Image
	err  error
}

// LoadLogo starts loading the logo at path, rasterised to size x size.
// SVG files go through oksvg; PNG, JPEG and GIF are decoded and resized.
func LoadLogo(path string, size int, log *logrus.Logger) *LogoFuture {
	f := &LogoFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.img, f.err = decodeLogo(path, size)
		if log == nil {
			return
		}
		if f.err != nil {
			log.WithError(f.err).WithField("path", path).Warn("logo unavailable, QR codes render without it")
			return
		}
		log.WithField("path", path).Debug("logo loaded")
	}()
	return f
}

// ResolvedLogo returns a future that is already resolved to img. A nil img
// means "no logo".
func ResolvedLogo(img image.Image) *LogoFuture {
	f := &LogoFuture{done: make(chan struct{}), img: img}
	if img == nil {
		f.err = errors.New("logo: none")
	}
	close(f.done)
	return f
}

// Ready returns the logo without blocking. ok is false while loading is in
// progress and when the logo turned out to be unavailable.
func (f *LogoFuture) Ready() (img image.Image, ok bool) {
	if f == nil {
		return nil, false
	}
	select {
	case <-f.done:
		return f.img, f.img != nil
	default:
		return nil, false
	}
}

// Wait blocks until the logo has resolved or ctx is done.
func (f *LogoFuture) Wait(ctx context.Context) (image.Image, error) {
	if f == nil {
		return nil, errors.New("logo: none")
	}
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func decodeLogo(path string, size int) (image.Image, error) {
	if path == "" {
		return nil, errors.New("logo: no path configured")
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return rasterizeSVG(path, size)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "logo: open %s", path)
	}
	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}

func rasterizeSVG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "logo: open %s", path)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, errors.Wrapf(err, "logo: parse %s", path)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(rgba, rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return rgba, nil
}
