// Package qr turns payload strings into square QR bitmaps of a fixed size and
// error-correction level, so identical input always yields identical pixels.
package qr

import (
	"image"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// Size is the edge length of every rendered bitmap, in pixels.
	Size = 200
	// Level is the error-correction level. H survives the centre logo.
	Level = "H"
	// QuietZone is the white margin around the symbol, in modules.
	QuietZone = 4
)

// Engine names accepted by New.
const (
	EngineYeqown = "yeqown"
	EngineSkip2  = "skip2"
)

// ErrEmptyContent is returned when asked to render an empty payload.
var ErrEmptyContent = errors.New("qr: empty content")

// Renderer renders content as a Size x Size black-on-white QR bitmap at
// correction level H, quiet zone included.
type Renderer interface {
	Render(content string) (image.Image, error)
}

// New returns the renderer backed by the named engine. An empty name selects
// the default engine.
func New(engine string, log *logrus.Logger) (Renderer, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineYeqown:
		return &yeqownRenderer{log: log}, nil
	case EngineSkip2:
		return &skip2Renderer{log: log}, nil
	default:
		return nil, errors.Errorf("qr: unknown engine %q", engine)
	}
}
