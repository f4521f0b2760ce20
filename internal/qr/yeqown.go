package qr

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

type yeqownRenderer struct {
	log *logrus.Logger
}

// bufferCloser lets the standard writer encode into memory instead of a
// temp file.
type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }

func (r *yeqownRenderer) Render(content string) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	qrc, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return nil, errors.Wrap(err, "qr: encode")
	}

	// Pick the largest whole module width that fits, then scale the rest.
	modules := qrc.Dimension() + 2*QuietZone
	moduleWidth := Size / modules
	if moduleWidth < 1 {
		moduleWidth = 1
	}

	buf := &bufferCloser{}
	w := standard.NewWithWriter(buf,
		standard.WithQRWidth(uint8(moduleWidth)),
		standard.WithBorderWidth(QuietZone*moduleWidth),
		standard.WithBgColor(color.White),
		standard.WithFgColor(color.Black),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "qr: write bitmap")
	}

	img, err := imaging.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, errors.Wrap(err, "qr: decode bitmap")
	}

	b := img.Bounds()
	r.log.WithFields(logrus.Fields{
		"engine":    EngineYeqown,
		"dimension": qrc.Dimension(),
		"module_px": moduleWidth,
		"raw_size":  b.Dx(),
	}).Debug("rendered QR")

	if b.Dx() == Size && b.Dy() == Size {
		return img, nil
	}
	// nearest neighbour keeps module edges hard
	return imaging.Resize(img, Size, Size, imaging.NearestNeighbor), nil
}
