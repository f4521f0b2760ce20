package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// PNG encodes img losslessly after flattening it onto opaque white.
func PNG(img image.Image, req upi.PaymentRequest) (Artifact, error) {
	data, err := encodePNG(img)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    Filename(req, KindPNG),
		ContentType: "image/png",
		Data:        data,
	}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Point{}, 1.0)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, flat); err != nil {
		return nil, errors.Wrap(err, "export: encode png")
	}
	return buf.Bytes(), nil
}
