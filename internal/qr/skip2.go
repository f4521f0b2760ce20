package qr

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	skipqr "github.com/skip2/go-qrcode"
)

type skip2Renderer struct {
	log *logrus.Logger
}

func (r *skip2Renderer) Render(content string) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	q, err := skipqr.New(content, skipqr.Highest)
	if err != nil {
		return nil, errors.Wrap(err, "qr: encode")
	}
	q.BackgroundColor = color.White
	q.ForegroundColor = color.Black
	q.DisableBorder = false

	r.log.WithFields(logrus.Fields{
		"engine":  EngineSkip2,
		"version": q.VersionNumber,
	}).Debug("rendered QR")

	return q.Image(Size), nil
}
