// Package export serializes composited QR images into downloadable PNG and PDF
// files named after the payee address.
package export

import (
	"image"
	"strings"

	"github.com/pkg/errors"

	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// Kind is an export file format.
type Kind string

const (
	KindPNG Kind = "png"
	KindPDF Kind = "pdf"
)

// ParseKind accepts "png" or "pdf" in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPNG, KindPDF:
		return k, nil
	default:
		return "", errors.Errorf("export: unsupported format %q", s)
	}
}

// ErrNoImage is returned when an export is requested before compositing.
var ErrNoImage = errors.New("export: no image to export")

// Artifact is a fully encoded file ready to be handed to the user.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Filename returns the deterministic download name for req.
func Filename(req upi.PaymentRequest, kind Kind) string {
	return "UPI-QR-" + req.PayeeAddress() + "." + string(kind)
}

// Exporter encodes images into artifacts.
type Exporter struct {
	fonts *fonts.Set
	// compress deflates PDF page streams; off only in tests.
	compress bool
}

// New returns an Exporter that uses fs for PDF text.
func New(fs *fonts.Set) *Exporter {
	return &Exporter{fonts: fs, compress: true}
}

// Export encodes img in the given format. Data is only returned when
// encoding succeeded in full.
func (e *Exporter) Export(kind Kind, img image.Image, req upi.PaymentRequest) (Artifact, error) {
	if img == nil {
		return Artifact{}, ErrNoImage
	}
	switch kind {
	case KindPNG:
		return PNG(img, req)
	case KindPDF:
		return e.PDF(img, req)
	default:
		return Artifact{}, errors.Errorf("export: unsupported format %q", kind)
	}
}
