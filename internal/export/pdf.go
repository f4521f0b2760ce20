package export

import (
	"bytes"
	"image"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// PDF page layout, in millimetres on an A5 portrait page.
const (
	pdfTitle      = "UPI QR Code"
	pdfFooter     = "Generated with UPI QR Code Generator"
	pdfFontFamily = "caption"

	titleY       = 25
	imageTop     = 35
	imageWidth   = 100
	captionGap   = 15
	amountGap    = 8
	footerMargin = 10
)

// PDF lays img out on a single A5 page with a title, the payment captions
// and a footer line.
func (e *Exporter) PDF(img image.Image, req upi.PaymentRequest) (Artifact, error) {
	pngData, err := encodePNG(img)
	if err != nil {
		return Artifact{}, err
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetCompression(e.compress)
	pdf.SetTitle(pdfTitle, true)
	pdf.SetCreator("upiqr", true)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", e.fonts.TTF(fonts.Regular))
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", e.fonts.TTF(fonts.Bold))
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont(pdfFontFamily, "B", 22)
	pdf.SetTextColor(51, 51, 51)
	centeredText(pdf, pageW, titleY, pdfTitle)

	b := img.Bounds()
	imgH := float64(b.Dy()) * imageWidth / float64(b.Dx())
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(pngData))
	pdf.ImageOptions("qr", pageW/2-imageWidth/2, imageTop, imageWidth, imgH, false, opts, 0, "")

	scanY := imageTop + imgH + captionGap
	pdf.SetFont(pdfFontFamily, "B", 14)
	centeredText(pdf, pageW, scanY, e.fonts.Printable(fonts.Bold, upi.ScanCaption(req)))

	if req.HasAmount() {
		pdf.SetFont(pdfFontFamily, "", 12)
		centeredText(pdf, pageW, scanY+amountGap, e.fonts.Printable(fonts.Regular, upi.AmountCaption(req)))
	}

	pdf.SetFont(pdfFontFamily, "", 8)
	pdf.SetTextColor(150, 150, 150)
	centeredText(pdf, pageW, pageH-footerMargin, pdfFooter)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, errors.Wrap(err, "export: write pdf")
	}
	return Artifact{
		Filename:    Filename(req, KindPDF),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func centeredText(pdf *fpdf.Fpdf, pageW, y float64, s string) {
	pdf.Text(pageW/2-pdf.GetStringWidth(s)/2, y, s)
}
