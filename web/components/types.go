package components

import (
	"net/url"

	"github.com/cristianadrielbraun/upiqr/internal/export"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// QRData is used by the QR UI component to show the generated code and build
// the download links.
type QRData struct {
	// PreviewSrc is a data: URI of the exported PNG.
	PreviewSrc    string
	URI           string
	ScanCaption   string
	AmountCaption string
	Form          upi.Form
}

// DownloadURL returns the API path that exports the QR for form as kind.
func DownloadURL(kind export.Kind, form upi.Form) string {
	q := url.Values{}
	q.Set("vpa", form.VPA)
	q.Set("name", form.Name)
	if form.Amount != "" {
		q.Set("amount", form.Amount)
	}
	if form.Remark != "" {
		q.Set("remark", form.Remark)
	}
	return "/api/qr." + string(kind) + "?" + q.Encode()
}
