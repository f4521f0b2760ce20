package handlers

import (
	"encoding/base64"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/upiqr/internal/export"
	"github.com/cristianadrielbraun/upiqr/internal/session"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
	"github.com/cristianadrielbraun/upiqr/web/components"
	toast "github.com/cristianadrielbraun/upiqr/web/components/ui/toast"
	"github.com/cristianadrielbraun/upiqr/web/pages"
)

// HomePage renders the empty form.
func (h *Handler) HomePage(c *gin.Context) {
	h.render(c, http.StatusOK, pages.HomeProps{})
}

// Generate handles the form submit: on invalid input the form comes back with
// inline errors, otherwise the page shows the QR preview and download links.
func (h *Handler) Generate(c *gin.Context) {
	var form upi.Form
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, pages.HomeProps{Form: form, Toast: errorToast("Invalid form", err)})
		return
	}

	s := session.New(h.pipeline, h.log)
	req, err := s.Submit(form)
	if err != nil {
		h.render(c, http.StatusBadRequest, pages.HomeProps{Form: form, Errors: s.FieldErrors()})
		return
	}
	if _, err := s.Generate(); err != nil {
		h.render(c, http.StatusInternalServerError, pages.HomeProps{Form: form, Toast: errorToast("Failed to generate QR code", err)})
		return
	}

	// The preview is the exported PNG itself, so what you see is what you download.
	preview, err := s.Export(export.KindPNG)
	if err != nil {
		h.render(c, http.StatusInternalServerError, pages.HomeProps{Form: form, Toast: errorToast("Failed to render QR preview", err)})
		return
	}

	h.render(c, http.StatusOK, pages.HomeProps{
		Form: form,
		QR: &components.QRData{
			PreviewSrc:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(preview.Data),
			URI:           s.URI(),
			ScanCaption:   upi.ScanCaption(req),
			AmountCaption: upi.AmountCaption(req),
			Form:          form,
		},
	})
}

// DownloadPNG serves the composited QR as a PNG attachment.
func (h *Handler) DownloadPNG(c *gin.Context) { h.download(c, export.KindPNG) }

// DownloadPDF serves the composited QR on an A5 PDF page.
func (h *Handler) DownloadPDF(c *gin.Context) { h.download(c, export.KindPDF) }

func (h *Handler) download(c *gin.Context, kind export.Kind) {
	var form upi.Form
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := session.New(h.pipeline, h.log)
	log := h.log.WithFields(logrus.Fields{"session": s.ID(), "format": kind})

	if _, err := s.Submit(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": s.FieldErrors()})
		return
	}
	if _, err := s.Generate(); err != nil {
		log.WithError(err).Error("generate for download")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	a, err := s.Export(kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export QR code: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

func (h *Handler) render(c *gin.Context, status int, props pages.HomeProps) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pages.HomePage(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.WithError(err).Error("render home page")
	}
}

func errorToast(title string, err error) *toast.Props {
	return &toast.Props{
		Title:       title,
		Description: err.Error(),
		Variant:     toast.VariantError,
		Position:    toast.PositionBottomRight,
		Dismissible: true,
		Icon:        true,
	}
}
