package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	toast "github.com/cristianadrielbraun/upiqr/web/components/ui/toast"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
// The page uses it to surface failed downloads.
func (h *Handler) GenericToast(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	variant := c.PostForm("variant")
	dismissible := c.PostForm("dismissible") == "on"

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	if err := toast.Toast(toast.Props{
		Title:         title,
		Description:   description,
		Variant:       toastVariant(variant),
		Position:      toast.PositionBottomRight,
		Duration:      toastDuration(variant, dismissible),
		Dismissible:   dismissible,
		ShowIndicator: false,
		Icon:          true,
	}).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.WithError(err).Warn("render toast")
	}
}

func toastVariant(variant string) toast.Variant {
	switch variant {
	case "error", "destructive":
		return toast.VariantError
	case "warning":
		return toast.VariantWarning
	case "info":
		return toast.VariantInfo
	default:
		return toast.VariantSuccess
	}
}

// Dismissable errors stay until the user closes them.
func toastDuration(variant string, dismissible bool) int {
	if dismissible && toastVariant(variant) == toast.VariantError {
		return 0
	}
	return 2000
}
