package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/upiqr/internal/session"
)

// Handler carries the dependencies of the HTTP handlers. Every request gets
// its own session; nothing is shared between requests except the pipeline.
type Handler struct {
	pipeline session.Pipeline
	log      *logrus.Logger
}

// New returns a new Handler instance.
func New(p session.Pipeline, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{pipeline: p, log: log}
}

// Routes registers the pages and API endpoints on r.
func (h *Handler) Routes(r *gin.Engine, staticDir string) {
	if staticDir != "" {
		r.Static("/web/static", staticDir)
	}

	api := r.Group("/api")
	{
		api.GET("/qr.png", h.DownloadPNG)
		api.GET("/qr.pdf", h.DownloadPDF)
		api.POST("/htmx/toast", h.GenericToast)
	}

	r.GET("/", h.HomePage)
	r.POST("/", h.Generate)
	r.GET("/sitemap.xml", h.SitemapXML)
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
