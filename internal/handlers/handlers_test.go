package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/upiqr/internal/compose"
	"github.com/cristianadrielbraun/upiqr/internal/export"
	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/qr"
	"github.com/cristianadrielbraun/upiqr/internal/session"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	fs, err := fonts.Default()
	require.NoError(t, err)
	renderer, err := qr.New(qr.EngineYeqown, log)
	require.NoError(t, err)

	h := New(session.Pipeline{
		Renderer:   renderer,
		Compositor: compose.New(fs, nil, log),
		Exporter:   export.New(fs),
	}, log)

	r := gin.New()
	h.Routes(r, "")
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(path string, v url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomePage(t *testing.T) {
	w := serve(newRouter(t), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "UPI QR Code Generator")
	assert.Contains(t, body, `name="vpa"`)
	assert.Contains(t, body, `maxlength="15"`)
	assert.NotContains(t, body, "Download PNG")
}

func TestGenerateShowsInlineErrors(t *testing.T) {
	w := serve(newRouter(t), postForm("/", url.Values{"vpa": {""}, "name": {"Bob"}, "amount": {"0"}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "VPA is required")
	assert.Contains(t, body, "Amount must be greater than 0")
	assert.Contains(t, body, `value="Bob"`, "input is kept")
	assert.NotContains(t, body, "Download PNG")
}

func TestGenerateShowsPreview(t *testing.T) {
	w := serve(newRouter(t), postForm("/", url.Values{
		"vpa": {"alice@bank"}, "name": {"Alice"}, "amount": {"250"}, "remark": {"Lunch"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `src="data:image/png;base64,`)
	assert.Contains(t, body, "upi://pay?pa=alice@bank&amp;pn=Alice&amp;am=250&amp;tn=Lunch")
	assert.Contains(t, body, "/api/qr.png?")
	assert.Contains(t, body, "/api/qr.pdf?")
	assert.Contains(t, body, "Scan to pay Alice</p>")
	assert.Contains(t, body, "Amount: ₹250</p>")
}

func TestDownloadPNG(t *testing.T) {
	q := url.Values{"vpa": {"alice@bank"}, "name": {"Alice"}, "amount": {"250"}, "remark": {"Lunch"}}
	w := serve(newRouter(t), httptest.NewRequest(http.MethodGet, "/api/qr.png?"+q.Encode(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="UPI-QR-alice@bank.png"`, w.Header().Get("Content-Disposition"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	wantW, wantH := compose.Size(qr.Size, qr.Size)
	assert.Equal(t, wantW, img.Bounds().Dx())
	assert.Equal(t, wantH, img.Bounds().Dy())
}

func TestDownloadPDF(t *testing.T) {
	q := url.Values{"vpa": {"bob@bank"}, "name": {"Bob"}}
	w := serve(newRouter(t), httptest.NewRequest(http.MethodGet, "/api/qr.pdf?"+q.Encode(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="UPI-QR-bob@bank.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestDownloadValidationError(t *testing.T) {
	q := url.Values{"vpa": {"bob@bank"}, "name": {"Bob"}, "remark": {"sixteen chars!!!"}}
	w := serve(newRouter(t), httptest.NewRequest(http.MethodGet, "/api/qr.png?"+q.Encode(), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Remark must be under 15 characters", body.Fields["remark"])
}

func TestGenericToast(t *testing.T) {
	w := serve(newRouter(t), postForm("/api/htmx/toast", url.Values{
		"title": {"Failed to download QR code"}, "description": {"<boom>"}, "variant": {"error"}, "dismissible": {"on"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to download QR code")
	assert.Contains(t, body, "&lt;boom&gt;")
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "data-toast-dismiss")
	assert.Contains(t, body, `data-duration="0"`)
}

func TestSitemap(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "localhost:8080"
	w := serve(newRouter(t), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>http://localhost:8080/</loc>")
}
