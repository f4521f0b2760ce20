package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/upiqr/internal/fonts"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

func newExporter(t *testing.T) *Exporter {
	t.Helper()
	fs, err := fonts.Default()
	require.NoError(t, err)
	return New(fs)
}

func alice(t *testing.T) upi.PaymentRequest {
	t.Helper()
	am := 250.0
	req, err := upi.NewPaymentRequest("alice@bank", "Alice", &am, "Lunch")
	require.NoError(t, err)
	return req
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 280, 340))
	for y := 0; y < 340; y++ {
		for x := 0; x < 280; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	// a translucent pixel that must come out opaque
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	return img
}

func TestFilename(t *testing.T) {
	req := alice(t)
	assert.Equal(t, "UPI-QR-alice@bank.png", Filename(req, KindPNG))
	assert.Equal(t, "UPI-QR-alice@bank.pdf", Filename(req, KindPDF))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, KindPDF, k)

	_, err = ParseKind("gif")
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	src := testImage()
	a, err := PNG(src, alice(t))
	require.NoError(t, err)
	assert.Equal(t, "UPI-QR-alice@bank.png", a.Filename)
	assert.Equal(t, "image/png", a.ContentType)

	decoded, err := png.Decode(bytes.NewReader(a.Data))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds().Size(), decoded.Bounds().Size())

	// lossless
	r, g, _, _ := decoded.At(100, 200).RGBA()
	assert.Equal(t, uint32(100)*0x101, r)
	assert.Equal(t, uint32(200)*0x101, g)

	// fully opaque, transparent pixels flattened onto white
	_, _, _, alpha := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), alpha)
	wr, _, _, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), wr)
}

// pdfString is s the way fpdf writes it into a page stream for a UTF-8 font.
func pdfString(s string) []byte {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		for _, c := range []byte{byte(u >> 8), byte(u)} {
			switch c {
			case '\\', '(', ')':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\r':
				b.WriteString(`\r`)
			default:
				b.WriteByte(c)
			}
		}
	}
	return []byte(b.String())
}

func pdfText(s string) []byte {
	return []byte("(" + string(pdfString(s)) + ") Tj")
}

func uncompressedExporter(t *testing.T) *Exporter {
	t.Helper()
	e := newExporter(t)
	e.compress = false
	return e
}

func TestPDF(t *testing.T) {
	e := newExporter(t)
	a, err := e.PDF(testImage(), alice(t))
	require.NoError(t, err)

	assert.Equal(t, "UPI-QR-alice@bank.pdf", a.Filename)
	assert.Equal(t, "application/pdf", a.ContentType)
	assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(a.Data, []byte("%%EOF")))
	assert.True(t, bytes.Contains(a.Data, []byte("/Count 1")), "single page")
}

func TestPDFText(t *testing.T) {
	a, err := uncompressedExporter(t).PDF(testImage(), alice(t))
	require.NoError(t, err)

	for _, s := range []string{
		"UPI QR Code",
		"Scan to pay Alice",
		"Amount: ₹250",
		"Generated with UPI QR Code Generator",
	} {
		assert.True(t, bytes.Contains(a.Data, pdfText(s)), s)
	}
	assert.Equal(t, 4, bytes.Count(a.Data, []byte(") Tj ET")))
}

func TestPDFWithoutAmount(t *testing.T) {
	req, err := upi.NewPaymentRequest("bob@bank", "Bob", nil, "")
	require.NoError(t, err)

	a, err := uncompressedExporter(t).PDF(testImage(), req)
	require.NoError(t, err)
	assert.Equal(t, "UPI-QR-bob@bank.pdf", a.Filename)

	assert.True(t, bytes.Contains(a.Data, pdfText("Scan to pay Bob")))
	assert.False(t, bytes.Contains(a.Data, pdfString("Amount:")), "no amount line")
	assert.Equal(t, 3, bytes.Count(a.Data, []byte(") Tj ET")))
}

func TestExport(t *testing.T) {
	e := newExporter(t)
	req := alice(t)

	a, err := e.Export(KindPNG, testImage(), req)
	require.NoError(t, err)
	assert.Equal(t, "image/png", a.ContentType)

	a, err = e.Export(KindPDF, testImage(), req)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", a.ContentType)

	_, err = e.Export(KindPNG, nil, req)
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = e.Export(Kind("tiff"), testImage(), req)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, Artifact{Filename: "UPI-QR-alice@bank.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "UPI-QR-alice@bank.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileRejectsUnsafeNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", "..", "UPI-QR-a/b.png", `UPI-QR-a\b.png`} {
		_, err := WriteFile(dir, Artifact{Filename: name, Data: []byte("x")})
		assert.ErrorIs(t, err, ErrUnsafeFilename, name)
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	_, err := WriteFile(filepath.Join(t.TempDir(), "missing"), Artifact{Filename: "a.png", Data: []byte("x")})
	assert.Error(t, err)
}
