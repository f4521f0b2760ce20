// Package fonts loads the caption typefaces shared by the image compositor and
// the PDF exporter.
package fonts

import (
	"os"
	"strings"

	"github.com/go-fonts/dejavu/dejavusans"
	"github.com/go-fonts/dejavu/dejavusansbold"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
)

// Style selects a face within a Set.
type Style int

const (
	Regular Style = iota
	Bold
)

// CurrencyFallback replaces the rupee sign when a font has no glyph for it.
const CurrencyFallback = "Rs."

const rupee = '₹'

// Set is a regular/bold pair of TrueType fonts together with their raw bytes,
// which the PDF writer embeds as is.
type Set struct {
	regular, bold       *truetype.Font
	regularTTF, boldTTF []byte
}

// Default returns the embedded DejaVu Sans pair, which covers the rupee sign.
func Default() (*Set, error) {
	return Parse(dejavusans.TTF, dejavusansbold.TTF)
}

// Load reads TrueType files from disk. An empty path falls back to the
// embedded DejaVu Sans font of that style.
func Load(regularPath, boldPath string) (*Set, error) {
	regular, bold := dejavusans.TTF, dejavusansbold.TTF
	var err error
	if regularPath != "" {
		if regular, err = os.ReadFile(regularPath); err != nil {
			return nil, errors.Wrap(err, "read regular font")
		}
	}
	if boldPath != "" {
		if bold, err = os.ReadFile(boldPath); err != nil {
			return nil, errors.Wrap(err, "read bold font")
		}
	}
	return Parse(regular, bold)
}

// Parse builds a Set from raw TrueType data.
func Parse(regularTTF, boldTTF []byte) (*Set, error) {
	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse regular font")
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse bold font")
	}
	return &Set{regular: regular, bold: bold, regularTTF: regularTTF, boldTTF: boldTTF}, nil
}

func (s *Set) font(style Style) *truetype.Font {
	if style == Bold {
		return s.bold
	}
	return s.regular
}

// Face returns a face of the given pixel size (72 DPI, so points == pixels).
func (s *Set) Face(style Style, size float64) font.Face {
	return truetype.NewFace(s.font(style), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// TTF returns the raw font file for style.
func (s *Set) TTF(style Style) []byte {
	if style == Bold {
		return s.boldTTF
	}
	return s.regularTTF
}

// Printable rewrites text so it can be drawn with style: the rupee sign is
// swapped for CurrencyFallback when the font lacks it. The embedded fonts
// have it; configured ones may not.
func (s *Set) Printable(style Style, text string) string {
	if !strings.ContainsRune(text, rupee) || s.font(style).Index(rupee) != 0 {
		return text
	}
	return strings.ReplaceAll(text, string(rupee), CurrencyFallback)
}
