// Package typeface provides font-name mapping and FontMeasurer backends for
// the layout engine. The core 14 face names follow the usual PostScript
// conventions so a renderer can address builtin printer fonts directly.
package typeface

import (
	"unicode/utf8"

	"github.com/lithotype/lithotype/layout"
)

// courierEm is the advance width of every Courier glyph, in em units.
const courierEm = 0.6

var faceNames = map[layout.FontFamily][4]string{
	// regular, bold, italic, bold-italic
	layout.FamilyMono:  {"Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique"},
	layout.FamilySans:  {"Helvetica", "Helvetica-Bold", "Helvetica-Oblique", "Helvetica-BoldOblique"},
	layout.FamilySerif: {"Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic"},
}

// Face returns the concrete face name for a resolved text style.
func Face(s layout.TextStyle) string {
	variants, ok := faceNames[s.Family]
	if !ok {
		variants = faceNames[layout.FamilyMono]
	}
	idx := 0
	if s.Bold {
		idx |= 1
	}
	if s.Italic {
		idx |= 2
	}
	return variants[idx]
}

// FixedPitch measures text with a fixed advance per glyph. With the default
// em width it is exact for the Courier family and a conservative upper
// bound for the proportional core faces, which keeps the fitter's
// no-overflow guarantee intact for any of them.
type FixedPitch struct {
	Em float64 // advance per glyph in em units
}

// NewFixedPitch returns the Courier-exact fixed-pitch measurer.
func NewFixedPitch() FixedPitch { return FixedPitch{Em: courierEm} }

var _ layout.FontMeasurer = FixedPitch{}

// TextWidth implements layout.FontMeasurer.
func (f FixedPitch) TextWidth(text string, _ layout.TextStyle, size float64) float64 {
	em := f.Em
	if em <= 0 {
		em = courierEm
	}
	return float64(utf8.RuneCountInString(text)) * em * size
}
