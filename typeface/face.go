package typeface

import (
	"fmt"
	"os"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/lithotype/lithotype/layout"
)

// FaceMeasurer answers width queries from real font files via
// github.com/tdewolff/canvas. Fonts are supplied per family by the caller,
// either as raw bytes or as a path; families without a font fall back to
// the fixed-pitch model so measurement stays total and deterministic.

// Resource supplies font data either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

type familyEntry struct {
	family *canvas.FontFamily
	err    error
}

// FaceMeasurer caches one canvas font family per configured label family.
// Safe for concurrent use.
type FaceMeasurer struct {
	resources map[layout.FontFamily]Resource
	fallback  FixedPitch

	mu       sync.Mutex
	families map[layout.FontFamily]*familyEntry
}

var _ layout.FontMeasurer = (*FaceMeasurer)(nil)

// NewFaceMeasurer builds a measurer from per-family font resources.
func NewFaceMeasurer(fonts map[layout.FontFamily]Resource) *FaceMeasurer {
	res := make(map[layout.FontFamily]Resource, len(fonts))
	for fam, r := range fonts {
		res[fam] = r
	}
	return &FaceMeasurer{
		resources: res,
		fallback:  NewFixedPitch(),
		families:  make(map[layout.FontFamily]*familyEntry),
	}
}

// TextWidth implements layout.FontMeasurer. The reported width is in
// points when size is given in points.
func (m *FaceMeasurer) TextWidth(text string, style layout.TextStyle, size float64) float64 {
	family, err := m.ensureFamily(style.Family)
	if err != nil {
		return m.fallback.TextWidth(text, style, size)
	}
	face := family.Face(size, canvas.Black, fontStyle(style), canvas.FontNormal)
	return face.TextWidth(text)
}

// Err reports the load error for a family, if any. Useful for surfacing
// configuration problems instead of silently measuring fixed-pitch.
func (m *FaceMeasurer) Err(fam layout.FontFamily) error {
	_, err := m.ensureFamily(fam)
	return err
}

func (m *FaceMeasurer) ensureFamily(fam layout.FontFamily) (*canvas.FontFamily, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.families[fam]; ok {
		return entry.family, entry.err
	}

	entry := &familyEntry{}
	entry.family, entry.err = m.loadFamily(fam)
	m.families[fam] = entry
	return entry.family, entry.err
}

func (m *FaceMeasurer) loadFamily(fam layout.FontFamily) (*canvas.FontFamily, error) {
	res, ok := m.resources[fam]
	if !ok {
		return nil, fmt.Errorf("typeface: no font configured for family %s", fam)
	}
	data := res.Bytes
	if len(data) == 0 {
		if res.Path == "" {
			return nil, fmt.Errorf("typeface: empty font resource for family %s", fam)
		}
		var err error
		data, err = os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("typeface: read font for family %s: %w", fam, err)
		}
	}

	family := canvas.NewFontFamily(fam.String())
	// Load regular, bold, italic and bold-italic slots from the same data
	// so styled faces resolve even for single-file fonts; canvas applies
	// synthetic styling where the file has none.
	for _, fs := range []canvas.FontStyle{canvas.FontRegular, canvas.FontBold, canvas.FontItalic, canvas.FontBold | canvas.FontItalic} {
		if err := family.LoadFont(data, 0, fs); err != nil {
			return nil, fmt.Errorf("typeface: load font for family %s: %w", fam, err)
		}
	}
	return family, nil
}

func fontStyle(s layout.TextStyle) canvas.FontStyle {
	style := canvas.FontRegular
	if s.Bold {
		style = canvas.FontBold
	}
	if s.Italic {
		style |= canvas.FontItalic
	}
	return style
}
