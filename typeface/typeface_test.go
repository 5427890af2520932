package typeface

import (
	"math"
	"testing"

	"github.com/lithotype/lithotype/layout"
)

func TestFaceNames(t *testing.T) {
	cases := []struct {
		style layout.TextStyle
		want  string
	}{
		{layout.TextStyle{Family: layout.FamilyMono}, "Courier"},
		{layout.TextStyle{Family: layout.FamilyMono, Bold: true}, "Courier-Bold"},
		{layout.TextStyle{Family: layout.FamilyMono, Italic: true}, "Courier-Oblique"},
		{layout.TextStyle{Family: layout.FamilyMono, Bold: true, Italic: true}, "Courier-BoldOblique"},
		{layout.TextStyle{Family: layout.FamilySans}, "Helvetica"},
		{layout.TextStyle{Family: layout.FamilySans, Bold: true}, "Helvetica-Bold"},
		{layout.TextStyle{Family: layout.FamilySerif, Italic: true}, "Times-Italic"},
		{layout.TextStyle{Family: layout.FamilySerif, Bold: true, Italic: true}, "Times-BoldItalic"},
	}
	for _, tc := range cases {
		if got := Face(tc.style); got != tc.want {
			t.Errorf("Face(%+v) = %q, want %q", tc.style, got, tc.want)
		}
	}
}

// Unknown families resolve to the fixed-pitch faces rather than failing.
func TestFaceUnknownFamily(t *testing.T) {
	if got := Face(layout.TextStyle{Family: layout.FontFamily(42)}); got != "Courier" {
		t.Fatalf("Face = %q, want Courier", got)
	}
}

func TestFixedPitchWidth(t *testing.T) {
	m := NewFixedPitch()
	style := layout.TextStyle{Family: layout.FamilyMono}

	// Courier advances 0.6em per glyph regardless of style.
	if got := m.TextWidth("Species", style, 10); math.Abs(got-42) > 1e-9 {
		t.Fatalf("width = %g, want 42", got)
	}
	if got := m.TextWidth("", style, 10); got != 0 {
		t.Fatalf("empty width = %g", got)
	}

	// Width is linear in size and counts runes, not bytes.
	small := m.TextWidth("Ammonoidé", style, 6)
	large := m.TextWidth("Ammonoidé", style, 12)
	if math.Abs(large-2*small) > 1e-9 {
		t.Fatalf("width not linear in size: %g vs %g", small, large)
	}
	if got := m.TextWidth("Ammonoidé", style, 10); math.Abs(got-54) > 1e-9 {
		t.Fatalf("rune width = %g, want 54", got)
	}
}

func TestFixedPitchZeroEm(t *testing.T) {
	// The zero value falls back to the Courier advance.
	var m FixedPitch
	if got := m.TextWidth("ab", layout.TextStyle{}, 10); math.Abs(got-12) > 1e-9 {
		t.Fatalf("width = %g, want 12", got)
	}
}

// Without a configured font, FaceMeasurer degrades to the fixed-pitch
// model and surfaces the configuration problem through Err.
func TestFaceMeasurerFallback(t *testing.T) {
	m := NewFaceMeasurer(nil)
	style := layout.TextStyle{Family: layout.FamilySans}

	if got := m.TextWidth("Species", style, 10); math.Abs(got-42) > 1e-9 {
		t.Fatalf("fallback width = %g, want 42", got)
	}
	if err := m.Err(layout.FamilySans); err == nil {
		t.Fatal("Err: expected a missing-font error")
	}
}

func TestFaceMeasurerBadResource(t *testing.T) {
	m := NewFaceMeasurer(map[layout.FontFamily]Resource{
		layout.FamilyMono:  {},
		layout.FamilySerif: {Path: "testdata/does-not-exist.ttf"},
	})
	if err := m.Err(layout.FamilyMono); err == nil {
		t.Fatal("empty resource: expected error")
	}
	if err := m.Err(layout.FamilySerif); err == nil {
		t.Fatal("missing file: expected error")
	}
	// Measurement still answers via the fallback.
	if got := m.TextWidth("ab", layout.TextStyle{Family: layout.FamilySerif}, 10); math.Abs(got-12) > 1e-9 {
		t.Fatalf("fallback width = %g, want 12", got)
	}
}
