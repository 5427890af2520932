package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedMeasurer is a minimal FontMeasurer for tests: every glyph advances
// em × size points, which is exact for the Courier family at em = 0.6.
type fixedMeasurer struct{ em float64 }

func (m fixedMeasurer) TextWidth(text string, _ TextStyle, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * m.em * size
}

var courier = fixedMeasurer{em: 0.6}

func mustFit(t *testing.T, lines []string, box FitBox, m FontMeasurer, opts FitOptions) FittedText {
	t.Helper()
	fit, err := FitText(lines, box, TextStyle{}, m, opts)
	if err != nil {
		t.Fatalf("FitText: %v", err)
	}
	return fit
}

// TestFitSpecimenNameOneLine: a 2.5in x 1.75in label keeps a typical
// species name on a single line at 9pt. Interior box: 180x126pt minus
// 1.5pt border and 5% padding on each side.
func TestFitSpecimenNameOneLine(t *testing.T) {
	box := FitBox{Width: 164.4, Height: 110.4}
	fit := mustFit(t, []string{"Eupachydiscus sp."}, box, courier, FitOptions{InitialSize: 9})
	if fit.Truncated {
		t.Fatal("unexpected truncation")
	}
	if fit.Size != 9 {
		t.Fatalf("size = %g, want 9", fit.Size)
	}
	if len(fit.Lines) != 1 || fit.Lines[0] != "Eupachydiscus sp." {
		t.Fatalf("lines = %q", fit.Lines)
	}
}

// TestFitTruncatesAtFloor: content that cannot fit even at the 6pt floor
// is cut to the number of lines the box holds. Interior box of a 2in x
// 1in label; a wide glyph model forces the overflow.
func TestFitTruncatesAtFloor(t *testing.T) {
	box := FitBox{Width: 133.8, Height: 61.8}
	wide := fixedMeasurer{em: 1}
	fit := mustFit(t, []string{strings.Repeat("a", 200)}, box, wide, FitOptions{InitialSize: 12})
	if !fit.Truncated {
		t.Fatal("expected truncation")
	}
	if fit.Size != DefaultMinFontSize {
		t.Fatalf("size = %g, want the %gpt floor", fit.Size, DefaultMinFontSize)
	}
	wantLines := int(math.Floor(box.Height / (DefaultMinFontSize * DefaultLineHeightRatio)))
	if len(fit.Lines) != wantLines {
		t.Fatalf("line count = %d, want %d", len(fit.Lines), wantLines)
	}
}

// TestFitWidthInvariant: no returned line is ever wider than the box at
// the chosen size.
func TestFitWidthInvariant(t *testing.T) {
	texts := []string{
		"Ammonite, Jurassic, Lyme Regis",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"Pseudoextraordinarily-long-compound-taxon-name here",
		strings.Repeat("x", 90),
	}
	boxes := []FitBox{{60, 40}, {90, 14.4}, {25, 120}, {140, 70}}
	for _, text := range texts {
		for _, box := range boxes {
			fit := mustFit(t, []string{text}, box, courier, FitOptions{InitialSize: 14})
			for _, line := range fit.Lines {
				if w := courier.TextWidth(line, TextStyle{}, fit.Size); w > box.Width+1e-9 {
					t.Fatalf("line %q width %g exceeds box width %g at %gpt", line, w, box.Width, fit.Size)
				}
			}
		}
	}
}

// TestFitChoosesLargestSize: the returned size is the largest
// initial − k×step that fits; one step up must overflow.
func TestFitChoosesLargestSize(t *testing.T) {
	box := FitBox{Width: 80, Height: 26}
	text := "one two three four five six seven"
	fit := mustFit(t, []string{text}, box, courier, FitOptions{InitialSize: 12})
	if fit.Truncated {
		t.Fatal("unexpected truncation")
	}
	steps := (12 - fit.Size) / DefaultSizeStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		t.Fatalf("size %g is not reachable from 12 by %g steps", fit.Size, DefaultSizeStep)
	}
	if fit.Size < 12 {
		up := fit.Size + DefaultSizeStep
		wrapped := wrapAll([]string{text}, box.Width, TextStyle{}, up, courier)
		if blockHeight(len(wrapped), up, DefaultLineHeightRatio) <= box.Height {
			t.Fatalf("content also fits at %gpt; %gpt is not maximal", up, fit.Size)
		}
	}
}

// TestFitPreservesWords: on success every original word appears in order.
func TestFitPreservesWords(t *testing.T) {
	text := "Holotype of Eupachydiscus levyi from the Campanian of France"
	fit := mustFit(t, []string{text}, FitBox{Width: 80, Height: 200}, courier, FitOptions{InitialSize: 10})
	if fit.Truncated {
		t.Fatal("unexpected truncation")
	}
	got := strings.Fields(strings.Join(fit.Lines, " "))
	want := strings.Fields(text)
	if len(got) != len(want) {
		t.Fatalf("words = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestFitHardBreak: a word wider than the box is broken at the longest
// prefix that fits.
func TestFitHardBreak(t *testing.T) {
	box := FitBox{Width: 30, Height: 300}
	fit := mustFit(t, []string{"abcdefghijklmnop"}, box, courier, FitOptions{InitialSize: 10})
	// 30pt / (0.6 × 10pt) = 5 glyphs per line.
	want := []string{"abcde", "fghij", "klmno", "p"}
	if len(fit.Lines) != len(want) {
		t.Fatalf("lines = %q, want %q", fit.Lines, want)
	}
	for i := range want {
		if fit.Lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, fit.Lines[i], want[i])
		}
	}
}

func TestFitEmptyText(t *testing.T) {
	for _, lines := range [][]string{nil, {""}, {"   ", "\t"}} {
		fit := mustFit(t, lines, FitBox{Width: 100, Height: 100}, courier, FitOptions{InitialSize: 10})
		if len(fit.Lines) != 0 || fit.Truncated {
			t.Fatalf("empty input: got %+v", fit)
		}
	}
}

func TestFitRejectsInvalidInput(t *testing.T) {
	if _, err := FitText([]string{"x"}, FitBox{Width: 100, Height: 100}, TextStyle{}, courier, FitOptions{InitialSize: 0}); !errors.Is(err, ErrInvalidMeasurement) {
		t.Fatalf("zero initial size: error = %v", err)
	}
	if _, err := FitText([]string{"x"}, FitBox{Width: math.NaN(), Height: 100}, TextStyle{}, courier, FitOptions{InitialSize: 10}); !errors.Is(err, ErrInvalidMeasurement) {
		t.Fatalf("NaN width: error = %v", err)
	}
	if _, err := FitText([]string{"x"}, FitBox{Width: 100, Height: 100}, TextStyle{}, nil, FitOptions{InitialSize: 10}); err == nil {
		t.Fatal("nil measurer: expected error")
	}
}

// TestFitMultiLineInput: explicit input lines wrap independently and keep
// their order.
func TestFitMultiLineInput(t *testing.T) {
	fit := mustFit(t, []string{"first line", "second line"}, FitBox{Width: 200, Height: 200}, courier, FitOptions{InitialSize: 10})
	if len(fit.Lines) != 2 || fit.Lines[0] != "first line" || fit.Lines[1] != "second line" {
		t.Fatalf("lines = %q", fit.Lines)
	}
}
