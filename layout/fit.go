package layout

import (
	"fmt"
	"math"
	"strings"
)

// Text fitter: wraps and scales text to fit a bounding box without overflow,
// measuring against an injected FontMeasurer. The loop is bounded by
// (initial - floor) / step iterations.

const fitEpsilon = 1e-9

// FitBox is the available text area in points, already reduced by border
// and padding.
type FitBox struct {
	Width  float64
	Height float64
}

// FitOptions are the tunables of one fitting run.
type FitOptions struct {
	InitialSize float64 // starting font size in points
	MinSize     float64 // floor; zero means DefaultMinFontSize
	Step        float64 // decrement; zero means DefaultSizeStep
	LineHeight  float64 // ratio; zero means DefaultLineHeightRatio
}

func (o FitOptions) withDefaults() FitOptions {
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinFontSize
	}
	if o.Step <= 0 {
		o.Step = DefaultSizeStep
	}
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeightRatio
	}
	return o
}

// FitText wraps the given lines into the box, stepping the font size down
// from InitialSize until the wrapped block fits. If even the floor size
// does not fit, the line sequence is cut to the number of lines the box can
// hold and Truncated is set. Word order is preserved; empty input yields
// zero lines.
func FitText(lines []string, box FitBox, style TextStyle, m FontMeasurer, opts FitOptions) (FittedText, error) {
	if m == nil {
		return FittedText{}, fmt.Errorf("layout: missing font measurer")
	}
	opts = opts.withDefaults()
	if err := checkFinite(box.Width, "fit box width"); err != nil {
		return FittedText{}, err
	}
	if err := checkFinite(box.Height, "fit box height"); err != nil {
		return FittedText{}, err
	}
	if opts.InitialSize <= 0 || math.IsNaN(opts.InitialSize) || math.IsInf(opts.InitialSize, 0) {
		return FittedText{}, fmt.Errorf("%w: initial font size %v", ErrInvalidMeasurement, opts.InitialSize)
	}

	if !hasContent(lines) {
		return FittedText{Size: opts.InitialSize}, nil
	}

	for size := opts.InitialSize; size >= opts.MinSize-fitEpsilon; size -= opts.Step {
		wrapped := wrapAll(lines, box.Width, style, size, m)
		if blockHeight(len(wrapped), size, opts.LineHeight) <= box.Height+fitEpsilon {
			return FittedText{Lines: wrapped, Size: size}, nil
		}
	}

	// Nothing fit above the floor. Re-wrap once at the floor size and cut
	// the line sequence to what the box can hold.
	wrapped := wrapAll(lines, box.Width, style, opts.MinSize, m)
	maxLines := int(math.Floor(box.Height / (opts.MinSize * opts.LineHeight)))
	if maxLines < 0 {
		maxLines = 0
	}
	if len(wrapped) <= maxLines {
		return FittedText{Lines: wrapped, Size: opts.MinSize}, nil
	}
	return FittedText{Lines: wrapped[:maxLines], Size: opts.MinSize, Truncated: true}, nil
}

func checkFinite(v float64, what string) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %v", ErrInvalidMeasurement, what, v)
	}
	return nil
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if len(strings.Fields(l)) > 0 {
			return true
		}
	}
	return false
}

func blockHeight(lineCount int, size, ratio float64) float64 {
	return float64(lineCount) * size * ratio
}

// wrapAll wraps every input line at the given size, concatenating the
// results in order.
func wrapAll(lines []string, width float64, style TextStyle, size float64, m FontMeasurer) []string {
	var out []string
	for _, line := range lines {
		out = append(out, wrapLine(line, width, style, size, m)...)
	}
	return out
}

// wrapLine greedily packs words into lines whose rendered width stays
// within the limit. A single word wider than the limit is hard-broken at
// the longest character prefix that fits.
func wrapLine(text string, width float64, style TextStyle, size float64, m FontMeasurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, word := range words {
		if m.TextWidth(word, style, size) > width+fitEpsilon {
			flush()
			lines = append(lines, breakWord(word, width, style, size, m)...)
			continue
		}
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}
		if m.TextWidth(candidate, style, size) <= width+fitEpsilon {
			current = append(current, word)
			continue
		}
		flush()
		current = append(current, word)
	}
	flush()
	return lines
}

// breakWord splits an oversized word into chunks, each the longest rune
// prefix that fits. A chunk always takes at least one rune so the loop
// advances even when a single rune overflows the limit.
func breakWord(word string, width float64, style TextStyle, size float64, m FontMeasurer) []string {
	var chunks []string
	runes := []rune(word)
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && m.TextWidth(string(runes[:n+1]), style, size) <= width+fitEpsilon {
			n++
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
