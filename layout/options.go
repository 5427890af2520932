package layout

// FontMeasurer reports the rendered width, in points, of a text run for a
// styled face at a given font size. Implementations must be deterministic;
// fitting results are only meaningful relative to the measurer used.
type FontMeasurer interface {
	TextWidth(text string, style TextStyle, size float64) float64
}

// Fitting defaults: 1.2 line-height ratio, 6pt floor, 0.5pt decrement.
const (
	DefaultLineHeightRatio = 1.2
	DefaultMinFontSize     = 6.0
	DefaultSizeStep        = 0.5
)

// ComposeOptions configures the dependencies and tunables of label
// composition.
type ComposeOptions struct {
	Measurer FontMeasurer

	// MinFontSize is the floor below which text is truncated instead of
	// shrunk further. Zero means DefaultMinFontSize.
	MinFontSize float64

	// SizeStep is the decrement between fitting attempts. Zero means
	// DefaultSizeStep.
	SizeStep float64

	// LineHeight is the line-height ratio. Zero means
	// DefaultLineHeightRatio.
	LineHeight float64

	// FieldGap is extra vertical spacing between stacked fields, in
	// points. Defaults to none.
	FieldGap float64
}

func (o ComposeOptions) withDefaults() ComposeOptions {
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.SizeStep <= 0 {
		o.SizeStep = DefaultSizeStep
	}
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeightRatio
	}
	return o
}
