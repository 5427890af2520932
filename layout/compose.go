package layout

import (
	"fmt"
	"math"
	"strings"
)

// Label layout composition: orders fields, resolves their styles, fits each
// text block and stacks the results into absolute draw positions within one
// label. Coordinates are label-local points, origin at the bottom-left.

// ComposeLabel computes the layout for a single label. Empty content is
// valid and produces a border-only layout.
func ComposeLabel(content LabelContent, style LabelStyle, opts ComposeOptions) (*LabelLayout, error) {
	opts = opts.withDefaults()
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: missing font measurer")
	}
	box, err := interiorBox(style)
	if err != nil {
		return nil, err
	}

	ll := &LabelLayout{
		Width:           box.w,
		Height:          box.h,
		Border:          Rect{X: 0, Y: 0, W: box.w, H: box.h},
		BorderThickness: style.BorderThickness,
	}

	switch content.Kind {
	case KindFreeText:
		err = composeFreeText(ll, content.Text, style, box, opts)
	case KindFields:
		err = composeFields(ll, content.Fields, style, box, opts)
	default:
		err = fmt.Errorf("layout: unknown content kind %d", content.Kind)
	}
	if err != nil {
		return nil, err
	}
	return ll, nil
}

// interior describes the text area of a label after border and padding.
type interior struct {
	w, h   float64 // full label size in points
	inset  float64 // border + padding, per side
	iw, ih float64 // interior text box
}

func interiorBox(style LabelStyle) (interior, error) {
	if err := style.Width.Check(); err != nil {
		return interior{}, fmt.Errorf("label width: %w", err)
	}
	if err := style.Height.Check(); err != nil {
		return interior{}, fmt.Errorf("label height: %w", err)
	}
	if style.BorderThickness < 0 || math.IsNaN(style.BorderThickness) || math.IsInf(style.BorderThickness, 0) {
		return interior{}, fmt.Errorf("%w: border thickness %v", ErrInvalidMeasurement, style.BorderThickness)
	}
	if style.PaddingPercent < 0 || math.IsNaN(style.PaddingPercent) {
		return interior{}, fmt.Errorf("%w: padding percent %v", ErrInvalidMeasurement, style.PaddingPercent)
	}

	w, h := style.Width.ToPT(), style.Height.ToPT()
	pad := style.PaddingPercent * math.Min(w, h)
	inset := style.BorderThickness + pad
	iw, ih := w-2*inset, h-2*inset
	if iw <= 0 || ih <= 0 {
		return interior{}, fmt.Errorf("%w: border and padding leave no interior (%.2fpt x %.2fpt)", ErrInvalidMeasurement, iw, ih)
	}
	return interior{w: w, h: h, inset: inset, iw: iw, ih: ih}, nil
}

func fitOptions(initial float64, opts ComposeOptions) FitOptions {
	return FitOptions{
		InitialSize: initial,
		MinSize:     opts.MinFontSize,
		Step:        opts.SizeStep,
		LineHeight:  opts.LineHeight,
	}
}

// composeFreeText fits the whole text into the interior box once, using the
// label's default value style, and centers each line horizontally.
func composeFreeText(ll *LabelLayout, text string, style LabelStyle, box interior, opts ComposeOptions) error {
	fs, err := style.resolveDefault()
	if err != nil {
		return err
	}
	ts := fs.Value

	fit, err := FitText(strings.Split(text, "\n"), FitBox{Width: box.iw, Height: box.ih}, ts, opts.Measurer, fitOptions(ts.Size, opts))
	if err != nil {
		return err
	}
	ll.Truncated = fit.Truncated

	y := box.h - box.inset - fit.Size
	for _, line := range fit.Lines {
		lineWidth := opts.Measurer.TextWidth(line, ts, fit.Size)
		ll.Instructions = append(ll.Instructions, DrawInstruction{
			X:     box.inset + (box.iw-lineWidth)/2,
			Y:     y,
			Text:  line,
			Size:  fit.Size,
			Style: ts,
		})
		y -= fit.Size * opts.LineHeight
	}
	return nil
}

// visibleField is one field that survived the empty-value filter, with its
// resolved style and composed line text.
type visibleField struct {
	style  FieldStyle
	prefix string // name plus separator; name alone for empty values
	text   string
	size   float64 // starting font size for fitting
}

// composeFields resolves, fits and stacks the fields top to bottom.
//
// Overflow policy: all fields are first fit against the full interior
// height at their resolved sizes. If the stacked total would overflow the
// interior, every field is refit once at a uniformly reduced size before
// placement; residual overflow then degrades into the fitter's own floor
// and truncation behavior on the trailing fields.
func composeFields(ll *LabelLayout, fields []Field, style LabelStyle, box interior, opts ComposeOptions) error {
	visible, err := visibleFields(fields, style)
	if err != nil {
		return err
	}
	if len(visible) == 0 {
		return nil
	}

	full := FitBox{Width: box.iw, Height: box.ih}
	fits := make([]FittedText, len(visible))
	total := 0.0
	for i, f := range visible {
		fit, err := FitText([]string{f.text}, full, f.style.Name, opts.Measurer, fitOptions(f.size, opts))
		if err != nil {
			return err
		}
		fits[i] = fit
		total += blockHeight(len(fit.Lines), fit.Size, opts.LineHeight)
	}

	gaps := opts.FieldGap * float64(len(visible)-1)
	if total+gaps > box.ih+fitEpsilon && total > 0 {
		shrink := (box.ih - gaps) / total
		if shrink < 0 {
			shrink = 0
		}
		for i := range visible {
			size := math.Max(opts.MinFontSize, fits[i].Size*shrink)
			visible[i].size = size
		}
	} else {
		for i := range visible {
			visible[i].size = fits[i].Size
		}
	}

	top := box.h - box.inset
	remaining := box.ih
	for _, f := range visible {
		if remaining < 0 {
			remaining = 0
		}
		fit, err := FitText([]string{f.text}, FitBox{Width: box.iw, Height: remaining}, f.style.Name, opts.Measurer, fitOptions(f.size, opts))
		if err != nil {
			return err
		}
		if fit.Truncated {
			ll.Truncated = true
		}
		if len(fit.Lines) == 0 {
			continue
		}

		y := top - fit.Size
		for _, run := range fieldRuns(fit.Lines, f.prefix) {
			if run.name != "" {
				ll.Instructions = append(ll.Instructions, DrawInstruction{
					X:     box.inset,
					Y:     y,
					Text:  run.name,
					Size:  fit.Size,
					Style: f.style.Name,
				})
			}
			if run.value != "" {
				x := box.inset
				if run.name != "" {
					measured := run.name
					if run.spaced {
						measured += " "
					}
					x += opts.Measurer.TextWidth(measured, f.style.Name, fit.Size)
				}
				ll.Instructions = append(ll.Instructions, DrawInstruction{
					X:     x,
					Y:     y,
					Text:  run.value,
					Size:  fit.Size,
					Style: f.style.Value,
				})
			}
			y -= fit.Size * opts.LineHeight
		}

		consumed := blockHeight(len(fit.Lines), fit.Size, opts.LineHeight)
		top -= consumed + opts.FieldGap
		remaining -= consumed + opts.FieldGap
	}
	return nil
}

// visibleFields resolves styles and drops fields hidden by the
// show-if-empty flag. A field with an empty shown value renders its name
// alone, without the separator.
func visibleFields(fields []Field, style LabelStyle) ([]visibleField, error) {
	var visible []visibleField
	for _, f := range fields {
		fs, err := style.ResolveFieldStyle(f.Name)
		if err != nil {
			return nil, err
		}
		if f.Value == "" && !fs.ShowIfEmpty {
			continue
		}
		vf := visibleField{
			style: fs,
			size:  math.Max(fs.Name.Size, fs.Value.Size),
		}
		if f.Value == "" {
			vf.prefix = f.Name
			vf.text = f.Name
		} else {
			vf.prefix = f.Name + fs.Separator
			vf.text = vf.prefix + f.Value
		}
		visible = append(visible, vf)
	}
	return visible, nil
}

// lineRun is the styled split of one wrapped line: the part still covered
// by the field-name prefix and the remainder in the value style. spaced
// records whether a space separated the two in the wrapped text.
type lineRun struct {
	name   string
	value  string
	spaced bool
}

// fieldRuns assigns the leading prefix characters of the wrapped lines to
// the name style. Wrapping collapses runs of whitespace, so the prefix is
// matched in its collapsed form; it may span lines when the box is narrow.
func fieldRuns(lines []string, prefix string) []lineRun {
	rem := []rune(strings.Join(strings.Fields(prefix), " "))
	runs := make([]lineRun, 0, len(lines))
	for _, line := range lines {
		if len(rem) == 0 {
			runs = append(runs, lineRun{value: line})
			continue
		}
		chars := []rune(line)
		n := len(rem)
		if n > len(chars) {
			n = len(chars)
		}
		rem = rem[n:]
		run := lineRun{name: string(chars[:n])}
		rest := string(chars[n:])
		if trimmed := strings.TrimLeft(rest, " "); trimmed != rest {
			run.spaced = true
			rest = trimmed
		}
		run.value = rest
		runs = append(runs, run)
	}
	return runs
}

// ComposeBatch composes each label independently. One label's error never
// aborts the remaining labels.
func ComposeBatch(contents []LabelContent, style LabelStyle, opts ComposeOptions) []LabelResult {
	results := make([]LabelResult, len(contents))
	for i, c := range contents {
		layout, err := ComposeLabel(c, style, opts)
		results[i] = LabelResult{Layout: layout, Err: err}
		if err != nil {
			results[i].Error = err.Error()
		}
	}
	return results
}

// Plan composes a batch and packs it onto pages. Grid label dimensions
// default to the label style's dimensions when left zero. Packing errors
// are fatal to the whole batch.
func Plan(contents []LabelContent, style LabelStyle, grid PageGrid, opts ComposeOptions) (*PlanResult, error) {
	if grid.LabelWidth == 0 && grid.LabelHeight == 0 {
		grid.LabelWidth = style.Width.ToPT()
		grid.LabelHeight = style.Height.ToPT()
	}

	cols, rows, err := grid.Dimensions()
	if err != nil {
		return nil, err
	}
	placements, err := PackLabels(grid, len(contents), 0)
	if err != nil {
		return nil, err
	}

	res := &PlanResult{
		Labels:     ComposeBatch(contents, style, opts),
		Placements: placements,
		Grid:       grid,
		Cols:       cols,
		Rows:       rows,
	}
	if n := len(placements); n > 0 {
		res.Pages = placements[n-1].Page + 1
	}
	return res, nil
}
