package dsl

import (
	"fmt"

	"github.com/lithotype/lithotype/layout"
)

// Lowering from the parsed AST to layout style records. Only attributes the
// document actually sets are populated in the patches; everything else
// inherits through the resolver cascade.

// LabelStyle lowers the document into a layout.LabelStyle. Dimensions,
// border and padding fall back to the stock drawer-label defaults when the
// document leaves them out.
func (d *StyleDoc) LabelStyle() (layout.LabelStyle, error) {
	ls := layout.LabelStyle{
		Width:           layout.Inches(3.25),
		Height:          layout.Inches(2.25),
		BorderThickness: layout.DefaultBorderPT,
		PaddingPercent:  layout.DefaultPaddingPct,
		Overrides:       map[string]layout.FieldStylePatch{},
	}

	for _, e := range d.Entries {
		switch {
		case e.Size != nil:
			ls.Width = layout.Length(e.Size.Width)
			ls.Height = layout.Length(e.Size.Height)
		case e.Border != nil:
			ls.BorderThickness = layout.Length(*e.Border).ToPT()
		case e.Padding != nil:
			ls.PaddingPercent = float64(*e.Padding)
		case e.Default != nil:
			patch, err := fieldPatch(e.Default)
			if err != nil {
				return layout.LabelStyle{}, fmt.Errorf("default block: %w", err)
			}
			ls.Default = patch
		case e.Field != nil:
			name := string(e.Field.Name)
			if _, dup := ls.Overrides[name]; dup {
				return layout.LabelStyle{}, fmt.Errorf("%s: duplicate field block %q", e.Field.Pos, name)
			}
			patch, err := fieldPatch(e.Field.Block)
			if err != nil {
				return layout.LabelStyle{}, fmt.Errorf("field %q: %w", name, err)
			}
			ls.Overrides[name] = patch
		}
	}

	if err := ls.Width.Check(); err != nil {
		return layout.LabelStyle{}, fmt.Errorf("label %q: %w", d.Name, err)
	}
	if err := ls.Height.Check(); err != nil {
		return layout.LabelStyle{}, fmt.Errorf("label %q: %w", d.Name, err)
	}
	return ls, nil
}

func fieldPatch(block *FieldBlock) (layout.FieldStylePatch, error) {
	var patch layout.FieldStylePatch
	if block == nil {
		return patch, nil
	}
	for _, item := range block.Items {
		switch {
		case item.Name != nil:
			tp, err := textPatch(item.Name)
			if err != nil {
				return patch, err
			}
			patch.Name = tp
		case item.Value != nil:
			tp, err := textPatch(item.Value)
			if err != nil {
				return patch, err
			}
			patch.Value = tp
		case item.Separator != nil:
			sep := string(*item.Separator)
			patch.Separator = &sep
		case item.ShowEmpty != nil:
			show := bool(*item.ShowEmpty)
			patch.ShowIfEmpty = &show
		}
	}
	return patch, nil
}

func textPatch(block *TextBlock) (layout.TextStylePatch, error) {
	var patch layout.TextStylePatch
	for _, item := range block.Items {
		switch {
		case item.Font != nil:
			fam, err := layout.ParseFontFamily(*item.Font)
			if err != nil {
				return patch, err
			}
			patch.Family = &fam
		case item.Size != nil:
			size := layout.Length(*item.Size).ToPT()
			if size <= 0 {
				return patch, fmt.Errorf("%w: font size %vpt", layout.ErrInvalidMeasurement, size)
			}
			patch.Size = &size
		case item.Bold != nil:
			b := bool(*item.Bold)
			patch.Bold = &b
		case item.Italic != nil:
			i := bool(*item.Italic)
			patch.Italic = &i
		case item.Color != nil:
			col := layout.Color(*item.Color)
			patch.Color = &col
		}
	}
	return patch, nil
}
