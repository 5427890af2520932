package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Style types and the per-field resolution cascade. Resolution merges three
// tiers attribute by attribute, highest priority first: explicit per-field
// override, the label's default field style, then the built-in fallback.
// The result is always a fully populated FieldStyle.

// ErrUnresolvableStyle reports a style that cannot be resolved to a known
// font family. It is fatal to the affected label only.
var ErrUnresolvableStyle = errors.New("unresolvable style")

// FontFamily enumerates the supported font families.
type FontFamily int

const (
	FamilyMono FontFamily = iota
	FamilySans
	FamilySerif
)

// String returns the family keyword used by the style DSL.
func (f FontFamily) String() string {
	switch f {
	case FamilyMono:
		return "mono"
	case FamilySans:
		return "sans"
	case FamilySerif:
		return "serif"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Valid reports whether the family is a member of the enumerated set.
func (f FontFamily) Valid() bool {
	return f == FamilyMono || f == FamilySans || f == FamilySerif
}

// ParseFontFamily maps a family keyword to its enum value.
func ParseFontFamily(name string) (FontFamily, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono", "monospace":
		return FamilyMono, nil
	case "sans", "sans-serif":
		return FamilySans, nil
	case "serif":
		return FamilySerif, nil
	default:
		return 0, fmt.Errorf("%w: unknown font family %q", ErrUnresolvableStyle, name)
	}
}

// TextStyle is a fully populated text style.
type TextStyle struct {
	Family FontFamily `json:"family"`
	Size   float64    `json:"size"` // points
	Bold   bool       `json:"bold"`
	Italic bool       `json:"italic"`
	Color  Color      `json:"color"`
}

// FieldStyle is the fully resolved style for one field.
type FieldStyle struct {
	Name        TextStyle `json:"name"`
	Value       TextStyle `json:"value"`
	Separator   string    `json:"separator"`
	ShowIfEmpty bool      `json:"showIfEmpty"`
}

// TextStylePatch is a partial text style. Nil attributes inherit from the
// next tier down in the cascade.
type TextStylePatch struct {
	Family *FontFamily `json:"family,omitempty"`
	Size   *float64    `json:"size,omitempty"`
	Bold   *bool       `json:"bold,omitempty"`
	Italic *bool       `json:"italic,omitempty"`
	Color  *Color      `json:"color,omitempty"`
}

func (p TextStylePatch) over(base TextStyle) TextStyle {
	out := base
	if p.Family != nil {
		out.Family = *p.Family
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	if p.Bold != nil {
		out.Bold = *p.Bold
	}
	if p.Italic != nil {
		out.Italic = *p.Italic
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	return out
}

// FieldStylePatch is a partial field style used for label defaults and
// per-field overrides.
type FieldStylePatch struct {
	Name        TextStylePatch `json:"name,omitempty"`
	Value       TextStylePatch `json:"value,omitempty"`
	Separator   *string        `json:"separator,omitempty"`
	ShowIfEmpty *bool          `json:"showIfEmpty,omitempty"`
}

func (p FieldStylePatch) over(base FieldStyle) FieldStyle {
	out := base
	out.Name = p.Name.over(base.Name)
	out.Value = p.Value.over(base.Value)
	if p.Separator != nil {
		out.Separator = *p.Separator
	}
	if p.ShowIfEmpty != nil {
		out.ShowIfEmpty = *p.ShowIfEmpty
	}
	return out
}

// LabelStyle is the complete styling configuration for a label.
type LabelStyle struct {
	Width           Length                     `json:"width"`
	Height          Length                     `json:"height"`
	BorderThickness float64                    `json:"borderThickness"` // points
	PaddingPercent  float64                    `json:"paddingPercent"`  // of the smaller dimension
	Default         FieldStylePatch            `json:"default"`
	Overrides       map[string]FieldStylePatch `json:"overrides,omitempty"`
}

// Fallback defaults, matching a plain readable label: fixed-pitch 10pt,
// black, bold field names, ": " separator, empty fields shown.
const (
	fallbackFontSize  = 10.0
	DefaultSeparator  = ": "
	DefaultBorderPT   = 1.5
	DefaultPaddingPct = 0.05
)

// FallbackFieldStyle returns the built-in lowest tier of the cascade.
func FallbackFieldStyle() FieldStyle {
	return FieldStyle{
		Name: TextStyle{
			Family: FamilyMono,
			Size:   fallbackFontSize,
			Bold:   true,
			Color:  Black,
		},
		Value: TextStyle{
			Family: FamilyMono,
			Size:   fallbackFontSize,
			Color:  Black,
		},
		Separator:   DefaultSeparator,
		ShowIfEmpty: true,
	}
}

// ResolveFieldStyle resolves the style for fieldName through the cascade.
// Every attribute resolves independently, so a partial override replaces
// only the attributes it sets. Same inputs always yield the same result.
func (s LabelStyle) ResolveFieldStyle(fieldName string) (FieldStyle, error) {
	resolved := s.Default.over(FallbackFieldStyle())
	if ov, ok := s.Overrides[fieldName]; ok {
		resolved = ov.over(resolved)
	}
	if !resolved.Name.Family.Valid() {
		return FieldStyle{}, fmt.Errorf("%w: field %q name style family %s", ErrUnresolvableStyle, fieldName, resolved.Name.Family)
	}
	if !resolved.Value.Family.Valid() {
		return FieldStyle{}, fmt.Errorf("%w: field %q value style family %s", ErrUnresolvableStyle, fieldName, resolved.Value.Family)
	}
	return resolved, nil
}

// resolveDefault resolves the label-level default with no override applied.
// Free-text labels use its value style.
func (s LabelStyle) resolveDefault() (FieldStyle, error) {
	resolved := s.Default.over(FallbackFieldStyle())
	if !resolved.Value.Family.Valid() {
		return FieldStyle{}, fmt.Errorf("%w: default value style family %s", ErrUnresolvableStyle, resolved.Value.Family)
	}
	return resolved, nil
}
