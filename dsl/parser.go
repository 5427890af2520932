// Package dsl parses the label style language into layout style records.
// Attributes a style file leaves out stay unset in the lowered patches, so
// the resolver cascade remains visible end to end.
//
// Example:
//
//	label "drawer-3x2" {
//	  size: 2.5in x 1.75in
//	  border: 1.5pt
//	  padding: 5%
//	  default {
//	    name { font: mono size: 10pt bold: true }
//	    value { font: mono size: 10pt }
//	    separator: ": "
//	  }
//	  field Species {
//	    value { italic: true }
//	    show-empty: false
//	  }
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/lithotype/lithotype/layout"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|cm|in|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	styleParser = participle.MustBuild[StyleDoc](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// StyleDoc is the root AST node of a label style file.
type StyleDoc struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"Newline* 'label' ( @String | @Ident )"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is one top-level statement inside a label block.
type Entry struct {
	Size    *SizeSpec   `parser:"  'size' ':' @@"`
	Border  *LengthLit  `parser:"| 'border' ':' @Number"`
	Padding *PercentLit `parser:"| 'padding' ':' @Number"`
	Default *FieldBlock `parser:"| 'default' @@"`
	Field   *FieldEntry `parser:"| @@"`
}

// SizeSpec captures `size: <width> x <height>`.
type SizeSpec struct {
	Width  LengthLit `parser:"@Number"`
	Height LengthLit `parser:"'x' @Number"`
}

// FieldEntry names a per-field override block.
type FieldEntry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  StringLiteral  `parser:"'field' ( @String | @Ident )"`
	Block *FieldBlock    `parser:"@@"`
}

// FieldBlock groups field-level statements.
type FieldBlock struct {
	Items []*FieldItem `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// FieldItem is one statement inside a default or field block.
type FieldItem struct {
	Name      *TextBlock     `parser:"  'name' @@"`
	Value     *TextBlock     `parser:"| 'value' @@"`
	Separator *StringLiteral `parser:"| 'separator' ':' @String"`
	ShowEmpty *BoolLit       `parser:"| 'show-empty' ':' @Ident"`
}

// TextBlock groups text style statements.
type TextBlock struct {
	Items []*TextItem `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// TextItem is one text style attribute.
type TextItem struct {
	Font   *string    `parser:"  'font' ':' @Ident"`
	Size   *LengthLit `parser:"| 'size' ':' @Number"`
	Bold   *BoolLit   `parser:"| 'bold' ':' @Ident"`
	Italic *BoolLit   `parser:"| 'italic' ':' @Ident"`
	Color  *ColorLit  `parser:"| 'color' ':' @Color"`
}

// StringLiteral unquotes Go-style strings on capture. Bare idents are kept
// as-is so names can be written without quotes.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires a value")
	}
	val := values[0]
	if strings.HasPrefix(val, `"`) {
		unquoted, err := strconv.Unquote(val)
		if err != nil {
			return err
		}
		val = unquoted
	}
	*s = StringLiteral(val)
	return nil
}

// LengthLit captures a number with a length unit, defaulting to points.
type LengthLit layout.Length

// Capture implements participle.Capture.
func (l *LengthLit) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("length capture requires a value")
	}
	if strings.HasSuffix(values[0], "%") {
		return fmt.Errorf("unexpected percentage %q, expected a length", values[0])
	}
	parsed, err := layout.ParseLength(values[0])
	if err != nil {
		return err
	}
	*l = LengthLit(parsed)
	return nil
}

// PercentLit captures `5%` as the fraction 0.05.
type PercentLit float64

// Capture implements participle.Capture.
func (p *PercentLit) Capture(values []string) error {
	if len(values) == 0 || !strings.HasSuffix(values[0], "%") {
		return fmt.Errorf("expected a percentage, got %q", strings.Join(values, " "))
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(values[0], "%"), 64)
	if err != nil {
		return err
	}
	*p = PercentLit(f / 100)
	return nil
}

// BoolLit captures the idents true and false.
type BoolLit bool

// Capture implements participle.Capture.
func (b *BoolLit) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("bool capture requires a value")
	}
	switch values[0] {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return fmt.Errorf("expected true or false, got %q", values[0])
	}
	return nil
}

// ColorLit captures #RGB or #RRGGBB hex colors.
type ColorLit layout.Color

// Capture implements participle.Capture.
func (c *ColorLit) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("color capture requires a value")
	}
	col, err := parseHexColor(values[0])
	if err != nil {
		return err
	}
	*c = ColorLit(col)
	return nil
}

func parseHexColor(s string) (layout.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return layout.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return layout.Color{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
	}, nil
}

// Parse parses a label style document from an io.Reader.
func Parse(r io.Reader) (*StyleDoc, error) {
	return styleParser.Parse("", r)
}

// ParseString parses a label style document from a string.
func ParseString(input string) (*StyleDoc, error) {
	return styleParser.ParseString("", input)
}
