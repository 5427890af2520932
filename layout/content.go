package layout

// LabelContent is either a single free-text block or an ordered sequence of
// field/value pairs. The two variants are mutually exclusive.

// ContentKind discriminates the LabelContent variants.
type ContentKind int

const (
	KindFields ContentKind = iota
	KindFreeText
)

// Field is one named piece of label content.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LabelContent carries the content of one label.
type LabelContent struct {
	Kind   ContentKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Fields []Field     `json:"fields,omitempty"`
}

// FreeText builds a free-text label content.
func FreeText(text string) LabelContent {
	return LabelContent{Kind: KindFreeText, Text: text}
}

// Fielded builds a fielded label content preserving field order.
func Fielded(fields ...Field) LabelContent {
	return LabelContent{Kind: KindFields, Fields: fields}
}
