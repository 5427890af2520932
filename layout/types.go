package layout

// This file defines the computed layout results shared by composition,
// packing, the debug JSON output and external renderers.

// Color uses 0-255 RGB components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Black is the fallback text color.
var Black = Color{R: 0, G: 0, B: 0}

// FittedText is the result of wrapping and scaling text into a bounding box.
type FittedText struct {
	Lines     []string `json:"lines"`
	Size      float64  `json:"size"` // chosen font size in points
	Truncated bool     `json:"truncated"`
}

// DrawInstruction places one styled text run inside a label. Coordinates are
// label-local points with the origin at the label's bottom-left corner; Y is
// the text baseline.
type DrawInstruction struct {
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Text  string    `json:"text"`
	Size  float64   `json:"size"`
	Style TextStyle `json:"style"`
}

// Rect is an axis-aligned rectangle in points.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// LabelLayout holds the ordered draw instructions and border rectangle for
// one label, ready for a renderer.
type LabelLayout struct {
	Width           float64           `json:"width"`  // label width in points
	Height          float64           `json:"height"` // label height in points
	Border          Rect              `json:"border"`
	BorderThickness float64           `json:"borderThickness"` // points
	Instructions    []DrawInstruction `json:"instructions"`
	Truncated       bool              `json:"truncated,omitempty"`
}

// Placement assigns one label index to a page cell.
type Placement struct {
	Index int `json:"index"` // global label index
	Page  int `json:"page"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

// LabelResult pairs a composed label with its per-label error. A failed
// label never aborts the remainder of a batch.
type LabelResult struct {
	Layout *LabelLayout `json:"layout,omitempty"`
	Err    error        `json:"-"`
	Error  string       `json:"error,omitempty"` // JSON mirror of Err
}

// PlanResult is the full output handed to an external renderer: one entry
// per label plus its page placement.
type PlanResult struct {
	Labels     []LabelResult `json:"labels"`
	Placements []Placement   `json:"placements"`
	Grid       PageGrid      `json:"grid"`
	Cols       int           `json:"cols"`
	Rows       int           `json:"rows"`
	Pages      int           `json:"pages"`
}
