package layout

import (
	"errors"
	"fmt"
	"math"
)

// Page packer: a deterministic row-major grid assignment of labels to
// pages. Placement is a pure function of the grid dimensions and the global
// label index, so batches can be sharded as long as each shard passes its
// true starting index.

// ErrLabelTooLargeForPage reports label dimensions exceeding the page.
var ErrLabelTooLargeForPage = errors.New("label too large for page")

// PageGrid describes the packing geometry. All values are points; spacing
// is the gap between adjacent labels.
type PageGrid struct {
	LabelWidth  float64 `json:"labelWidth"`
	LabelHeight float64 `json:"labelHeight"`
	Spacing     float64 `json:"spacing"`
	PageWidth   float64 `json:"pageWidth"`
	PageHeight  float64 `json:"pageHeight"`
}

// Dimensions returns the number of grid columns and rows per page.
func (g PageGrid) Dimensions() (cols, rows int, err error) {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"label width", g.LabelWidth},
		{"label height", g.LabelHeight},
		{"page width", g.PageWidth},
		{"page height", g.PageHeight},
	} {
		if err := Points(d.value).Check(); err != nil {
			return 0, 0, fmt.Errorf("%s: %w", d.name, err)
		}
	}
	if g.Spacing < 0 || math.IsNaN(g.Spacing) || math.IsInf(g.Spacing, 0) {
		return 0, 0, fmt.Errorf("%w: spacing %v", ErrInvalidMeasurement, g.Spacing)
	}
	if g.LabelWidth > g.PageWidth || g.LabelHeight > g.PageHeight {
		return 0, 0, fmt.Errorf("%w: %.2fpt x %.2fpt label on %.2fpt x %.2fpt page",
			ErrLabelTooLargeForPage, g.LabelWidth, g.LabelHeight, g.PageWidth, g.PageHeight)
	}

	cols = int(math.Floor((g.PageWidth + g.Spacing) / (g.LabelWidth + g.Spacing)))
	rows = int(math.Floor((g.PageHeight + g.Spacing) / (g.LabelHeight + g.Spacing)))
	return cols, rows, nil
}

// Capacity returns the number of labels per page.
func (g PageGrid) Capacity() (int, error) {
	cols, rows, err := g.Dimensions()
	if err != nil {
		return 0, err
	}
	return cols * rows, nil
}

// CellOrigin returns the top-left offset of a grid cell from the page's
// top-left corner, for a renderer to translate placements into page
// coordinates.
func (g PageGrid) CellOrigin(row, col int) (x, y float64) {
	return float64(col) * (g.LabelWidth + g.Spacing), float64(row) * (g.LabelHeight + g.Spacing)
}

// PackLabels assigns count labels, starting at the given global index, to
// page cells. Fill order is row-major: left to right, top to bottom,
// matching the caller's content order.
func PackLabels(g PageGrid, count, startIndex int) ([]Placement, error) {
	if count < 0 {
		return nil, fmt.Errorf("layout: negative label count %d", count)
	}
	if startIndex < 0 {
		return nil, fmt.Errorf("layout: negative start index %d", startIndex)
	}
	cols, rows, err := g.Dimensions()
	if err != nil {
		return nil, err
	}
	capacity := cols * rows

	placements := make([]Placement, count)
	for k := 0; k < count; k++ {
		i := startIndex + k
		pos := i % capacity
		placements[k] = Placement{
			Index: i,
			Page:  i / capacity,
			Row:   pos / cols,
			Col:   pos % cols,
		}
	}
	return placements, nil
}
