// Package layout performs the recursive sizing pass over the box tree:
// top-down width propagation, bottom-up height aggregation. The input
// tree is never mutated; computed geometry lives in a parallel
// MeasuredBox tree.
package layout

import (
	"github.com/azbo/typeset/internal/text"
	"github.com/azbo/typeset/pkg/doc"
)

// Offset positions a child relative to its parent box's origin.
type Offset struct {
	X, Y float64
}

// Marker is a resolved list item marker glyph.
type Marker struct {
	Text     string
	Font     doc.FontSpec
	Color    doc.Color
	Baseline float64
}

// MeasuredBox is the sized result of laying out one node. Width never
// exceeds the width offered by the parent; height may exceed the
// offered height, which is the overflow signal pagination consumes.
type MeasuredBox struct {
	Node   doc.Node
	Width  float64
	Height float64

	// Children and Offsets are parallel: Offsets[i] positions
	// Children[i] relative to this box.
	Children []*MeasuredBox
	Offsets  []Offset

	// Lines is set for TextRun nodes.
	Lines []text.Line

	// Table is set for Table nodes.
	Table *MeasuredTable

	// Markers is set for List nodes, one per item, parallel to Children.
	Markers []Marker
}

// MeasuredTable is the resolved geometry of a table: negotiated column
// widths and per-row cell boxes.
type MeasuredTable struct {
	ColWidths   []float64
	CellPadding float64
	Rows        []MeasuredRow
}

// MeasuredRow is one table row. Height is the max cell content height
// plus padding; every cell in the row is drawn at this height.
type MeasuredRow struct {
	Header bool
	Height float64
	Cells  []*MeasuredBox
}

// IsPageBreak reports whether the box is a forced page break.
func (b *MeasuredBox) IsPageBreak() bool {
	_, ok := b.Node.(doc.PageBreak)
	return ok
}
