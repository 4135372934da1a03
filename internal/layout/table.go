package layout

import (
	"fmt"

	"github.com/azbo/typeset/pkg/doc"
)

// measureTable negotiates column widths and resolves row heights.
//
// Width negotiation: fixed columns claim their widths first; if their
// sum exceeds the available width every fixed column is shrunk
// proportionally so the sum fits exactly; an over-committed table
// squeezes, it never errors. The
// remaining width is divided equally among auto columns; a table with
// no auto columns leaves the remainder as a right-aligned gap.
func (e *Engine) measureTable(n doc.Table, availW, availH float64) (*MeasuredBox, error) {
	colWidths := e.resolveColumns(n.Columns, availW)

	mt := &MeasuredTable{
		ColWidths:   colWidths,
		CellPadding: n.Style.CellPadding,
	}

	if len(n.Header) > 0 {
		row, err := e.measureTableRow(headerCells(n.Header, n.Style), colWidths, n.Style, availH)
		if err != nil {
			return nil, err
		}
		row.Header = true
		mt.Rows = append(mt.Rows, row)
	}
	for _, cells := range n.Rows {
		row, err := e.measureTableRow(cells, colWidths, n.Style, availH)
		if err != nil {
			return nil, err
		}
		mt.Rows = append(mt.Rows, row)
	}

	box := &MeasuredBox{Node: n, Table: mt}
	for _, w := range colWidths {
		box.Width += w
	}
	for _, row := range mt.Rows {
		box.Height += row.Height
	}
	return box, nil
}

// resolveColumns turns column specs into concrete widths.
func (e *Engine) resolveColumns(cols []doc.ColumnSpec, availW float64) []float64 {
	fixedTotal := 0.0
	autoCount := 0
	for _, c := range cols {
		if c.IsAuto() {
			autoCount++
		} else {
			fixedTotal += c.Width
		}
	}

	shrink := 1.0
	if fixedTotal > availW && fixedTotal > 0 {
		shrink = availW / fixedTotal
		e.warn(doc.Warning{
			Kind:   doc.WarnTableShrink,
			Detail: fmt.Sprintf("fixed columns total %.2f exceeds available %.2f, shrinking by %.3f", fixedTotal, availW, shrink),
		})
		fixedTotal = availW
	}

	autoWidth := 0.0
	if autoCount > 0 {
		autoWidth = (availW - fixedTotal) / float64(autoCount)
		if autoWidth < 0 {
			autoWidth = 0
		}
	}

	widths := make([]float64, len(cols))
	for i, c := range cols {
		if c.IsAuto() {
			widths[i] = autoWidth
		} else {
			widths[i] = c.Width * shrink
		}
	}
	return widths
}

// measureTableRow lays out each cell against its resolved column width.
// The row height is the max cell height; rows do not share heights.
func (e *Engine) measureTableRow(cells []doc.Node, colWidths []float64, style doc.TableStyle, availH float64) (MeasuredRow, error) {
	row := MeasuredRow{}
	pad := style.CellPadding
	for i, cell := range cells {
		w := 0.0
		if i < len(colWidths) {
			w = colWidths[i]
		}
		cb, err := e.Measure(cell, w-2*pad, availH)
		if err != nil {
			return MeasuredRow{}, err
		}
		row.Cells = append(row.Cells, cb)
		if h := cb.Height + 2*pad; h > row.Height {
			row.Height = h
		}
	}
	return row, nil
}

// headerCells applies the header style overrides (text color, bold) to
// every span reachable in the header cells. The header shares column
// widths with body rows; only its paint differs.
func headerCells(cells []doc.Node, style doc.TableStyle) []doc.Node {
	if !style.HeaderBold && style.HeaderColor == (doc.Color{}) {
		return cells
	}
	out := make([]doc.Node, len(cells))
	for i, c := range cells {
		out[i] = restyleSpans(c, func(s *doc.InlineSpan) {
			if style.HeaderBold {
				s.Bold = true
			}
			if style.HeaderColor != (doc.Color{}) {
				s.Color = style.HeaderColor
			}
		})
	}
	return out
}

// restyleSpans returns a copy of the tree with apply run on every span.
func restyleSpans(n doc.Node, apply func(*doc.InlineSpan)) doc.Node {
	switch v := n.(type) {
	case doc.TextRun:
		spans := make([]doc.InlineSpan, len(v.Spans))
		for i, s := range v.Spans {
			apply(&s)
			spans[i] = s
		}
		v.Spans = spans
		return v
	case doc.Column:
		v.Children = restyleAll(v.Children, apply)
		return v
	case doc.Row:
		v.Children = restyleAll(v.Children, apply)
		return v
	case doc.Layers:
		v.Children = restyleAll(v.Children, apply)
		return v
	case doc.Padding:
		v.Child = restyleSpans(v.Child, apply)
		return v
	case doc.Border:
		v.Child = restyleSpans(v.Child, apply)
		return v
	case doc.Background:
		v.Child = restyleSpans(v.Child, apply)
		return v
	case doc.SizeConstraint:
		v.Child = restyleSpans(v.Child, apply)
		return v
	case doc.ShowIf:
		v.Child = restyleSpans(v.Child, apply)
		return v
	case doc.List:
		v.Items = restyleAll(v.Items, apply)
		return v
	case doc.Table:
		if v.Header != nil {
			v.Header = restyleAll(v.Header, apply)
		}
		rows := make([][]doc.Node, len(v.Rows))
		for i, r := range v.Rows {
			rows[i] = restyleAll(r, apply)
		}
		v.Rows = rows
		return v
	default:
		return n
	}
}

func restyleAll(children []doc.Node, apply func(*doc.InlineSpan)) []doc.Node {
	out := make([]doc.Node, len(children))
	for i, c := range children {
		out[i] = restyleSpans(c, apply)
	}
	return out
}
