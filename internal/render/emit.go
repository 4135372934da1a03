// Package render flattens placed boxes into drawing commands and
// replays finalized pages onto a Surface. It performs no measurement;
// every position it emits was resolved by layout and pagination.
package render

import (
	"github.com/azbo/typeset/internal/layout"
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// Commands flattens a placed box at absolute position (x, y) into
// drawing commands in paint order: backgrounds first, content next,
// borders last. Layers children emit in z-order, so later commands
// overlay earlier ones.
func Commands(b *layout.MeasuredBox, x, y float64) []page.Command {
	var out []page.Command
	emit(b, x, y, &out)
	return out
}

func emit(b *layout.MeasuredBox, x, y float64, out *[]page.Command) {
	switch n := b.Node.(type) {
	case doc.Background:
		*out = append(*out, page.FillRect{
			Rect:  page.Rect{X: x, Y: y, W: b.Width, H: b.Height},
			Color: n.Color,
		})
		emitChildren(b, x, y, out)
	case doc.Border:
		emitChildren(b, x, y, out)
		*out = append(*out, page.StrokeRect{
			Rect:  page.Rect{X: x, Y: y, W: b.Width, H: b.Height},
			Color: n.Color,
			Width: n.Width,
		})
	case doc.TextRun:
		emitText(b, n, x, y, out)
	case doc.Image:
		if n.Source != nil && b.Width > 0 && b.Height > 0 {
			*out = append(*out, page.DrawImage{
				Rect:   page.Rect{X: x, Y: y, W: b.Width, H: b.Height},
				Source: n.Source,
			})
		}
	case doc.Table:
		emitTable(b, n, x, y, out)
	case doc.List:
		emitList(b, x, y, out)
	default:
		emitChildren(b, x, y, out)
	}
}

func emitChildren(b *layout.MeasuredBox, x, y float64, out *[]page.Command) {
	for i, child := range b.Children {
		emit(child, x+b.Offsets[i].X, y+b.Offsets[i].Y, out)
	}
}

// emitText places each wrapped line at its baseline. Centered and
// right-aligned runs shift whole lines; RTL-dominant lines right-align
// within the box.
func emitText(b *layout.MeasuredBox, n doc.TextRun, x, y float64, out *[]page.Command) {
	lineY := y
	for _, line := range b.Lines {
		lineX := x
		switch {
		case n.Align == doc.AlignCenter:
			lineX = x + (b.Width-line.Width)/2
		case n.Align == doc.AlignRight || line.RTL:
			lineX = x + b.Width - line.Width
		}
		px := lineX
		for _, piece := range line.Pieces {
			*out = append(*out, page.DrawText{
				Pos:       page.Point{X: px, Y: lineY + line.Baseline},
				Font:      piece.Span.Font(),
				Color:     piece.Span.Color,
				Text:      piece.Span.Text,
				Underline: piece.Span.Underline,
			})
			px += piece.Width
		}
		lineY += line.Height
	}
}

// emitTable paints per cell: header fill, cell content inset by the
// cell padding, then the cell border at the full row height.
func emitTable(b *layout.MeasuredBox, n doc.Table, x, y float64, out *[]page.Command) {
	t := b.Table
	rowY := y
	for _, row := range t.Rows {
		cellX := x
		for i, cell := range row.Cells {
			w := t.ColWidths[i]
			rect := page.Rect{X: cellX, Y: rowY, W: w, H: row.Height}
			if row.Header && n.Style.HeaderBackground != (doc.Color{}) {
				*out = append(*out, page.FillRect{Rect: rect, Color: n.Style.HeaderBackground})
			}
			emit(cell, cellX+t.CellPadding, rowY+t.CellPadding, out)
			if n.Style.BorderWidth > 0 {
				*out = append(*out, page.StrokeRect{
					Rect:  rect,
					Color: n.Style.BorderColor,
					Width: n.Style.BorderWidth,
				})
			}
			cellX += w
		}
		rowY += row.Height
	}
}

// emitList draws each item's marker in the reserved marker column, then
// the item content at its offset.
func emitList(b *layout.MeasuredBox, x, y float64, out *[]page.Command) {
	for i, item := range b.Children {
		off := b.Offsets[i]
		m := b.Markers[i]
		*out = append(*out, page.DrawText{
			Pos:   page.Point{X: x, Y: y + off.Y + m.Baseline},
			Font:  m.Font,
			Color: m.Color,
			Text:  m.Text,
		})
		emit(item, x+off.X, y+off.Y, out)
	}
}
