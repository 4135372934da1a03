package layout

import (
	"fmt"

	"github.com/azbo/typeset/pkg/doc"
)

// bullets is the fixed marker rotation for unordered lists; the glyph
// for a level is bullets[level%len(bullets)].
var bullets = []string{"•", "◦", "▪"}

const (
	orderedMarkerWidth   = 24.0
	unorderedMarkerWidth = 18.0
)

// MarkerWidth returns the width of the marker column reserved for a
// list item. It is a pure function of (ordered, level).
func MarkerWidth(ordered bool, level int) float64 {
	if ordered {
		return orderedMarkerWidth
	}
	return unorderedMarkerWidth
}

// BulletGlyph returns the unordered marker glyph for a nesting level.
func BulletGlyph(level int) string {
	return bullets[level%len(bullets)]
}

// measureList lays out each item against the width remaining after the
// marker column and stacks the items like a Column.
func (e *Engine) measureList(n doc.List, availW, availH float64) (*MeasuredBox, error) {
	mw := MarkerWidth(n.Ordered, n.Level)
	box := &MeasuredBox{Node: n}
	y := 0.0
	for i, item := range n.Items {
		cb, err := e.Measure(item, availW-mw, availH)
		if err != nil {
			return nil, err
		}
		box.Children = append(box.Children, cb)
		box.Offsets = append(box.Offsets, Offset{X: mw, Y: y})
		box.Markers = append(box.Markers, markerFor(n, i, cb))
		y += cb.Height
		if w := cb.Width + mw; w > box.Width {
			box.Width = w
		}
	}
	box.Height = y
	return box, nil
}

// markerFor resolves the marker glyph and style for one list item.
// Ordered lists use Arabic numerals at every nesting level; unordered
// lists rotate through the fixed bullet set by level.
func markerFor(n doc.List, index int, item *MeasuredBox) Marker {
	m := Marker{
		Font:  doc.FontSpec{Family: "Helvetica", Size: 12},
		Color: doc.Black,
	}
	if n.Ordered {
		m.Text = fmt.Sprintf("%d.", index+1)
	} else {
		m.Text = BulletGlyph(n.Level)
	}
	// Match the item's leading text style so marker and content align.
	if span, ok := firstSpan(item); ok {
		m.Font = doc.FontSpec{Family: span.Family, Size: span.Size}
		m.Color = span.Color
	}
	m.Baseline = firstBaseline(item, m.Font.Size*0.8)
	return m
}

// firstSpan finds the first styled span in a measured subtree.
func firstSpan(b *MeasuredBox) (doc.InlineSpan, bool) {
	if len(b.Lines) > 0 && len(b.Lines[0].Pieces) > 0 {
		return b.Lines[0].Pieces[0].Span, true
	}
	for _, c := range b.Children {
		if s, ok := firstSpan(c); ok {
			return s, true
		}
	}
	return doc.InlineSpan{}, false
}

// firstBaseline finds the baseline of the first text line in a subtree,
// so the marker sits on the same baseline as the item's first line.
func firstBaseline(b *MeasuredBox, fallback float64) float64 {
	if len(b.Lines) > 0 {
		return b.Lines[0].Baseline
	}
	for i, c := range b.Children {
		if bl := firstBaseline(c, -1); bl >= 0 {
			return bl + b.Offsets[i].Y
		}
	}
	return fallback
}
