package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azbo/typeset/internal/layout"
	"github.com/azbo/typeset/pkg/doc"
)

func TestMarkerWidthIsPure(t *testing.T) {
	for level := 0; level < 5; level++ {
		assert.Equal(t, 24.0, layout.MarkerWidth(true, level))
		assert.Equal(t, 18.0, layout.MarkerWidth(false, level))
	}
}

func TestBulletGlyphRotation(t *testing.T) {
	assert.Equal(t, "•", layout.BulletGlyph(0))
	assert.Equal(t, "◦", layout.BulletGlyph(1))
	assert.Equal(t, "▪", layout.BulletGlyph(2))
	assert.Equal(t, "•", layout.BulletGlyph(3))
	assert.Equal(t, "◦", layout.BulletGlyph(4))
}

func TestMeasureUnorderedList(t *testing.T) {
	e := newEngine()
	list := doc.Normalize(doc.NewList(false,
		doc.Text("first"),
		doc.Text("second"),
	).Node())

	box, err := e.Measure(list, 300, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Children, 2)
	require.Len(t, box.Markers, 2)

	assert.Equal(t, "•", box.Markers[0].Text)
	assert.Equal(t, "•", box.Markers[1].Text)
	assert.Equal(t, layout.Offset{X: 18, Y: 0}, box.Offsets[0])
	assert.Equal(t, layout.Offset{X: 18, Y: 12}, box.Offsets[1])
	assert.InDelta(t, 24, box.Height, 1e-9)
}

func TestMeasureOrderedListNumbersItems(t *testing.T) {
	e := newEngine()
	list := doc.Normalize(doc.NewList(true,
		doc.Text("a"),
		doc.Text("b"),
		doc.Text("c"),
	).Node())

	box, err := e.Measure(list, 300, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Markers, 3)
	assert.Equal(t, "1.", box.Markers[0].Text)
	assert.Equal(t, "2.", box.Markers[1].Text)
	assert.Equal(t, "3.", box.Markers[2].Text)
	assert.Equal(t, layout.Offset{X: 24, Y: 0}, box.Offsets[0])
}

func TestMeasureNestedListIndentsAndRotatesBullets(t *testing.T) {
	e := newEngine()
	list := doc.Normalize(doc.NewList(false,
		doc.Text("outer"),
		doc.NewList(false, doc.Text("inner")),
	).Node())

	box, err := e.Measure(list, 300, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Children, 2)

	inner := box.Children[1]
	_, ok := inner.Node.(doc.List)
	require.True(t, ok)
	require.Len(t, inner.Markers, 1)
	assert.Equal(t, "◦", inner.Markers[0].Text, "second level uses the second bullet glyph")

	// Inner item content sits two marker columns in from the list edge.
	assert.InDelta(t, 18, box.Offsets[1].X, 1e-9)
	assert.InDelta(t, 18, inner.Offsets[0].X, 1e-9)
}

func TestListMarkerMatchesItemStyle(t *testing.T) {
	e := newEngine()
	list := doc.Normalize(doc.NewList(false,
		doc.Text("red item", doc.WithColor(doc.Color{R: 200}), doc.WithSize(20)),
	).Node())

	box, err := e.Measure(list, 300, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Markers, 1)
	assert.Equal(t, doc.Color{R: 200}, box.Markers[0].Color)
	assert.InDelta(t, 20, box.Markers[0].Font.Size, 1e-9)
}

func TestListItemWidthIncludesMarkerColumn(t *testing.T) {
	e := newEngine()
	list := doc.Normalize(doc.NewList(false, doc.Text("abcd")).Node())

	box, err := e.Measure(list, 300, layout.Unbounded)
	require.NoError(t, err)
	assert.InDelta(t, 18+40, box.Width, 1e-9)
}
