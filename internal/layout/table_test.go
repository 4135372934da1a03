package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azbo/typeset/internal/layout"
	"github.com/azbo/typeset/pkg/doc"
)

func TestTableFixedAndAutoColumns(t *testing.T) {
	e := newEngine()
	table := doc.NewTable(doc.Fixed(100), doc.Auto()).
		AddRow(doc.Text("a"), doc.Text("b")).
		Build().Node()

	box, err := e.Measure(table, 300, layout.Unbounded)
	require.NoError(t, err)
	require.NotNil(t, box.Table)
	require.Equal(t, []float64{100, 200}, box.Table.ColWidths)
	assert.InDelta(t, 300, box.Width, 1e-9)
	assert.Empty(t, e.Warnings())
}

func TestTableAutoColumnsShareRemainder(t *testing.T) {
	e := newEngine()
	table := doc.NewTable(doc.Fixed(90), doc.Auto(), doc.Auto()).
		AddRow(doc.Text("a"), doc.Text("b"), doc.Text("c")).
		Build().Node()

	box, err := e.Measure(table, 290, layout.Unbounded)
	require.NoError(t, err)
	require.Equal(t, []float64{90, 100, 100}, box.Table.ColWidths)
}

func TestTableShrinksOvercommittedFixedColumns(t *testing.T) {
	e := newEngine()
	table := doc.NewTable(doc.Fixed(300), doc.Fixed(100)).
		AddRow(doc.Text("a"), doc.Text("b")).
		Build().Node()

	box, err := e.Measure(table, 200, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Table.ColWidths, 2)
	assert.InDelta(t, 150, box.Table.ColWidths[0], 1e-9)
	assert.InDelta(t, 50, box.Table.ColWidths[1], 1e-9)
	assert.InDelta(t, 200, box.Width, 1e-9)

	warns := e.Warnings()
	require.Len(t, warns, 1)
	assert.Equal(t, doc.WarnTableShrink, warns[0].Kind)
}

func TestTableRowHeightsAreIndependent(t *testing.T) {
	e := newEngine()
	style := doc.TableStyle{CellPadding: 5}
	table := doc.NewTable(doc.Fixed(200), doc.Fixed(200)).
		Style(style).
		AddRow(doc.Text("one line"), doc.Text("x")).
		AddRow(doc.Text("a\nb\nc"), doc.Text("x")).
		Build().Node()

	box, err := e.Measure(table, 400, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Table.Rows, 2)
	assert.InDelta(t, 12+10, box.Table.Rows[0].Height, 1e-9, "one text line plus padding")
	assert.InDelta(t, 36+10, box.Table.Rows[1].Height, 1e-9, "the tallest cell sets the row height")
	assert.InDelta(t, box.Table.Rows[0].Height+box.Table.Rows[1].Height, box.Height, 1e-9)
}

func TestTableHeaderRestyled(t *testing.T) {
	e := newEngine()
	table := doc.NewTable(doc.Fixed(100), doc.Fixed(100)).
		Style(doc.TableStyle{HeaderBold: true, HeaderColor: doc.White}).
		Head(doc.Text("H1"), doc.Text("H2")).
		AddRow(doc.Text("a"), doc.Text("b")).
		Build().Node()

	box, err := e.Measure(table, 200, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Table.Rows, 2)

	header := box.Table.Rows[0]
	assert.True(t, header.Header)
	span := header.Cells[0].Lines[0].Pieces[0].Span
	assert.True(t, span.Bold)
	assert.Equal(t, doc.White, span.Color)

	body := box.Table.Rows[1]
	assert.False(t, body.Header)
	assert.False(t, body.Cells[0].Lines[0].Pieces[0].Span.Bold)
}

func TestTableHeaderRestyleReachesNestedContent(t *testing.T) {
	e := newEngine()
	table := doc.Normalize(doc.NewTable(doc.Fixed(120), doc.Fixed(120)).
		Style(doc.TableStyle{HeaderBold: true, HeaderColor: doc.White}).
		Head(doc.NewList(false, doc.Text("points")), doc.Text("H2")).
		AddRow(doc.Text("a"), doc.Text("b")).
		Build().Node())

	box, err := e.Measure(table, 240, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Table.Rows, 2)

	list := box.Table.Rows[0].Cells[0]
	require.Len(t, list.Children, 1)
	span := list.Children[0].Lines[0].Pieces[0].Span
	assert.True(t, span.Bold)
	assert.Equal(t, doc.White, span.Color)

	body := box.Table.Rows[1].Cells[0]
	assert.False(t, body.Lines[0].Pieces[0].Span.Bold)
}

func TestTableWithoutHeaderHasNoHeaderRow(t *testing.T) {
	e := newEngine()
	table := doc.NewTable(doc.Auto()).
		AddRow(doc.Text("only")).
		Build().Node()

	box, err := e.Measure(table, 100, layout.Unbounded)
	require.NoError(t, err)
	require.Len(t, box.Table.Rows, 1)
	assert.False(t, box.Table.Rows[0].Header)
}
