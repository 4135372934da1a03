package doc

// Builder wraps a node so layout wrappers can be chained onto it:
//
//	doc.Text("Total", doc.WithBold()).Pad(4).Border(doc.Black, 1).Width(120)
//
// Each wrapper method returns a builder around a new node; the wrapped
// tree stays immutable.
type Builder struct {
	node Node
}

// Wrap starts a builder chain from an existing node.
func Wrap(n Node) *Builder { return &Builder{node: n} }

// Node returns the built tree.
func (b *Builder) Node() Node { return b.node }

// NewColumn stacks the given children vertically.
func NewColumn(children ...*Builder) *Builder {
	return Wrap(Column{Children: nodes(children)})
}

// NewRow stacks the given children horizontally.
func NewRow(children ...*Builder) *Builder {
	return Wrap(Row{Children: nodes(children)})
}

// NewLayers overlaps the given children in z-order.
func NewLayers(children ...*Builder) *Builder {
	return Wrap(Layers{Children: nodes(children)})
}

// NewPageBreak forces the flow onto the next page.
func NewPageBreak() *Builder { return Wrap(PageBreak{}) }

// NewImage places an image with the given intrinsic pixel size.
func NewImage(src ImageSource, width, height float64) *Builder {
	return Wrap(Image{Source: src, Width: width, Height: height})
}

// NewList builds a list from the given items. Nesting levels of inner
// lists are assigned when the tree is normalized for layout.
func NewList(ordered bool, items ...*Builder) *Builder {
	return Wrap(List{Ordered: ordered, Items: nodes(items)})
}

// Text builds a run with a single span in the default style.
func Text(text string, opts ...SpanOption) *Builder {
	return Spans(Span(text, opts...))
}

// Spans builds a run from pre-styled spans.
func Spans(spans ...InlineSpan) *Builder {
	return Wrap(TextRun{Spans: spans})
}

// Pad insets the node by the same amount on all sides.
func (b *Builder) Pad(amount float64) *Builder {
	return b.PadEach(amount, amount, amount, amount)
}

// PadEach insets the node by per-side amounts.
func (b *Builder) PadEach(top, right, bottom, left float64) *Builder {
	return Wrap(Padding{Top: top, Right: right, Bottom: bottom, Left: left, Child: b.node})
}

// Border draws a stroked rectangle around the node.
func (b *Builder) Border(c Color, width float64) *Builder {
	return Wrap(Border{Color: c, Width: width, Child: b.node})
}

// Background fills the node's bounds with a color.
func (b *Builder) Background(c Color) *Builder {
	return Wrap(Background{Color: c, Child: b.node})
}

// Width fixes the width offered to the node.
func (b *Builder) Width(w float64) *Builder {
	return b.constrain(func(c *SizeConstraint) { c.Width = w })
}

// Height fixes the height offered to the node.
func (b *Builder) Height(h float64) *Builder {
	return b.constrain(func(c *SizeConstraint) { c.Height = h })
}

// Aspect derives the missing dimension from width/aspect or height*aspect.
func (b *Builder) Aspect(ratio float64) *Builder {
	return b.constrain(func(c *SizeConstraint) { c.AspectRatio = ratio })
}

// ShowIf elides the node from layout when cond is false.
func (b *Builder) ShowIf(cond bool) *Builder {
	return Wrap(ShowIf{Cond: cond, Child: b.node})
}

// constrain merges into an existing outer SizeConstraint so that
// .Width(w).Height(h) produces a single constraint node.
func (b *Builder) constrain(apply func(*SizeConstraint)) *Builder {
	if sc, ok := b.node.(SizeConstraint); ok {
		apply(&sc)
		return Wrap(sc)
	}
	sc := SizeConstraint{Child: b.node}
	apply(&sc)
	return Wrap(sc)
}

func nodes(builders []*Builder) []Node {
	out := make([]Node, 0, len(builders))
	for _, b := range builders {
		if b == nil {
			continue
		}
		out = append(out, b.node)
	}
	return out
}

// SpanOption customizes a span built by Span or Text.
type SpanOption func(*InlineSpan)

// Span builds a styled span. The default style is 12pt Helvetica black.
func Span(text string, opts ...SpanOption) InlineSpan {
	s := InlineSpan{Text: text, Family: "Helvetica", Size: 12, Color: Black}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithFamily sets the span's font family.
func WithFamily(family string) SpanOption {
	return func(s *InlineSpan) { s.Family = NormalizeFamily(family) }
}

// WithSize sets the span's font size in points.
func WithSize(size float64) SpanOption {
	return func(s *InlineSpan) { s.Size = size }
}

// WithColor sets the span's text color.
func WithColor(c Color) SpanOption {
	return func(s *InlineSpan) { s.Color = c }
}

// WithBold renders the span in the bold face.
func WithBold() SpanOption {
	return func(s *InlineSpan) { s.Bold = true }
}

// WithItalic renders the span in the italic face.
func WithItalic() SpanOption {
	return func(s *InlineSpan) { s.Italic = true }
}

// WithUnderline underlines the span.
func WithUnderline() SpanOption {
	return func(s *InlineSpan) { s.Underline = true }
}

// TableBuilder assembles a Table leaf row by row.
type TableBuilder struct {
	table Table
}

// NewTable starts a table with the given column specs.
func NewTable(cols ...ColumnSpec) *TableBuilder {
	return &TableBuilder{table: Table{Columns: cols}}
}

// Style sets the table's visual defaults.
func (t *TableBuilder) Style(s TableStyle) *TableBuilder {
	t.table.Style = s
	return t
}

// Head sets the header row. Cell count must match the column count.
func (t *TableBuilder) Head(cells ...*Builder) *TableBuilder {
	t.table.Header = nodes(cells)
	return t
}

// AddRow appends a body row. Cell count must match the column count.
func (t *TableBuilder) AddRow(cells ...*Builder) *TableBuilder {
	t.table.Rows = append(t.table.Rows, nodes(cells))
	return t
}

// Build finishes the table and returns it as a chainable builder.
func (t *TableBuilder) Build() *Builder {
	return Wrap(t.table)
}

// Normalize returns a copy of the tree with list nesting levels
// recomputed: 0 for a top-level list, incremented by one for each List
// ancestor. Layout relies on these levels for marker selection and
// indentation.
func Normalize(n Node) Node {
	return assignLevels(n, 0)
}

func assignLevels(n Node, level int) Node {
	switch v := n.(type) {
	case Column:
		v.Children = assignLevelsAll(v.Children, level)
		return v
	case Row:
		v.Children = assignLevelsAll(v.Children, level)
		return v
	case Layers:
		v.Children = assignLevelsAll(v.Children, level)
		return v
	case Padding:
		v.Child = assignLevels(v.Child, level)
		return v
	case Border:
		v.Child = assignLevels(v.Child, level)
		return v
	case Background:
		v.Child = assignLevels(v.Child, level)
		return v
	case SizeConstraint:
		v.Child = assignLevels(v.Child, level)
		return v
	case ShowIf:
		v.Child = assignLevels(v.Child, level)
		return v
	case List:
		v.Level = level
		v.Items = assignLevelsAll(v.Items, level+1)
		return v
	case Table:
		v.Header = assignLevelsAll(v.Header, level)
		rows := make([][]Node, len(v.Rows))
		for i, row := range v.Rows {
			rows[i] = assignLevelsAll(row, level)
		}
		v.Rows = rows
		return v
	default:
		return n
	}
}

func assignLevelsAll(children []Node, level int) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = assignLevels(c, level)
	}
	return out
}
