// Package doc defines the box tree model consumed by the layout engine:
// the closed set of layout node variants, inline text spans, colors,
// the font metrics contract, and the error/warning taxonomy.
package doc

// Node is one variant of the box tree. The set of implementations is
// closed; the layout engine switches exhaustively over it.
type Node interface {
	isNode()
}

// Column stacks its children vertically. Each child is offered the full
// available width; the column's height is the sum of child heights.
type Column struct {
	Children []Node
}

// Row stacks its children horizontally. Children share the available
// width equally, after subtracting any fixed-width children.
type Row struct {
	Children []Node
}

// Padding insets its child by the given amounts on each side.
type Padding struct {
	Top, Right, Bottom, Left float64
	Child                    Node
}

// Border draws a stroked rectangle around its child.
type Border struct {
	Color Color
	Width float64
	Child Node
}

// Background fills the child's bounds with a color before the child is
// painted.
type Background struct {
	Color Color
	Child Node
}

// SizeConstraint overrides the dimensions offered to its child. A zero
// Width or Height means "not constrained". When only AspectRatio is set
// together with one dimension, the other dimension is derived from it.
type SizeConstraint struct {
	Width       float64
	Height      float64
	AspectRatio float64
	Child       Node
}

// Layers overlaps its children in z-order. Every child is positioned at
// the same origin; later children paint over earlier ones.
type Layers struct {
	Children []Node
}

// ShowIf elides its child entirely from layout when Cond is false.
type ShowIf struct {
	Cond  bool
	Child Node
}

// PageBreak is a zero-size leaf that forces the flow cursor onto the
// next page.
type PageBreak struct{}

// TextRun is a leaf containing one or more styled inline spans that are
// wrapped together as a single paragraph.
type TextRun struct {
	Spans []InlineSpan
	Align Alignment
}

// InlineSpan is a contiguous run of text sharing one style. A newline
// in Text forces a hard line break at that point.
type InlineSpan struct {
	Text      string
	Family    string
	Size      float64
	Color     Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Font returns the span's face identity for measurement and drawing.
func (s InlineSpan) Font() FontSpec {
	return FontSpec{Family: s.Family, Size: s.Size, Bold: s.Bold, Italic: s.Italic}
}

// Alignment controls horizontal placement of wrapped lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ImageSource resolves an image's pixels on demand. The layout engine
// treats it as an opaque handle; only the render surface decodes it.
type ImageSource interface {
	// Key identifies the source for caching and diagnostics.
	Key() string
	// Bytes returns the encoded image data.
	Bytes() ([]byte, error)
}

// Image is a leaf placing a raster image. Width and Height are the
// intrinsic pixel dimensions, interpreted at 1 point per pixel unless an
// ancestor SizeConstraint overrides them. A nil Source marks an
// unresolved placeholder that lays out at zero size.
type Image struct {
	Source ImageSource
	Width  float64
	Height float64
}

// ColumnSpec describes one table column's width policy.
type ColumnSpec struct {
	// Width is the fixed width in points; zero means automatic.
	Width float64
}

// Fixed returns a column spec with a fixed width.
func Fixed(width float64) ColumnSpec { return ColumnSpec{Width: width} }

// Auto returns a column spec whose width is negotiated from the space
// left over after fixed columns are placed.
func Auto() ColumnSpec { return ColumnSpec{} }

// IsAuto reports whether the column width is negotiated.
func (c ColumnSpec) IsAuto() bool { return c.Width == 0 }

// TableStyle carries the visual defaults applied to a table.
type TableStyle struct {
	BorderColor      Color
	BorderWidth      float64
	CellPadding      float64
	HeaderBackground Color
	HeaderColor      Color
	HeaderBold       bool
}

// Table is a leaf containing nested nodes per cell. Every row must have
// exactly len(Columns) cells.
type Table struct {
	Columns []ColumnSpec
	Header  []Node
	Rows    [][]Node
	Style   TableStyle
}

// List renders its items with a per-level marker column. Level starts
// at 0 for a top-level list and increments by one per nested list.
type List struct {
	Ordered bool
	Items   []Node
	Level   int
}

func (Column) isNode()         {}
func (Row) isNode()            {}
func (Padding) isNode()        {}
func (Border) isNode()         {}
func (Background) isNode()     {}
func (SizeConstraint) isNode() {}
func (Layers) isNode()         {}
func (ShowIf) isNode()         {}
func (PageBreak) isNode()      {}
func (TextRun) isNode()        {}
func (Image) isNode()          {}
func (Table) isNode()          {}
func (List) isNode()           {}
