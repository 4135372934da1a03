package layout

import (
	"math"

	"github.com/azbo/typeset/internal/text"
	"github.com/azbo/typeset/logging"
	"github.com/azbo/typeset/pkg/doc"
)

// Unbounded is passed as the available height wherever content flows
// without a vertical limit; pagination applies the page limit later.
var Unbounded = math.Inf(1)

// Engine runs the measurement pass. It owns the shaper and collects
// non-fatal warnings; use a fresh engine per document.
type Engine struct {
	shaper   *text.Shaper
	warnings []doc.Warning
}

// NewEngine creates a layout engine backed by the given metrics
// provider. A nil provider falls back to the built-in metrics.
func NewEngine(metrics doc.FontMetrics) *Engine {
	if metrics == nil {
		metrics = doc.BuiltinMetrics{}
	}
	return &Engine{shaper: text.NewShaper(metrics)}
}

// Warnings returns the diagnostics recorded so far, in occurrence order.
func (e *Engine) Warnings() []doc.Warning { return e.warnings }

func (e *Engine) warn(w doc.Warning) {
	e.warnings = append(e.warnings, w)
	logging.Logger().Debug("layout warning", "kind", w.Kind.String(), "detail", w.Detail)
}

// Measure lays out node against the offered dimensions. It fails only
// on collaborator errors (font metrics); every valid tree produces a
// best-effort box, with degenerate inputs recorded as warnings.
func (e *Engine) Measure(node doc.Node, availW, availH float64) (*MeasuredBox, error) {
	switch n := node.(type) {
	case doc.Column:
		return e.measureColumn(n, availW, availH)
	case doc.Row:
		return e.measureRow(n, availW, availH)
	case doc.Padding:
		return e.measurePadding(n, availW, availH)
	case doc.Border:
		return e.measureBorder(n, availW, availH)
	case doc.Background:
		return e.measureBackground(n, availW, availH)
	case doc.SizeConstraint:
		return e.measureConstraint(n, availW, availH)
	case doc.Layers:
		return e.measureLayers(n, availW, availH)
	case doc.ShowIf:
		return e.measureShowIf(n, availW, availH)
	case doc.PageBreak:
		return &MeasuredBox{Node: n}, nil
	case doc.TextRun:
		return e.measureText(n, availW)
	case doc.Image:
		return e.measureImage(n, availW, availH), nil
	case doc.Table:
		return e.measureTable(n, availW, availH)
	case doc.List:
		return e.measureList(n, availW, availH)
	default:
		// The node set is closed; a new variant must be wired in here.
		panic("layout: unhandled node variant")
	}
}

func (e *Engine) measureColumn(n doc.Column, availW, availH float64) (*MeasuredBox, error) {
	box := &MeasuredBox{Node: n}
	y := 0.0
	for _, child := range n.Children {
		cb, err := e.Measure(child, availW, availH)
		if err != nil {
			return nil, err
		}
		box.Children = append(box.Children, cb)
		box.Offsets = append(box.Offsets, Offset{Y: y})
		y += cb.Height
		if cb.Width > box.Width {
			box.Width = cb.Width
		}
	}
	box.Height = y
	return box, nil
}

func (e *Engine) measureRow(n doc.Row, availW, availH float64) (*MeasuredBox, error) {
	// Fixed-width children are subtracted from the shared pool before
	// the remainder is split equally among the rest.
	fixed := 0.0
	flexible := 0
	for _, child := range n.Children {
		if w, ok := fixedWidth(child); ok {
			fixed += w
		} else {
			flexible++
		}
	}
	share := 0.0
	if flexible > 0 {
		share = (availW - fixed) / float64(flexible)
		if share < 0 {
			share = 0
		}
	}

	box := &MeasuredBox{Node: n}
	x := 0.0
	for _, child := range n.Children {
		offered := share
		if w, ok := fixedWidth(child); ok {
			offered = w
		}
		cb, err := e.Measure(child, offered, availH)
		if err != nil {
			return nil, err
		}
		box.Children = append(box.Children, cb)
		box.Offsets = append(box.Offsets, Offset{X: x})
		x += cb.Width
		if cb.Height > box.Height {
			box.Height = cb.Height
		}
	}
	box.Width = x
	return box, nil
}

// fixedWidth reports whether a row child carries a fixed width through
// an outer SizeConstraint.
func fixedWidth(n doc.Node) (float64, bool) {
	if sc, ok := n.(doc.SizeConstraint); ok && sc.Width > 0 {
		return sc.Width, true
	}
	return 0, false
}

func (e *Engine) measurePadding(n doc.Padding, availW, availH float64) (*MeasuredBox, error) {
	childH := availH
	if !math.IsInf(availH, 1) {
		childH = availH - n.Top - n.Bottom
	}
	child, err := e.Measure(n.Child, availW-n.Left-n.Right, childH)
	if err != nil {
		return nil, err
	}
	return &MeasuredBox{
		Node:     n,
		Width:    child.Width + n.Left + n.Right,
		Height:   child.Height + n.Top + n.Bottom,
		Children: []*MeasuredBox{child},
		Offsets:  []Offset{{X: n.Left, Y: n.Top}},
	}, nil
}

func (e *Engine) measureBorder(n doc.Border, availW, availH float64) (*MeasuredBox, error) {
	childH := availH
	if !math.IsInf(availH, 1) {
		childH = availH - 2*n.Width
	}
	child, err := e.Measure(n.Child, availW-2*n.Width, childH)
	if err != nil {
		return nil, err
	}
	return &MeasuredBox{
		Node:     n,
		Width:    child.Width + 2*n.Width,
		Height:   child.Height + 2*n.Width,
		Children: []*MeasuredBox{child},
		Offsets:  []Offset{{X: n.Width, Y: n.Width}},
	}, nil
}

func (e *Engine) measureBackground(n doc.Background, availW, availH float64) (*MeasuredBox, error) {
	child, err := e.Measure(n.Child, availW, availH)
	if err != nil {
		return nil, err
	}
	return &MeasuredBox{
		Node:     n,
		Width:    child.Width,
		Height:   child.Height,
		Children: []*MeasuredBox{child},
		Offsets:  []Offset{{}},
	}, nil
}

func (e *Engine) measureConstraint(n doc.SizeConstraint, availW, availH float64) (*MeasuredBox, error) {
	w, h := n.Width, n.Height
	if n.AspectRatio > 0 {
		switch {
		case w > 0 && h == 0:
			h = w / n.AspectRatio
		case h > 0 && w == 0:
			w = h * n.AspectRatio
		case w == 0 && h == 0:
			// Neither given: derive height from the offered width.
			w = availW
			h = w / n.AspectRatio
		}
	}

	offeredW, offeredH := availW, availH
	if w > 0 {
		offeredW = w
	}
	if h > 0 {
		offeredH = h
	}
	child, err := e.Measure(n.Child, offeredW, offeredH)
	if err != nil {
		return nil, err
	}

	box := &MeasuredBox{
		Node:     n,
		Width:    child.Width,
		Height:   child.Height,
		Children: []*MeasuredBox{child},
		Offsets:  []Offset{{}},
	}
	if w > 0 {
		box.Width = w
	}
	if h > 0 {
		box.Height = h
	}
	return box, nil
}

func (e *Engine) measureLayers(n doc.Layers, availW, availH float64) (*MeasuredBox, error) {
	box := &MeasuredBox{Node: n}
	for _, child := range n.Children {
		cb, err := e.Measure(child, availW, availH)
		if err != nil {
			return nil, err
		}
		// Every layer shares the box origin; z-order is child order.
		box.Children = append(box.Children, cb)
		box.Offsets = append(box.Offsets, Offset{})
		if cb.Width > box.Width {
			box.Width = cb.Width
		}
		if cb.Height > box.Height {
			box.Height = cb.Height
		}
	}
	return box, nil
}

func (e *Engine) measureShowIf(n doc.ShowIf, availW, availH float64) (*MeasuredBox, error) {
	if !n.Cond {
		return &MeasuredBox{Node: n}, nil
	}
	child, err := e.Measure(n.Child, availW, availH)
	if err != nil {
		return nil, err
	}
	return &MeasuredBox{
		Node:     n,
		Width:    child.Width,
		Height:   child.Height,
		Children: []*MeasuredBox{child},
		Offsets:  []Offset{{}},
	}, nil
}

func (e *Engine) measureText(n doc.TextRun, availW float64) (*MeasuredBox, error) {
	lines, warns, err := e.shaper.Shape(n.Spans, availW)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		e.warn(w)
	}
	box := &MeasuredBox{Node: n, Lines: lines}
	for _, line := range lines {
		box.Height += line.Height
		if line.Width > box.Width {
			box.Width = line.Width
		}
	}
	if availW > 0 && box.Width > availW {
		// A single over-wide word may overflow its line; the box still
		// reports the offered width so parents keep containment.
		box.Width = availW
	}
	return box, nil
}

func (e *Engine) measureImage(n doc.Image, availW, availH float64) *MeasuredBox {
	box := &MeasuredBox{Node: n}
	if n.Source == nil || n.Width <= 0 || n.Height <= 0 {
		return box
	}
	// Intrinsic pixels at 1pt per pixel, scaled down to fit while
	// preserving the aspect ratio.
	w, h := n.Width, n.Height
	if w > availW {
		w = availW
		h = w * n.Height / n.Width
	}
	if !math.IsInf(availH, 1) && availH > 0 && h > availH {
		h = availH
		w = h * n.Width / n.Height
	}
	box.Width, box.Height = w, h
	return box
}
