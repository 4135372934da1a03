// Package page defines the paginated output model: fixed-size pages of
// positioned drawing commands, and the Surface interface that turns
// those commands into real page content.
package page

import "github.com/azbo/typeset/pkg/doc"

// Size is a page size in points (1/72 inch).
type Size struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points.
var (
	SizeA3     = Size{Width: 841.89, Height: 1190.55, Name: "A3"}
	SizeA4     = Size{Width: 595.28, Height: 841.89, Name: "A4"}
	SizeA5     = Size{Width: 419.53, Height: 595.28, Name: "A5"}
	SizeLetter = Size{Width: 612.00, Height: 792.00, Name: "Letter"}
	SizeLegal  = Size{Width: 612.00, Height: 1008.00, Name: "Legal"}
)

// Margins are page margins in points.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Page is one finalized page: its geometry plus the positioned commands
// placed on it, in paint order. Pages are sealed by the flow engine and
// never mutated after the document's page list is returned.
type Page struct {
	Size     Size
	Margins  Margins
	Commands []Command
}

// ContentWidth returns the width available to content between margins.
func (p *Page) ContentWidth() float64 {
	return p.Size.Width - p.Margins.Left - p.Margins.Right
}

// ContentHeight returns the height available to content between margins.
func (p *Page) ContentHeight() float64 {
	return p.Size.Height - p.Margins.Top - p.Margins.Bottom
}

// Point is an absolute page position in points, origin top-left.
type Point struct {
	X, Y float64
}

// Rect is an absolute page rectangle in points, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Command is one drawing operation. Commands replay in slice order;
// later commands paint over earlier ones.
type Command interface {
	isCommand()
}

// DrawText draws a single styled text run at a baseline position.
type DrawText struct {
	Pos       Point
	Font      doc.FontSpec
	Color     doc.Color
	Text      string
	Underline bool
}

// FillRect fills a rectangle.
type FillRect struct {
	Rect  Rect
	Color doc.Color
}

// StrokeRect strokes a rectangle outline.
type StrokeRect struct {
	Rect  Rect
	Color doc.Color
	Width float64
}

// DrawImage places an image source scaled into a rectangle.
type DrawImage struct {
	Rect   Rect
	Source doc.ImageSource
}

func (DrawText) isCommand()   {}
func (FillRect) isCommand()   {}
func (StrokeRect) isCommand() {}
func (DrawImage) isCommand()  {}

// Surface receives finalized pages. For each page the renderer calls
// BeginPage, then one draw call per command in order, then EndPage. Any
// error aborts the document.
type Surface interface {
	BeginPage(width, height float64) error
	DrawText(cmd DrawText) error
	FillRect(cmd FillRect) error
	StrokeRect(cmd StrokeRect) error
	DrawImage(cmd DrawImage) error
	EndPage() error
}
