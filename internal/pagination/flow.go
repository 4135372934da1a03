// Package pagination assigns measured content to a sequence of
// fixed-size pages. It owns the flow cursor; no other component reads
// or writes it.
package pagination

import (
	"fmt"

	"github.com/azbo/typeset/internal/layout"
	"github.com/azbo/typeset/internal/render"
	"github.com/azbo/typeset/logging"
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// Options configure the flow engine for one document.
type Options struct {
	Size    page.Size
	Margins page.Margins

	// ShrinkOversized scales an image box taller than a page's content
	// height down to fit instead of letting it overflow.
	ShrinkOversized bool
}

// flowCursor is the engine's position state: the page being filled, the
// vertical offset within its content area, and the height left on it.
// It is threaded explicitly through placement and never shared.
type flowCursor struct {
	pageIndex int
	yOffset   float64
	remaining float64
}

// Flow places top-level boxes onto pages in document order.
type Flow struct {
	opts     Options
	warnings []doc.Warning
}

// NewFlow creates a flow engine for the given page geometry.
func NewFlow(opts Options) *Flow {
	return &Flow{opts: opts}
}

// Warnings returns the diagnostics recorded during pagination.
func (f *Flow) Warnings() []doc.Warning { return f.warnings }

// Paginate runs the flow state machine over the root box and returns
// the finalized page list. Each top-level box is placed exactly once; a
// page is sealed as soon as the cursor moves past it.
//
// Transitions: a box that fits the remaining height is placed and the
// cursor advances. A box that does not fit seals the current page,
// opens a fresh one, and is retried there. PageBreak boxes force the
// new-page transition unconditionally. An atomic box taller than a full
// content height is placed alone on a fresh page and overflows it;
// content is never cropped or dropped.
func (f *Flow) Paginate(root *layout.MeasuredBox) []*page.Page {
	contentH := f.opts.Size.Height - f.opts.Margins.Top - f.opts.Margins.Bottom

	pages := []*page.Page{f.newPage()}
	cur := flowCursor{pageIndex: 0, yOffset: 0, remaining: contentH}

	for _, box := range flatten(root) {
		if box.IsPageBreak() {
			pages = append(pages, f.newPage())
			cur = flowCursor{pageIndex: cur.pageIndex + 1, remaining: contentH}
			continue
		}
		if box.Height == 0 && box.Width == 0 && len(box.Children) == 0 && box.Table == nil {
			// Elided content (ShowIf false, empty placeholders).
			continue
		}

		box = f.maybeShrink(box, contentH)

		if box.Height > cur.remaining {
			if cur.yOffset > 0 {
				// Page full: seal and retry on a fresh page.
				pages = append(pages, f.newPage())
				cur = flowCursor{pageIndex: cur.pageIndex + 1, remaining: contentH}
			}
			if box.Height > contentH {
				f.warn(doc.Warning{
					Kind:   doc.WarnOversizedBox,
					Detail: fmt.Sprintf("box height %.2f exceeds page content height %.2f, overflowing", box.Height, contentH),
				})
			}
		}

		p := pages[cur.pageIndex]
		cmds := render.Commands(box, f.opts.Margins.Left, f.opts.Margins.Top+cur.yOffset)
		p.Commands = append(p.Commands, cmds...)
		cur.yOffset += box.Height
		cur.remaining -= box.Height
	}

	logging.Logger().Debug("pagination done", "pages", len(pages))
	return pages
}

func (f *Flow) newPage() *page.Page {
	return &page.Page{Size: f.opts.Size, Margins: f.opts.Margins}
}

func (f *Flow) warn(w doc.Warning) {
	f.warnings = append(f.warnings, w)
	logging.Logger().Debug("pagination warning", "kind", w.Kind.String(), "detail", w.Detail)
}

// maybeShrink scales an oversized image box down to the content height
// when the caller opted in. Only pure image boxes scale; composite
// boxes keep the overflow policy.
func (f *Flow) maybeShrink(box *layout.MeasuredBox, contentH float64) *layout.MeasuredBox {
	if !f.opts.ShrinkOversized || box.Height <= contentH {
		return box
	}
	img, ok := box.Node.(doc.Image)
	if !ok {
		return box
	}
	scale := contentH / box.Height
	return &layout.MeasuredBox{
		Node:   img,
		Width:  box.Width * scale,
		Height: contentH,
	}
}

// flatten returns the ordered top-level boxes of the document: the
// children of a root Column, or the root itself for any other node.
func flatten(root *layout.MeasuredBox) []*layout.MeasuredBox {
	if root == nil {
		return nil
	}
	if _, ok := root.Node.(doc.Column); ok {
		return root.Children
	}
	return []*layout.MeasuredBox{root}
}
