package render

import (
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// Render replays finalized pages onto a surface: BeginPage, each
// command in paint order, EndPage. The first surface failure aborts the
// document as a ResourceError.
func Render(pages []*page.Page, s page.Surface) error {
	for _, p := range pages {
		if err := s.BeginPage(p.Size.Width, p.Size.Height); err != nil {
			return &doc.ResourceError{Op: "begin page", Err: err}
		}
		for _, cmd := range p.Commands {
			if err := replay(s, cmd); err != nil {
				return &doc.ResourceError{Op: "draw", Err: err}
			}
		}
		if err := s.EndPage(); err != nil {
			return &doc.ResourceError{Op: "end page", Err: err}
		}
	}
	return nil
}

func replay(s page.Surface, cmd page.Command) error {
	switch c := cmd.(type) {
	case page.DrawText:
		return s.DrawText(c)
	case page.FillRect:
		return s.FillRect(c)
	case page.StrokeRect:
		return s.StrokeRect(c)
	case page.DrawImage:
		return s.DrawImage(c)
	default:
		return nil
	}
}
