// Package text measures and line-breaks styled text runs against an
// available width using an external font metrics provider.
package text

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/azbo/typeset/pkg/doc"
)

// lineSpacing scales a face's ascent+descent into its line height.
const lineSpacing = 1.2

// Piece is a contiguous slice of one span placed on a single line. The
// embedded span's Text holds only this piece's characters.
type Piece struct {
	Span  doc.InlineSpan
	Width float64
}

// Line is one wrapped line of a text run.
type Line struct {
	Pieces   []Piece
	Width    float64
	Height   float64
	Baseline float64
	RTL      bool
}

// Shaper wraps spans into lines using the configured metrics provider.
type Shaper struct {
	Metrics doc.FontMetrics
}

// NewShaper creates a shaper backed by the given metrics provider.
func NewShaper(m doc.FontMetrics) *Shaper {
	return &Shaper{Metrics: m}
}

// token is a word, a run of spaces, or a hard break within one span.
type token struct {
	text  string
	span  doc.InlineSpan
	space bool
	brk   bool
}

// Shape greedily wraps the spans against availableWidth. Breaks happen
// only at whitespace; a single word wider than the available width is
// placed alone on its own line and allowed to overflow. Identical
// inputs always produce identical line breaks.
func (s *Shaper) Shape(spans []doc.InlineSpan, availableWidth float64) ([]Line, []doc.Warning, error) {
	var warnings []doc.Warning
	if availableWidth <= 0 {
		warnings = append(warnings, doc.Warning{
			Kind:   doc.WarnDegenerateWidth,
			Detail: fmt.Sprintf("text run offered width %.2f, measuring at width 1", availableWidth),
		})
		availableWidth = 1
	}

	tokens, err := tokenize(spans)
	if err != nil {
		return nil, warnings, err
	}

	var lines []Line
	cur := newLineBuilder()
	flush := func() {
		lines = append(lines, cur.build(s.fallbackStyle(spans)))
		cur = newLineBuilder()
	}

	for _, tok := range tokens {
		if tok.brk {
			flush()
			continue
		}
		w, err := s.measure(tok.span.Font(), tok.text)
		if err != nil {
			return nil, warnings, err
		}
		if tok.space {
			// Leading spaces on a fresh line are dropped.
			if !cur.empty() {
				cur.add(tok, w, s.Metrics)
			}
			continue
		}
		if !cur.empty() && cur.width+w > availableWidth {
			cur.trimTrailingSpace()
			flush()
		}
		cur.add(tok, w, s.Metrics)
	}
	if !cur.empty() {
		cur.trimTrailingSpace()
		flush()
	}
	if len(lines) == 0 {
		flush()
	}
	return lines, warnings, nil
}

// measure returns the total advance of text in the given face.
func (s *Shaper) measure(f doc.FontSpec, text string) (float64, error) {
	m, err := s.Metrics.Measure(f, text)
	if err != nil {
		return 0, &doc.ResourceError{Op: "measure text", Err: err}
	}
	total := 0.0
	for _, a := range m.Advances {
		total += a
	}
	return total, nil
}

// fallbackStyle supplies line metrics for lines that carry no pieces,
// such as the empty line produced by consecutive hard breaks.
func (s *Shaper) fallbackStyle(spans []doc.InlineSpan) doc.FontSpec {
	if len(spans) > 0 {
		return spans[0].Font()
	}
	return doc.FontSpec{Family: "Helvetica", Size: 12}
}

// lineBuilder accumulates pieces for the line under construction.
type lineBuilder struct {
	pieces   []Piece
	width    float64
	height   float64
	baseline float64
}

func newLineBuilder() *lineBuilder { return &lineBuilder{} }

func (b *lineBuilder) empty() bool { return len(b.pieces) == 0 }

func (b *lineBuilder) add(tok token, w float64, m doc.FontMetrics) {
	// Merge into the previous piece when the style is unchanged.
	if n := len(b.pieces); n > 0 && sameStyle(b.pieces[n-1].Span, tok.span) {
		b.pieces[n-1].Span.Text += tok.text
		b.pieces[n-1].Width += w
	} else {
		sp := tok.span
		sp.Text = tok.text
		b.pieces = append(b.pieces, Piece{Span: sp, Width: w})
	}
	b.width += w

	if mm, err := m.Measure(tok.span.Font(), ""); err == nil {
		h := (mm.Ascent + mm.Descent) * lineSpacing
		if h > b.height {
			b.height = h
		}
		if mm.Ascent > b.baseline {
			b.baseline = mm.Ascent
		}
	}
}

func (b *lineBuilder) trimTrailingSpace() {
	for len(b.pieces) > 0 {
		last := &b.pieces[len(b.pieces)-1]
		trimmed := strings.TrimRightFunc(last.Span.Text, unicode.IsSpace)
		if trimmed == last.Span.Text {
			return
		}
		if trimmed == "" {
			b.width -= last.Width
			b.pieces = b.pieces[:len(b.pieces)-1]
			continue
		}
		// Trailing spaces share the piece's per-rune advance closely
		// enough for right-edge trimming: re-proportion by rune count.
		ratio := float64(len([]rune(trimmed))) / float64(len([]rune(last.Span.Text)))
		b.width -= last.Width * (1 - ratio)
		last.Width *= ratio
		last.Span.Text = trimmed
		return
	}
}

func (b *lineBuilder) build(fallback doc.FontSpec) Line {
	line := Line{
		Pieces:   b.pieces,
		Width:    b.width,
		Height:   b.height,
		Baseline: b.baseline,
	}
	if line.Height == 0 {
		line.Height = fallback.Size * lineSpacing
		line.Baseline = fallback.Size * 0.8
	}
	var sb strings.Builder
	for _, p := range line.Pieces {
		sb.WriteString(p.Span.Text)
	}
	line.RTL = DetectDirection(sb.String()) == RTL
	return line
}

// tokenize splits spans into words, space runs, and hard breaks,
// preserving each token's originating style.
func tokenize(spans []doc.InlineSpan) ([]token, error) {
	var tokens []token
	for _, span := range spans {
		if span.Size <= 0 {
			span.Size = 12
		}
		if span.Family == "" {
			span.Family = "Helvetica"
		}
		runes := []rune(span.Text)
		for i := 0; i < len(runes); {
			if runes[i] == '\n' {
				tokens = append(tokens, token{span: span, brk: true})
				i++
				continue
			}
			isSpace := unicode.IsSpace(runes[i])
			j := i
			for j < len(runes) && runes[j] != '\n' && unicode.IsSpace(runes[j]) == isSpace {
				j++
			}
			tokens = append(tokens, token{text: string(runes[i:j]), span: span, space: isSpace})
			i = j
		}
	}
	return tokens, nil
}

// sameStyle reports whether two spans share one style (everything but
// the text itself).
func sameStyle(a, b doc.InlineSpan) bool {
	a.Text, b.Text = "", ""
	return a == b
}
