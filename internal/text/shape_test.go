package text_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azbo/typeset/internal/text"
	"github.com/azbo/typeset/pkg/doc"
)

// gridMetrics gives every rune a 10pt advance so break positions are
// easy to predict.
type gridMetrics struct{}

func (gridMetrics) Measure(f doc.FontSpec, s string) (doc.Measurement, error) {
	m := doc.Measurement{Ascent: 8, Descent: 2}
	for range s {
		m.Advances = append(m.Advances, 10)
	}
	return m, nil
}

type failingMetrics struct{ err error }

func (f failingMetrics) Measure(doc.FontSpec, string) (doc.Measurement, error) {
	return doc.Measurement{}, f.err
}

func lineText(l text.Line) string {
	var s string
	for _, p := range l.Pieces {
		s += p.Span.Text
	}
	return s
}

func TestShapeWrapsAtWhitespace(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, warns, err := s.Shape([]doc.InlineSpan{doc.Span("aaa bbb ccc")}, 75)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, lines, 2)
	assert.Equal(t, "aaa bbb", lineText(lines[0]))
	assert.Equal(t, "ccc", lineText(lines[1]))
	assert.InDelta(t, 70, lines[0].Width, 1e-9)
	assert.InDelta(t, 30, lines[1].Width, 1e-9)
}

func TestShapeTrimsTrailingSpaceAtBreak(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("aaa bbb")}, 45)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "aaa", lineText(lines[0]))
	assert.InDelta(t, 30, lines[0].Width, 1e-9)
}

func TestShapeOverwideWordOverflowsAlone(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("a extraordinarily b")}, 50)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "extraordinarily", lineText(lines[1]))
	assert.Greater(t, lines[1].Width, 50.0, "over-wide word keeps its full width")
}

func TestShapeHardBreak(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("a\nb")}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lineText(lines[0]))
	assert.Equal(t, "b", lineText(lines[1]))
}

func TestShapeConsecutiveBreaksKeepEmptyLine(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("a\n\nb", doc.WithSize(10))}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Empty(t, lines[1].Pieces)
	assert.InDelta(t, 12, lines[1].Height, 1e-9, "empty line uses the span's line height")
}

func TestShapeLineMetrics(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("word")}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 12, lines[0].Height, 1e-9)
	assert.InDelta(t, 8, lines[0].Baseline, 1e-9)
}

func TestShapeMergesSameStylePieces(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("ab"), doc.Span("cd")}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Pieces, 1)
	assert.Equal(t, "abcd", lines[0].Pieces[0].Span.Text)
}

func TestShapeKeepsStyledPiecesSeparate(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{
		doc.Span("plain "),
		doc.Span("bold", doc.WithBold()),
	}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Pieces, 2)
	assert.False(t, lines[0].Pieces[0].Span.Bold)
	assert.True(t, lines[0].Pieces[1].Span.Bold)
}

func TestShapeDegenerateWidthWarns(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, warns, err := s.Shape([]doc.InlineSpan{doc.Span("hi")}, 0)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, doc.WarnDegenerateWidth, warns[0].Kind)
	assert.NotEmpty(t, lines)
}

func TestShapeDeterministic(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	spans := []doc.InlineSpan{doc.Span("the quick brown fox jumps over the lazy dog")}
	a, _, err := s.Shape(spans, 123)
	require.NoError(t, err)
	b, _, err := s.Shape(spans, 123)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestShapeMetricsFailureIsResourceError(t *testing.T) {
	cause := errors.New("font table corrupt")
	s := text.NewShaper(failingMetrics{err: cause})
	_, _, err := s.Shape([]doc.InlineSpan{doc.Span("hi")}, 100)
	require.Error(t, err)
	var re *doc.ResourceError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, cause)
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want text.Direction
	}{
		{"latin", "hello", text.LTR},
		{"hebrew", "שלום", text.RTL},
		{"arabic", "مرحبا", text.RTL},
		{"digits only", "1234", text.Neutral},
		{"empty", "", text.Neutral},
		{"mixed rtl dominant", "ab שלום", text.RTL},
		{"mixed ltr dominant", "hello שם", text.LTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.DetectDirection(tt.in))
		})
	}
}

func TestShapeMarksRTLLines(t *testing.T) {
	s := text.NewShaper(gridMetrics{})
	lines, _, err := s.Shape([]doc.InlineSpan{doc.Span("שלום עולם")}, 500)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].RTL)
}
