package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azbo/typeset/pkg/page"
)

func TestContentArea(t *testing.T) {
	p := &page.Page{
		Size:    page.SizeA4,
		Margins: page.Margins{Top: 72, Right: 36, Bottom: 72, Left: 36},
	}
	assert.InDelta(t, 595.28-72, p.ContentWidth(), 1e-9)
	assert.InDelta(t, 841.89-144, p.ContentHeight(), 1e-9)
}

func TestStandardSizesArePortrait(t *testing.T) {
	for _, s := range []page.Size{page.SizeA3, page.SizeA4, page.SizeA5, page.SizeLetter, page.SizeLegal} {
		assert.Greater(t, s.Height, s.Width, s.Name)
		assert.NotEmpty(t, s.Name)
	}
}
