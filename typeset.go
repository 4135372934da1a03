// Package typeset composes box trees or an HTML subset into paginated
// PDF documents. This file re-exports the public API so callers can
// import the module root alone.
package typeset

import (
	"github.com/azbo/typeset/pkg/api"
	"github.com/azbo/typeset/pkg/page"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type Orientation = api.Orientation

func New(opts ...Option) *Converter             { return api.New(opts...) }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize        = api.WithPageSize
	WithOrientation     = api.WithOrientation
	WithMargins         = api.WithMargins
	WithShrinkOversized = api.WithShrinkOversized
	WithFontMetrics     = api.WithFontMetrics
	WithResourcePath    = api.WithResourcePath
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
)

var (
	SizeA3     = page.SizeA3
	SizeA4     = page.SizeA4
	SizeA5     = page.SizeA5
	SizeLetter = page.SizeLetter
	SizeLegal  = page.SizeLegal
)

const (
	OrientationPortrait  = api.OrientationPortrait
	OrientationLandscape = api.OrientationLandscape
)
