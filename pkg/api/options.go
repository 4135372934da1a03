package api

import (
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// Options represents configuration for a document engine.
type Options struct {
	// Page geometry
	PageSize    page.Size
	Orientation Orientation
	Margins     page.Margins

	// ShrinkOversized scales oversized images down to one page instead
	// of letting them overflow.
	ShrinkOversized bool

	// Metrics overrides the font measurement backend. When nil the PDF
	// backend's own metrics are used.
	Metrics doc.FontMetrics

	// Resource paths searched for local images
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options.
type Option func(*Options)

// Orientation represents page orientation.
type Orientation string

const (
	// OrientationPortrait keeps height greater than width
	OrientationPortrait Orientation = "portrait"
	// OrientationLandscape keeps width greater than height
	OrientationLandscape Orientation = "landscape"
)

// DefaultOptions returns the default options: A4 portrait with one inch
// margins.
func DefaultOptions() Options {
	return Options{
		PageSize:    page.SizeA4,
		Orientation: OrientationPortrait,
		Margins:     page.Margins{Top: 72, Right: 72, Bottom: 72, Left: 72},
	}
}

// WithPageSize sets the page size.
func WithPageSize(size page.Size) Option {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithOrientation sets the page orientation.
func WithOrientation(orientation Orientation) Option {
	return func(o *Options) {
		o.Orientation = orientation
	}
}

// WithMargins sets the page margins.
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.Margins = page.Margins{Top: top, Right: right, Bottom: bottom, Left: left}
	}
}

// WithShrinkOversized scales images taller than a page down to fit
// instead of overflowing.
func WithShrinkOversized() Option {
	return func(o *Options) {
		o.ShrinkOversized = true
	}
}

// WithFontMetrics sets the font measurement backend.
func WithFontMetrics(m doc.FontMetrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithResourcePath adds a path to search for images.
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author.
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject.
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords.
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}
