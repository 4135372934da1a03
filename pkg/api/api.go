// Package api is the high level entry point: it wires the markup
// translator, layout engine, flow engine and PDF surface into one
// converter.
package api

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/azbo/typeset/internal/layout"
	"github.com/azbo/typeset/internal/markup"
	"github.com/azbo/typeset/internal/pagination"
	"github.com/azbo/typeset/internal/render"
	"github.com/azbo/typeset/internal/render/pdf"
	"github.com/azbo/typeset/internal/res"
	"github.com/azbo/typeset/logging"
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// Converter turns markup or box trees into paginated documents.
type Converter struct {
	options  Options
	loader   *res.Loader
	warnings []doc.Warning
}

// New creates a converter with default options.
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a converter with the specified options.
func NewWithOptions(options Options) *Converter {
	loader := res.NewLoader("")
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return &Converter{options: options, loader: loader}
}

// Warnings returns the non-fatal diagnostics recorded by the last
// conversion.
func (c *Converter) Warnings() []doc.Warning {
	return c.warnings
}

// pageSize returns the configured size with orientation applied.
func (c *Converter) pageSize() page.Size {
	size := c.options.PageSize
	switch c.options.Orientation {
	case OrientationLandscape:
		if size.Width < size.Height {
			size.Width, size.Height = size.Height, size.Width
		}
	default:
		if size.Width > size.Height {
			size.Width, size.Height = size.Height, size.Width
		}
	}
	return size
}

// TranslateMarkup converts a markup string into a box tree without
// laying it out.
func (c *Converter) TranslateMarkup(markupText string) (doc.Node, []doc.Warning, error) {
	t := markup.NewTranslator(c.loader)
	return t.Translate(markupText)
}

// Layout measures a box tree and assigns it to pages. The returned
// pages carry positioned draw commands ready for any Surface.
func (c *Converter) Layout(root doc.Node) ([]*page.Page, []doc.Warning, error) {
	var warnings []doc.Warning

	size := c.pageSize()
	contentW := size.Width - c.options.Margins.Left - c.options.Margins.Right
	contentH := size.Height - c.options.Margins.Top - c.options.Margins.Bottom
	if contentW <= 0 || contentH <= 0 {
		return nil, nil, fmt.Errorf("page %gx%g leaves no content area inside margins", size.Width, size.Height)
	}

	metrics := c.options.Metrics
	if metrics == nil {
		metrics = pdf.NewMetrics()
	}

	engine := layout.NewEngine(metrics)
	measured, err := engine.Measure(doc.Normalize(root), contentW, layout.Unbounded)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, engine.Warnings()...)

	flow := pagination.NewFlow(pagination.Options{
		Size:            size,
		Margins:         c.options.Margins,
		ShrinkOversized: c.options.ShrinkOversized,
	})
	pages := flow.Paginate(measured)
	warnings = append(warnings, flow.Warnings()...)

	logging.Logger().Debug("layout complete", "pages", len(pages), "warnings", len(warnings))
	return pages, warnings, nil
}

// RenderTo replays finished pages onto a surface.
func (c *Converter) RenderTo(pages []*page.Page, s page.Surface) error {
	return render.Render(pages, s)
}

// ConvertNode lays out a box tree and writes the resulting PDF.
func (c *Converter) ConvertNode(root doc.Node, output io.Writer) error {
	pages, warnings, err := c.Layout(root)
	if err != nil {
		return err
	}
	c.warnings = warnings
	return c.writePDF(pages, output)
}

// Convert converts markup to PDF and writes the result to output.
func (c *Converter) Convert(markupText string, output io.Writer) error {
	root, warnings, err := c.TranslateMarkup(markupText)
	if err != nil {
		return err
	}
	pages, layoutWarnings, err := c.Layout(root)
	if err != nil {
		return err
	}
	c.warnings = append(warnings, layoutWarnings...)
	return c.writePDF(pages, output)
}

// ConvertFile converts a markup file to PDF at outputPath. Relative
// image references resolve against the input file's directory.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	c.loader = res.NewLoader(inputPath)
	for _, path := range c.options.ResourcePaths {
		c.loader.AddSearchPath(path)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := c.Convert(string(content), out); err != nil {
		return err
	}
	return out.Close()
}

// ConvertURL fetches markup from url and converts it to PDF at
// outputPath. Relative image references resolve against the URL.
func (c *Converter) ConvertURL(url, outputPath string) error {
	c.loader = res.NewLoader(url)
	for _, path := range c.options.ResourcePaths {
		c.loader.AddSearchPath(path)
	}
	resource, err := c.loader.Load(url)
	if err != nil {
		return fmt.Errorf("load markup: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := c.Convert(resource.GetString(), out); err != nil {
		return err
	}
	return out.Close()
}

// ConvertBytes converts markup bytes to PDF bytes.
func (c *Converter) ConvertBytes(markupText []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Convert(string(markupText), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Converter) writePDF(pages []*page.Page, output io.Writer) error {
	surface := pdf.NewSurface(pdf.DocumentInfo{
		Title:    c.options.Title,
		Author:   c.options.Author,
		Subject:  c.options.Subject,
		Keywords: c.options.Keywords,
	})
	if err := render.Render(pages, surface); err != nil {
		return err
	}
	return surface.Output(output)
}
