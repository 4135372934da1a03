// Package pdf implements the page surface and the font metrics
// provider on top of fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/azbo/typeset/logging"
	"github.com/azbo/typeset/pkg/doc"
	"github.com/azbo/typeset/pkg/page"
)

// DocumentInfo carries the PDF metadata written to the output file.
type DocumentInfo struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// Surface renders drawing commands into a PDF document via fpdf. It is
// single-document and single-goroutine, like the layout run feeding it.
type Surface struct {
	pdf        *fpdf.Fpdf
	registered map[string]string
	started    bool
}

// NewSurface creates a PDF surface. Page sizes come from BeginPage, so
// documents with mixed page sizes are representable.
func NewSurface(info DocumentInfo) *Surface {
	p := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: page.SizeA4.Width, Ht: page.SizeA4.Height},
	})
	p.SetAutoPageBreak(false, 0)
	p.SetTitle(info.Title, true)
	p.SetAuthor(info.Author, true)
	p.SetSubject(info.Subject, true)
	p.SetKeywords(info.Keywords, true)
	creator := info.Creator
	if creator == "" {
		creator = "typeset"
	}
	p.SetCreator(creator, true)
	p.SetProducer(creator, true)
	return &Surface{pdf: p, registered: make(map[string]string)}
}

// BeginPage starts a new page of the given size in points.
func (s *Surface) BeginPage(width, height float64) error {
	orient := "P"
	if width > height {
		orient = "L"
	}
	s.pdf.AddPageFormat(orient, fpdf.SizeType{Wd: width, Ht: height})
	s.started = true
	return s.pdf.Error()
}

// DrawText draws one styled run at its baseline position.
func (s *Surface) DrawText(cmd page.DrawText) error {
	s.pdf.SetFont(cmd.Font.Family, fontStyle(cmd.Font, cmd.Underline), cmd.Font.Size)
	s.pdf.SetTextColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	s.pdf.Text(cmd.Pos.X, cmd.Pos.Y, cmd.Text)
	return s.pdf.Error()
}

// FillRect fills a rectangle.
func (s *Surface) FillRect(cmd page.FillRect) error {
	s.pdf.SetFillColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	s.pdf.Rect(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, "F")
	return s.pdf.Error()
}

// StrokeRect strokes a rectangle outline.
func (s *Surface) StrokeRect(cmd page.StrokeRect) error {
	s.pdf.SetDrawColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	s.pdf.SetLineWidth(cmd.Width)
	s.pdf.Rect(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, "D")
	return s.pdf.Error()
}

// DrawImage places an image source scaled into a rectangle. Sources in
// formats fpdf cannot embed directly (bmp, tiff, webp, svg) are decoded
// and re-encoded as PNG first.
func (s *Surface) DrawImage(cmd page.DrawImage) error {
	name, err := s.register(cmd.Source)
	if err != nil {
		return err
	}
	s.pdf.ImageOptions(name, cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, false,
		fpdf.ImageOptions{ImageType: s.registered[name]}, 0, "")
	return s.pdf.Error()
}

// EndPage finishes the current page. fpdf closes pages implicitly, so
// this only validates surface state.
func (s *Surface) EndPage() error {
	if !s.started {
		return fmt.Errorf("pdf: EndPage without BeginPage")
	}
	return s.pdf.Error()
}

// Output writes the finished document.
func (s *Surface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// OutputFile writes the finished document to a file.
func (s *Surface) OutputFile(path string) error {
	return s.pdf.OutputFileAndClose(path)
}

// register loads a pixel source into fpdf once and returns its name.
func (s *Surface) register(src doc.ImageSource) (string, error) {
	name := src.Key()
	if _, ok := s.registered[name]; ok {
		return name, nil
	}
	data, err := src.Bytes()
	if err != nil {
		return "", fmt.Errorf("load image %q: %w", name, err)
	}
	data, kind, err := normalizeImage(data)
	if err != nil {
		return "", fmt.Errorf("decode image %q: %w", name, err)
	}
	s.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
	if err := s.pdf.Error(); err != nil {
		return "", err
	}
	s.registered[name] = kind
	logging.Logger().Debug("registered image", "name", name, "type", kind, "bytes", len(data))
	return name, nil
}

// normalizeImage returns data in a format fpdf embeds natively, along
// with the fpdf image type string.
func normalizeImage(data []byte) ([]byte, string, error) {
	if isSVG(data) {
		img, err := rasterizeSVG(data)
		if err != nil {
			return nil, "", err
		}
		return encodePNG(img)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	switch format {
	case "png":
		return data, "PNG", nil
	case "jpeg":
		return data, "JPG", nil
	case "gif":
		return data, "GIF", nil
	default:
		// bmp, tiff and webp decode through the decoders the resource
		// loader registers; fpdf only embeds png/jpg/gif.
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		return encodePNG(img)
	}
}

func encodePNG(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "PNG", nil
}

func isSVG(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	head := string(data[:n])
	return strings.Contains(head, "<svg")
}

// fontStyle maps a face to fpdf's style string.
func fontStyle(f doc.FontSpec, underline bool) string {
	style := ""
	if f.Bold {
		style += "B"
	}
	if f.Italic {
		style += "I"
	}
	if underline {
		style += "U"
	}
	return style
}

// Metrics measures text with fpdf's core font metrics. It keeps a
// hidden document for measurement and serializes access, so one
// provider can back concurrent layout runs.
type Metrics struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
}

// NewMetrics creates an fpdf-backed font metrics provider.
func NewMetrics() *Metrics {
	p := fpdf.New("P", "pt", "A4", "")
	p.AddPage()
	return &Metrics{pdf: p}
}

// Measure returns per-rune advances and line metrics for the face.
func (m *Metrics) Measure(f doc.FontSpec, text string) (doc.Measurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	style := fontStyle(f, false)
	m.pdf.SetFont(f.Family, style, f.Size)
	if err := m.pdf.Error(); err != nil {
		return doc.Measurement{}, err
	}

	out := doc.Measurement{Advances: make([]float64, 0, len(text))}
	for _, r := range text {
		out.Advances = append(out.Advances, m.pdf.GetStringWidth(string(r)))
	}

	desc := m.pdf.GetFontDesc(f.Family, style)
	if desc.Ascent != 0 || desc.Descent != 0 {
		out.Ascent = float64(desc.Ascent) / 1000 * f.Size
		if desc.Descent < 0 {
			out.Descent = float64(-desc.Descent) / 1000 * f.Size
		} else {
			out.Descent = float64(desc.Descent) / 1000 * f.Size
		}
	} else {
		out.Ascent = f.Size * 0.8
		out.Descent = f.Size * 0.2
	}
	return out, m.pdf.Error()
}
