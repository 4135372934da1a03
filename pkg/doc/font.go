package doc

import "strings"

// FontSpec identifies a face for measurement and drawing. Family is one
// of the core families ("Helvetica", "Times", "Courier"); unknown
// families are mapped to Helvetica by NormalizeFamily.
type FontSpec struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Measurement is the result of measuring a string in a given face.
type Measurement struct {
	// Advances holds one advance width per rune, in points.
	Advances []float64
	Ascent   float64
	Descent  float64
}

// FontMetrics supplies glyph advances and line metrics for a face. It
// must be deterministic for identical inputs and safe for concurrent
// use when documents are laid out in parallel.
type FontMetrics interface {
	Measure(f FontSpec, text string) (Measurement, error)
}

// NormalizeFamily maps a CSS font-family list to a core family name.
func NormalizeFamily(value string) string {
	first := value
	if i := strings.IndexByte(value, ','); i >= 0 {
		first = value[:i]
	}
	first = strings.Trim(strings.TrimSpace(first), "'\"")
	switch strings.ToLower(first) {
	case "times", "times new roman", "serif":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}

// BuiltinMetrics is a deterministic approximation of the core font
// metrics, usable when no real metrics provider is wired in. Advances
// are proportional to the font size with a small per-class adjustment
// for narrow and wide glyphs.
type BuiltinMetrics struct{}

func (BuiltinMetrics) Measure(f FontSpec, text string) (Measurement, error) {
	m := Measurement{
		Advances: make([]float64, 0, len(text)),
		Ascent:   f.Size * 0.8,
		Descent:  f.Size * 0.2,
	}
	base := f.Size * 0.5
	if f.Family == "Courier" {
		base = f.Size * 0.6
	}
	if f.Bold {
		base *= 1.05
	}
	for _, r := range text {
		w := base
		if f.Family != "Courier" {
			switch {
			case strings.ContainsRune("iljI.,;:!|'", r):
				w = base * 0.5
			case strings.ContainsRune("mwMW", r):
				w = base * 1.5
			case r == ' ':
				w = base * 0.6
			}
		}
		m.Advances = append(m.Advances, w)
	}
	return m, nil
}
