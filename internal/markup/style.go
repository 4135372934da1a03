package markup

import (
	"strconv"
	"strings"

	"github.com/azbo/typeset/pkg/doc"
)

// styleState is the inherited inline style at a point in the walk.
type styleState struct {
	Family    string
	Size      float64
	Color     doc.Color
	Bold      bool
	Italic    bool
	Underline bool
	Align     doc.Alignment
}

func defaultStyle() styleState {
	return styleState{Family: "Helvetica", Size: 12, Color: doc.Black}
}

func (s styleState) span(text string) doc.InlineSpan {
	return doc.InlineSpan{
		Text:      text,
		Family:    s.Family,
		Size:      s.Size,
		Color:     s.Color,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
	}
}

// declaration is one property-value pair from a style attribute.
type declaration struct {
	Property string
	Value    string
}

// parseDeclarations splits an inline style attribute into declarations.
// Invalid fragments are skipped without error.
func parseDeclarations(style string) []declaration {
	parts := strings.Split(style, ";")
	out := make([]declaration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
		if prop == "" || val == "" {
			continue
		}
		out = append(out, declaration{Property: prop, Value: val})
	}
	return out
}

// apply folds the recognized style properties into the state. The
// property set is closed; anything else is ignored without error.
func (s styleState) apply(style string) styleState {
	for _, d := range parseDeclarations(style) {
		switch d.Property {
		case "color":
			s.Color = doc.ParseColor(d.Value)
		case "font-size":
			if v := parseLength(d.Value, s.Size, 0); v > 0 {
				s.Size = v
			}
		case "font-weight":
			switch d.Value {
			case "bold", "bolder", "600", "700", "800", "900":
				s.Bold = true
			case "normal", "400":
				s.Bold = false
			}
		case "font-style":
			switch d.Value {
			case "italic", "oblique":
				s.Italic = true
			case "normal":
				s.Italic = false
			}
		case "text-decoration":
			switch d.Value {
			case "underline":
				s.Underline = true
			case "none":
				s.Underline = false
			}
		case "text-align":
			switch strings.ToLower(d.Value) {
			case "center":
				s.Align = doc.AlignCenter
			case "right", "end":
				s.Align = doc.AlignRight
			case "left", "start":
				s.Align = doc.AlignLeft
			}
		}
	}
	return s
}

// setsFontSize reports whether the style attribute carries a font-size
// declaration.
func setsFontSize(style string) bool {
	for _, d := range parseDeclarations(style) {
		if d.Property == "font-size" {
			return true
		}
	}
	return false
}

// parseLength parses a CSS length. Percentages resolve against
// containerSize; em values against the inherited font size via
// containerSize when resolving font-size itself.
func parseLength(value string, emBase, defaultValue float64) float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return defaultValue
	}
	switch {
	case strings.HasSuffix(v, "px"), strings.HasSuffix(v, "pt"):
		if f, err := strconv.ParseFloat(v[:len(v)-2], 64); err == nil {
			return f
		}
	case strings.HasSuffix(v, "em"):
		if f, err := strconv.ParseFloat(v[:len(v)-2], 64); err == nil {
			return f * emBase
		}
	case strings.HasSuffix(v, "%"):
		if f, err := strconv.ParseFloat(v[:len(v)-1], 64); err == nil {
			return emBase * f / 100
		}
	default:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// headingSizes maps h1..h6 to font sizes, following the conventional
// em scale at a 16pt base.
var headingSizes = map[string]float64{
	"h1": 32, "h2": 24, "h3": 18.7, "h4": 16, "h5": 13.3, "h6": 10.7,
}
