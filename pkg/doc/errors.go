package doc

import "fmt"

// MarkupError reports malformed markup. It is the only fatal condition
// in translation; Offset is the byte position of the offending token.
type MarkupError struct {
	Offset int
	Msg    string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup: %s at offset %d", e.Msg, e.Offset)
}

// ResourceError reports an irrecoverable collaborator failure (font
// metrics provider or page surface). It aborts the in-progress document;
// no partial page list is returned.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource: %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// WarningKind classifies non-fatal layout diagnostics.
type WarningKind int

const (
	// WarnDegenerateWidth marks a text run measured against a width of
	// one point because the offered width was zero or negative.
	WarnDegenerateWidth WarningKind = iota
	// WarnImageUnresolved marks an image source that could not be
	// resolved; the image laid out as a zero-size placeholder.
	WarnImageUnresolved
	// WarnTableShrink marks fixed table columns that were shrunk
	// proportionally to fit the available width.
	WarnTableShrink
	// WarnOversizedBox marks an atomic box taller than a page's content
	// height that was placed on its own page and allowed to overflow.
	WarnOversizedBox
)

func (k WarningKind) String() string {
	switch k {
	case WarnDegenerateWidth:
		return "degenerate-width"
	case WarnImageUnresolved:
		return "image-unresolved"
	case WarnTableShrink:
		return "table-shrink"
	case WarnOversizedBox:
		return "oversized-box"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal diagnostic recorded during translation or
// layout. Warnings never stop layout; they are returned as a side list.
type Warning struct {
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
