package text

import "golang.org/x/text/unicode/bidi"

// Direction is the dominant writing direction of a string.
type Direction int

const (
	LTR Direction = iota
	RTL
	Neutral
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		return "Neutral"
	}
}

// DetectDirection counts strong directional characters using the
// Unicode bidi classes and returns the dominant direction, or Neutral
// when no strong characters are present. Full bidi reordering is not
// performed; RTL-dominant lines are right-aligned by the emitter.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for i := 0; i < len(s); {
		p, sz := bidi.LookupString(s[i:])
		if sz == 0 {
			break
		}
		switch p.Class() {
		case bidi.L:
			ltr++
		case bidi.R, bidi.AL:
			rtl++
		}
		i += sz
	}
	if ltr == 0 && rtl == 0 {
		return Neutral
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}
