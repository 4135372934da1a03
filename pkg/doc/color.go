package doc

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color with 8-bit channels.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Gray  = Color{128, 128, 128}
)

// namedColors covers the CSS keyword colors the markup subset accepts.
var namedColors = map[string]Color{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"olive":   {128, 128, 0},
	"aqua":    {0, 255, 255},
	"cyan":    {0, 255, 255},
	"fuchsia": {255, 0, 255},
	"magenta": {255, 0, 255},
	"lime":    {0, 255, 0},
}

// ParseColor parses #RGB, #RRGGBB, rgb(r,g,b), or a CSS color keyword.
// Unrecognized values fall back to black.
func ParseColor(value string) Color {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Black
	}
	if strings.HasPrefix(v, "#") {
		if c, ok := parseHexColor(v); ok {
			return c
		}
		return Black
	}
	var r, g, b int
	if _, err := fmt.Sscanf(v, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return Color{clamp8(r), clamp8(g), clamp8(b)}
	}
	if _, err := fmt.Sscanf(v, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return Color{clamp8(r), clamp8(g), clamp8(b)}
	}
	if c, ok := namedColors[v]; ok {
		return c
	}
	return Black
}

// parseHexColor parses #RRGGBB or #RGB.
func parseHexColor(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 6:
		rv, err1 := strconv.ParseUint(s[0:2], 16, 8)
		gv, err2 := strconv.ParseUint(s[2:4], 16, 8)
		bv, err3 := strconv.ParseUint(s[4:6], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return Color{uint8(rv), uint8(gv), uint8(bv)}, true
		}
	case 3:
		rv, err1 := strconv.ParseUint(string([]byte{s[0], s[0]}), 16, 8)
		gv, err2 := strconv.ParseUint(string([]byte{s[1], s[1]}), 16, 8)
		bv, err3 := strconv.ParseUint(string([]byte{s[2], s[2]}), 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return Color{uint8(rv), uint8(gv), uint8(bv)}, true
		}
	}
	return Color{}, false
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
