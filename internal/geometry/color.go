package geometry

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a normalized RGBA color. Two colors are equal only if all four
// components are exactly equal.
type Color [4]float32

// ParseHexColor parses #rgb, #rgba, #rrggbb and #rrggbbaa color strings
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}

	hex := s[1:]
	alpha := "ff"
	switch len(hex) {
	case 3:
	case 4:
		alpha = strings.Repeat(hex[3:], 2)
		hex = hex[:3]
	case 6:
	case 8:
		alpha = hex[6:]
		hex = hex[:6]
	default:
		return Color{}, false
	}

	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, false
	}

	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return Color{}, false
	}

	return Color{float32(rgb.R), float32(rgb.G), float32(rgb.B), float32(a) / 255}, true
}
