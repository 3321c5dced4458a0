package daub

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Default colors of the painting surface.
var (
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.NRGBA{A: 0xff}
)

// ColorsMatch reports whether two colors are equal on all four channels, alpha included.
func ColorsMatch(c1, c2 color.NRGBA) bool {
	return c1.R == c2.R &&
		c1.G == c2.G &&
		c1.B == c2.B &&
		c1.A == c2.A
}

// ParseHexColor converts a hex color string to color.NRGBA.
// The supported forms are #rgb, #rrggbb and #rrggbbaa, the leading # being optional.
// Colors without an alpha component are fully opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats c as #rrggbb, or as #rrggbbaa when it is not fully opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
