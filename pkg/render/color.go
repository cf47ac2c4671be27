package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color.
type Color = color.NRGBA

// namedColors covers the color names accepted by --highlight-multi.
var namedColors = map[string]Color{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {214, 39, 40, 255},
	"green":   {44, 160, 44, 255},
	"blue":    {31, 119, 180, 255},
	"orange":  {255, 127, 14, 255},
	"purple":  {148, 103, 189, 255},
	"brown":   {140, 86, 75, 255},
	"pink":    {227, 119, 194, 255},
	"gray":    {127, 127, 127, 255},
	"grey":    {127, 127, 127, 255},
	"olive":   {188, 189, 34, 255},
	"cyan":    {23, 190, 207, 255},
	"magenta": {255, 0, 255, 255},
	"yellow":  {255, 215, 0, 255},
	"teal":    {0, 128, 128, 255},
	"navy":    {0, 0, 128, 255},
}

// ParseColor parses a color name or a #rgb, #rrggbb or #rrggbbaa hex string.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexColor formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func HexColor(c Color) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
