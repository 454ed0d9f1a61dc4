package rendering

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGB24 constructs an opaque Color from a 0xRRGGBB value.
func RGB24(rgb uint32) Color {
	return Color(0xFF000000 | rgb&0x00FFFFFF)
}

// ParseHex parses "#RRGGBB" or "#AARRGGBB" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return RGB24(uint32(v)), nil
	case 8:
		return Color(v), nil
	default:
		return 0, fmt.Errorf("invalid color %q: want 6 or 8 hex digits", s)
	}
}

// Components returns the red, green, blue and alpha bytes.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// NRGBA converts the color for use with the image packages.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Alpha returns the alpha byte.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// WithAlpha returns a copy of the color with the given alpha (0-255).
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
