package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a flat RGB triangle color.
type Color struct {
	R, G, B uint8
}

// Pack bakes the color into a framebuffer cell with an opaque alpha byte.
// Little-endian byte order of the result is R, G, B, A.
func (c Color) Pack() uint32 {
	return 0xFF<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// Unpack is the inverse of Pack; the alpha byte is dropped.
func Unpack(p uint32) Color {
	return Color{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16)}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("raster: color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("raster: color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
