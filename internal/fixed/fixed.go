package fixed

import (
	"math"

	"github.com/chewxy/math32"
)

// Fixed-point layout: coordinates carry Shift fractional bits, so One is a
// whole pixel and Half is the offset from a pixel's edge to its center.
const (
	Shift = 4
	One   = 1 << Shift
	Half  = 1 << (Shift - 1)
	Mask  = One - 1
)

// Vec is a 2D device-space coordinate in fixed point (y grows downwards).
type Vec struct {
	X, Y int32
}

// FromFloat converts a continuous coordinate to fixed point, rounding to
// the nearest sub-pixel step. Range checks are the caller's job.
func FromFloat(v float64) int32 {
	return int32(math.Round(v * One))
}

// FromFloat32 is FromFloat for float32 device coordinates.
func FromFloat32(v float32) int32 {
	return int32(math32.Round(v * One))
}

// FromPoint converts a device-space point.
func FromPoint(x, y float64) Vec {
	return Vec{FromFloat(x), FromFloat(y)}
}

// FromPixel returns the fixed-point coordinate of a whole pixel corner.
func FromPixel(x, y int) Vec {
	return Vec{int32(x) << Shift, int32(y) << Shift}
}

// Int returns the pixel index containing v.
func Int(v int32) int32 { return v >> Shift }

// Frac returns the sub-pixel part of v.
func Frac(v int32) int32 { return v & Mask }

// Float converts back to a continuous coordinate.
func Float(v int32) float64 { return float64(v) / One }

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y}
}

// Cross returns a.Y*b.X - a.X*b.Y. It is positive when b lies
// counter-clockwise of a in a y-down frame.
func (a Vec) Cross(b Vec) int64 {
	return int64(a.Y)*int64(b.X) - int64(a.X)*int64(b.Y)
}

// Pixel returns the integer pixel containing the coordinate.
func (a Vec) Pixel() (x, y int) {
	return int(Int(a.X)), int(Int(a.Y))
}

// FloorDiv divides rounding towards negative infinity. d must be positive.
func FloorDiv(n, d int64) int64 {
	q := n / d
	if n%d < 0 {
		q--
	}
	return q
}

// FirstCenterRow returns the first pixel row whose vertical center lies at
// or below y.
func FirstCenterRow(y int32) int32 {
	return (y - Half + Mask) >> Shift
}
