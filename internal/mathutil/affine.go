package mathutil

import "math"

// Affine is a 2D homogeneous transform stored row-major as the top two rows
// of a 3×3 matrix: [a b c; d e f; 0 0 1]. Value type.
type Affine [6]float64

func Identity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

func Translate(x, y float64) Affine {
	return Affine{1, 0, x, 0, 1, y}
}

func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Rotate returns a rotation by a radians. With y pointing down a positive
// angle turns clockwise on screen.
func Rotate(a float64) Affine {
	c, s := math.Cos(a), math.Sin(a)
	return Affine{c, -s, 0, s, c, 0}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Mul returns a × b: b is applied first.
func Mul(a, b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Apply32 transforms (x, y) in single precision.
func (m Affine) Apply32(x, y float32) (float32, float32) {
	return float32(m[0])*x + float32(m[1])*y + float32(m[2]),
		float32(m[3])*x + float32(m[4])*y + float32(m[5])
}

func (m Affine) Det() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Inverse returns the inverse transform, or the identity when m is singular.
func (m Affine) Inverse() Affine {
	d := m.Det()
	if d == 0 {
		return Identity()
	}
	inv := 1 / d
	a, b := m[4]*inv, -m[1]*inv
	c, e := -m[3]*inv, m[0]*inv
	return Affine{
		a, b, -(a*m[2] + b*m[5]),
		c, e, -(c*m[2] + e*m[5]),
	}
}

// Fit maps the box [minX,maxX]×[minY,maxY] into a w×h viewport with margin
// pixels on every side, preserving aspect ratio and centering the result.
// flipY turns a y-up source (map north) into y-down device space.
func Fit(minX, minY, maxX, maxY float64, w, h int, margin float64, flipY bool) Affine {
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1e-9 {
		spanX = 1e-9
	}
	if spanY < 1e-9 {
		spanY = 1e-9
	}
	s := math.Min((float64(w)-2*margin)/spanX, (float64(h)-2*margin)/spanY)
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	sy := s
	if flipY {
		sy = -s
	}
	return Mul(Translate(float64(w)/2, float64(h)/2), Mul(Scale(s, sy), Translate(-cx, -cy)))
}
