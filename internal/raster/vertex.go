package raster

import "scanline-renderer/internal/fixed"

// VertexBuffer holds the projected, fixed-point positions of one mesh.
// Triangles refer to entries by index; the buffer is sized once and updated
// in place every frame.
type VertexBuffer []fixed.Vec

func NewVertexBuffer(n int) VertexBuffer {
	return make(VertexBuffer, n)
}

// SetFloat stores a device-space position, converting it to fixed point.
func (vb VertexBuffer) SetFloat(i int, x, y float64) {
	vb[i] = fixed.FromPoint(x, y)
}

// SetFloat32 is SetFloat for float32 device coordinates.
func (vb VertexBuffer) SetFloat32(i int, x, y float32) {
	vb[i] = fixed.Vec{X: fixed.FromFloat32(x), Y: fixed.FromFloat32(y)}
}

func (vb VertexBuffer) Len() int { return len(vb) }
