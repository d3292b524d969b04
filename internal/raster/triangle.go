package raster

import "scanline-renderer/internal/fixed"

// Scratch holds the per-scanline span boundaries filled while scanning a
// triangle's edges. One Scratch may back every triangle of a mesh as long as
// they are drawn one at a time.
type Scratch struct {
	startX []int32
	endX   []int32
}

// NewScratch allocates boundary arrays for a framebuffer of the given height.
func NewScratch(height int) *Scratch {
	return &Scratch{
		startX: make([]int32, height),
		endX:   make([]int32, height),
	}
}

// Resize re-allocates the arrays when the framebuffer height changes.
func (s *Scratch) Resize(height int) {
	if len(s.startX) == height {
		return
	}
	s.startX = make([]int32, height)
	s.endX = make([]int32, height)
}

// Height returns the number of scanlines the scratch arrays cover.
func (s *Scratch) Height() int { return len(s.startX) }

// Triangle is a flat-shaded triangle referring to three entries of a
// VertexBuffer. Front faces wind counter-clockwise with y pointing down.
type Triangle struct {
	va, vb, vc int
	scratch    *Scratch
	shared     bool
}

// NewTriangle creates a triangle owning its scratch arrays.
func NewTriangle(indices [3]int, height int) *Triangle {
	return &Triangle{
		va:      indices[0],
		vb:      indices[1],
		vc:      indices[2],
		scratch: NewScratch(height),
	}
}

// NewSharedTriangle creates a triangle drawing through s. The owner of s is
// responsible for resizing it.
func NewSharedTriangle(indices [3]int, s *Scratch) *Triangle {
	return &Triangle{
		va:      indices[0],
		vb:      indices[1],
		vc:      indices[2],
		scratch: s,
		shared:  true,
	}
}

// Indices returns the triangle's vertex indices.
func (t *Triangle) Indices() [3]int {
	return [3]int{t.va, t.vb, t.vc}
}

// Resize adapts owned scratch arrays to a new framebuffer height. Shared
// scratch is left to its owner.
func (t *Triangle) Resize(height int) {
	if !t.shared {
		t.scratch.Resize(height)
	}
}

// FrontFacing reports whether the triangle has positive area under the
// counter-clockwise, y-down convention. Back faces and degenerate triangles
// are not drawn.
func (t *Triangle) FrontFacing(vb VertexBuffer) bool {
	return frontFacing(vb[t.va], vb[t.vb], vb[t.vc])
}

func frontFacing(v0, v1, v2 fixed.Vec) bool {
	return v1.Sub(v0).Cross(v2.Sub(v0)) > 0
}

// Draw fills the triangle with c. Back-facing and degenerate triangles draw
// nothing. Vertices must already lie inside the framebuffer.
func (t *Triangle) Draw(fb *FrameBuffer, vb VertexBuffer, c Color) {
	t.draw(fb, vb, c.Pack())
}

type edge struct {
	start, end fixed.Vec
	buf        []int32
}

// draw returns the number of cells written, and false when the triangle
// was culled.
func (t *Triangle) draw(fb *FrameBuffer, vb VertexBuffer, packed uint32) (int, bool) {
	if debugChecks {
		t.checkContract(fb, vb)
	}
	v0, v1, v2 := vb[t.va], vb[t.vb], vb[t.vc]
	if !frontFacing(v0, v1, v2) {
		return 0, false
	}
	s := t.scratch

	var edges [3]edge
	n := 0
	n = classify(&edges, n, v0, v1, s)
	n = classify(&edges, n, v1, v2, s)
	n = classify(&edges, n, v2, v0, s)

	// Upper edges first: the lower edge of a two-edge chain then owns the
	// row of the vertex they share.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && edges[j].start.Y < edges[j-1].start.Y; j-- {
			edges[j], edges[j-1] = edges[j-1], edges[j]
		}
	}
	for i := 0; i < n; i++ {
		scanEdge(edges[i].start, edges[i].end, edges[i].buf)
	}

	ymin := int(fixed.Int(min(v0.Y, v1.Y, v2.Y)))
	ymax := int(fixed.Int(max(v0.Y, v1.Y, v2.Y)))

	// Top-left rule: the first row and the first column of every span are
	// left to the neighbouring triangle.
	pixels := 0
	for y := ymin + 1; y <= ymax; y++ {
		x0 := int(fixed.Int(s.startX[y])) + 1
		x1 := int(fixed.Int(s.endX[y]))
		if x1 < x0 {
			continue
		}
		fb.span(y, x0, x1, packed)
		pixels += x1 - x0 + 1
	}
	return pixels, true
}

// classify appends edge a→b: scanning downwards, a left edge bounds span
// starts and a right edge bounds span ends. Horizontal edges are skipped.
func classify(edges *[3]edge, n int, a, b fixed.Vec, s *Scratch) int {
	switch {
	case a.Y < b.Y:
		edges[n] = edge{start: a, end: b, buf: s.startX}
	case a.Y > b.Y:
		edges[n] = edge{start: b, end: a, buf: s.endX}
	default:
		return n
	}
	return n + 1
}

func (t *Triangle) checkContract(fb *FrameBuffer, vb VertexBuffer) {
	for _, i := range [3]int{t.va, t.vb, t.vc} {
		if i < 0 || i >= len(vb) {
			Logger().Error("vertex index out of range", "index", i, "vertices", len(vb))
			panic("raster: vertex index out of range")
		}
	}
	if t.scratch.Height() < fb.Height {
		Logger().Error("scratch shorter than framebuffer",
			"scratch", t.scratch.Height(), "framebuffer", fb.Height)
		panic("raster: scratch shorter than framebuffer")
	}
}
