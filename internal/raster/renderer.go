package raster

import "fmt"

// Mesh is an indexed, flat-shaded triangle list over one VertexBuffer. All
// triangles draw through a single Scratch, so a Mesh must not be drawn from
// two goroutines at once.
type Mesh struct {
	Vertices  VertexBuffer
	Triangles []*Triangle
	Colors    []Color

	scratch *Scratch
}

// Stats summarises one Mesh.Draw call.
type Stats struct {
	Triangles int
	Culled    int
	Pixels    int
}

// NewMesh builds a mesh of vertexCount vertices (all at the origin until
// set) and one triangle per face. colors must match faces one to one.
func NewMesh(vertexCount int, faces [][3]int, colors []Color, height int) (*Mesh, error) {
	if len(colors) != len(faces) {
		return nil, fmt.Errorf("raster: mesh has %d faces but %d colors", len(faces), len(colors))
	}
	m := &Mesh{
		Vertices:  NewVertexBuffer(vertexCount),
		Triangles: make([]*Triangle, len(faces)),
		Colors:    colors,
		scratch:   NewScratch(height),
	}
	for i, f := range faces {
		for _, vi := range f {
			if vi < 0 || vi >= vertexCount {
				return nil, fmt.Errorf("raster: face %d: vertex index %d out of range [0,%d)", i, vi, vertexCount)
			}
		}
		m.Triangles[i] = NewSharedTriangle(f, m.scratch)
	}
	return m, nil
}

// Resize adapts the mesh's scratch arrays to a new framebuffer height.
func (m *Mesh) Resize(height int) {
	m.scratch.Resize(height)
}

// Draw rasterizes every triangle in order into fb.
func (m *Mesh) Draw(fb *FrameBuffer) Stats {
	st := Stats{Triangles: len(m.Triangles)}
	for i, t := range m.Triangles {
		n, front := t.draw(fb, m.Vertices, m.Colors[i].Pack())
		if !front {
			st.Culled++
		}
		st.Pixels += n
	}

	Logger().Debug("mesh drawn",
		"triangles", st.Triangles,
		"culled", st.Culled,
		"pixels", st.Pixels,
		"width", fb.Width,
		"height", fb.Height)
	return st
}
