package scene

import (
	"fmt"

	"scanline-renderer/internal/fixed"
	"scanline-renderer/internal/mathutil"
	"scanline-renderer/internal/raster"
)

// Scene is a flat-shaded triangle mesh in source coordinates plus the
// transform that projects it into device space.
type Scene struct {
	Name       string
	Width      int // preferred viewport, 0 = use config
	Height     int
	Background raster.Color

	// Transparent leaves uncovered cells at zero alpha instead of
	// clearing to Background. Ignored when a backdrop is set.
	Transparent bool
	Backdrop    string // image path, resolved against the scene file

	Vertices [][2]float64
	Faces    [][3]int
	Colors   []raster.Color

	Transform mathutil.Affine
	// FitViewport replaces Transform with one that fits the vertex bounds
	// into the viewport (terrain tiles, generated grids).
	FitViewport bool
	FlipY       bool
	Margin      float64

	// Single projects in float32. Terrain tiles set it: their uint16
	// positions are exact in single precision.
	Single bool
}

// fitInset keeps fitted extremes a sub-pixel step inside the viewport, so
// the far edge lands below w and h after rounding to fixed point.
const fitInset = 1.0 / fixed.One

// Projection returns the source→device transform for a w×h viewport.
func (s *Scene) Projection(w, h int) mathutil.Affine {
	if !s.FitViewport {
		return s.Transform
	}
	minX, minY, maxX, maxY := s.Bounds()
	return mathutil.Fit(minX, minY, maxX, maxY, w, h, s.Margin+fitInset, s.FlipY)
}

// SourcePoint maps a device-space vertex of a w×h build back into source
// coordinates.
func (s *Scene) SourcePoint(w, h int, v fixed.Vec) (float64, float64) {
	return s.Projection(w, h).Inverse().Apply(fixed.Float(v.X), fixed.Float(v.Y))
}

// Scaled returns a copy of s whose device space is k times larger, for
// rendering at k× supersampling. Vertex data is shared.
func (s *Scene) Scaled(k int) *Scene {
	if k <= 1 {
		return s
	}
	c := *s
	f := float64(k)
	c.Transform = mathutil.Mul(mathutil.Scale(f, f), s.Transform)
	c.Margin = s.Margin * f
	if c.Width > 0 {
		c.Width *= k
		c.Height *= k
	}
	return &c
}

// Bounds returns the source-space bounding box of the vertices.
func (s *Scene) Bounds() (minX, minY, maxX, maxY float64) {
	if len(s.Vertices) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s.Vertices[0][0], s.Vertices[0][1]
	maxX, maxY = minX, minY
	for _, v := range s.Vertices[1:] {
		minX = min(minX, v[0])
		minY = min(minY, v[1])
		maxX = max(maxX, v[0])
		maxY = max(maxY, v[1])
	}
	return minX, minY, maxX, maxY
}

// Build creates the mesh for a w×h viewport and projects the vertices.
func (s *Scene) Build(w, h int) (*raster.Mesh, error) {
	m, err := raster.NewMesh(len(s.Vertices), s.Faces, s.Colors, h)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", s.Name, err)
	}
	if err := s.Project(m, w, h); err != nil {
		return nil, err
	}
	return m, nil
}

// Project writes device-space positions into m's vertex buffer. Every
// vertex has to land inside the viewport: the rasterizer does not clip.
func (s *Scene) Project(m *raster.Mesh, w, h int) error {
	xf := s.Projection(w, h)
	maxX, maxY := int32(w)<<fixed.Shift, int32(h)<<fixed.Shift
	for i, v := range s.Vertices {
		var x, y float64
		if s.Single {
			x32, y32 := xf.Apply32(float32(v[0]), float32(v[1]))
			m.Vertices.SetFloat32(i, x32, y32)
			x, y = float64(x32), float64(y32)
		} else {
			x, y = xf.Apply(v[0], v[1])
			m.Vertices.SetFloat(i, x, y)
		}
		if p := m.Vertices[i]; p.X < 0 || p.Y < 0 || p.X >= maxX || p.Y >= maxY {
			return fmt.Errorf("scene: %s: vertex %d (%.2f, %.2f) outside %dx%d viewport", s.Name, i, x, y, w, h)
		}
	}
	return nil
}
