package scene

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"scanline-renderer/internal/mathutil"
	"scanline-renderer/internal/raster"
)

// Terrain tiles (.msh) are little-endian uint16 streams:
//
//	vertexCount
//	vertexCount × (x, y, z)   east, north, height
//	vertexCount × (u, v)      texture coordinates, ignored here
//	triangleCount
//	triangleCount × (a, b, c) counter-clockwise seen from above
//
// Tiles are drawn top-down with north up, one shaded color per triangle.

// LoadTile reads a terrain tile.
func LoadTile(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := ParseTile(raw)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// ParseTile decodes a tile from memory.
func ParseTile(data []byte) (*Scene, error) {
	r := &reader{data: data}

	nv, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("vertex count: %w", err)
	}
	pos := make([]mathutil.Vec3, nv)
	for i := range pos {
		for k := 0; k < 3; k++ {
			v, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			pos[i][k] = float64(v)
		}
	}
	if err := r.skip(4 * int(nv)); err != nil {
		return nil, fmt.Errorf("uvs: %w", err)
	}

	nt, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("triangle count: %w", err)
	}
	faces := make([][3]int, nt)
	for i := range faces {
		for k := 0; k < 3; k++ {
			v, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("triangle %d: %w", i, err)
			}
			if int(v) >= int(nv) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0,%d)", i, v, nv)
			}
			faces[i][k] = int(v)
		}
	}

	s := &Scene{
		Vertices:    make([][2]float64, nv),
		Faces:       faces,
		Colors:      terrainColors(pos, faces),
		Transform:   mathutil.Identity(),
		FitViewport: true,
		FlipY:       true,
		Margin:      2,
		Single:      true,
	}
	for i, p := range pos {
		s.Vertices[i] = [2]float64{p[0], p[1]}
	}
	return s, nil
}

// EncodeTile writes positions and faces in the tile layout, with zero uvs.
func EncodeTile(pos [][3]uint16, faces [][3]uint16) []byte {
	out := make([]byte, 0, 2+10*len(pos)+2+6*len(faces))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(pos)))
	for _, p := range pos {
		for _, v := range p {
			out = binary.LittleEndian.AppendUint16(out, v)
		}
	}
	out = append(out, make([]byte, 4*len(pos))...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(faces)))
	for _, f := range faces {
		for _, v := range f {
			out = binary.LittleEndian.AppendUint16(out, v)
		}
	}
	return out
}

var (
	lowland  = [3]float64{59, 125, 59}
	hillside = [3]float64{139, 109, 75}
	summit   = [3]float64{240, 240, 245}
	sunDir   = mathutil.Vec3{-0.5, 0.5, 0.7}.Normalize()
)

// terrainColors picks a height-ramp color per triangle and darkens it by
// how directly the face catches light from the north-west.
func terrainColors(pos []mathutil.Vec3, faces [][3]int) []raster.Color {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range pos {
		lo = math.Min(lo, p[2])
		hi = math.Max(hi, p[2])
	}
	span := hi - lo
	if span < 1 {
		span = 1
	}

	colors := make([]raster.Color, len(faces))
	for i, f := range faces {
		a, b, c := pos[f[0]], pos[f[1]], pos[f[2]]
		t := ((a[2]+b[2]+c[2])/3 - lo) / span

		var base [3]float64
		if t < 0.5 {
			base = mix(lowland, hillside, t*2)
		} else {
			base = mix(hillside, summit, t*2-1)
		}

		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if n[2] < 0 {
			n = mathutil.Vec3{-n[0], -n[1], -n[2]}
		}
		shade := 0.55 + 0.45*math.Max(0, n.Dot(sunDir))

		colors[i] = raster.Color{
			R: clamp8(base[0] * shade),
			G: clamp8(base[1] * shade),
			B: clamp8(base[2] * shade),
		}
	}
	return colors
}

func mix(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, fmt.Errorf("truncated at offset %d", r.off)
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) skip(n int) error {
	if r.off+n > len(r.data) {
		return fmt.Errorf("truncated at offset %d", r.off)
	}
	r.off += n
	return nil
}
