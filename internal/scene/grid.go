package scene

import (
	"fmt"

	"scanline-renderer/internal/mathutil"
	"scanline-renderer/internal/raster"
)

// Grid builds a watertight cols×rows quad grid covering the rectangle
// (x, y)–(x+w, y+h) in device space. Each cell is split along its
// bottom-left/top-right diagonal into two counter-clockwise triangles, and
// cells alternate between the two colors.
func Grid(cols, rows int, x, y, w, h float64, even, odd raster.Color) *Scene {
	s := &Scene{
		Name:      fmt.Sprintf("grid-%dx%d", cols, rows),
		Vertices:  make([][2]float64, 0, (cols+1)*(rows+1)),
		Faces:     make([][3]int, 0, 2*cols*rows),
		Colors:    make([]raster.Color, 0, 2*cols*rows),
		Transform: mathutil.Identity(),
	}
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			s.Vertices = append(s.Vertices, [2]float64{
				x + w*float64(i)/float64(cols),
				y + h*float64(j)/float64(rows),
			})
		}
	}

	at := func(i, j int) int { return j*(cols+1) + i }
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			p00, p10 := at(i, j), at(i+1, j)
			p01, p11 := at(i, j+1), at(i+1, j+1)
			c := even
			if (i+j)%2 == 1 {
				c = odd
			}
			s.Faces = append(s.Faces, [3]int{p00, p01, p10}, [3]int{p01, p11, p10})
			s.Colors = append(s.Colors, c, c)
		}
	}
	return s
}
