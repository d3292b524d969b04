package main

import (
	"flag"
	"fmt"
	"os"

	"scanline-renderer/internal/config"
	"scanline-renderer/internal/fixed"
	"scanline-renderer/internal/raster"
	"scanline-renderer/internal/scene"
)

func main() {
	width := flag.Int("width", config.DefaultWidth, "Viewport width for scenes without their own size")
	height := flag.Int("height", config.DefaultHeight, "Viewport height for scenes without their own size")
	tris := flag.Bool("tris", false, "List every triangle with its device-space vertices and their source positions")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-width W -height H -tris] scene.json|tile.msh ...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := inspect(path, *width, *height, *tris); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, w, h int, listTris bool) error {
	s, err := scene.Open(path)
	if err != nil {
		return err
	}
	if s.Width > 0 && s.Height > 0 {
		w, h = s.Width, s.Height
	}

	minX, minY, maxX, maxY := s.Bounds()
	fmt.Printf("%s: vertices=%d, triangles=%d\n", s.Name, len(s.Vertices), len(s.Faces))
	fmt.Printf("  Source BBox: X[%.2f, %.2f] Y[%.2f, %.2f]\n", minX, maxX, minY, maxY)

	m, err := s.Build(w, h)
	if err != nil {
		return err
	}
	fb := raster.NewFrameBuffer(w, h)
	st := m.Draw(fb)

	coverage := 100 * float64(st.Pixels) / float64(w*h)
	fmt.Printf("  Viewport: %dx%d\n", w, h)
	fmt.Printf("  Drawn: %d, Culled: %d, Cells filled: %d (%.1f%% of viewport)\n",
		st.Triangles-st.Culled, st.Culled, st.Pixels, coverage)

	if !listTris {
		return nil
	}
	for i, t := range m.Triangles {
		idx := t.Indices()
		state := "front"
		if !t.FrontFacing(m.Vertices) {
			state = "back"
		}
		fmt.Printf("    [%d] %v %s %s", i, idx, m.Colors[i], state)
		for _, vi := range idx {
			v := m.Vertices[vi]
			sx, sy := s.SourcePoint(w, h, v)
			fmt.Printf(" (%.3f, %.3f)<-(%.2f, %.2f)", fixed.Float(v.X), fixed.Float(v.Y), sx, sy)
		}
		fmt.Println()
	}
	return nil
}
