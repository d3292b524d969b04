package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scanline-renderer/internal/mathutil"
	"scanline-renderer/internal/raster"
)

// File is the on-disk JSON layout of a scene.
type File struct {
	Name        string        `json:"name"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Background  string        `json:"background"`
	Transparent bool          `json:"transparent"`
	Backdrop    string        `json:"backdrop"`
	Fit         bool          `json:"fit"`
	FlipY       bool          `json:"flip_y"`
	Margin      float64       `json:"margin"`
	Transform   *TransformDef `json:"transform"`
	Vertices    [][2]float64  `json:"vertices"`
	Faces       []FaceDef     `json:"faces"`
}

// TransformDef is applied as translate · rotate · scale.
type TransformDef struct {
	Scale     [2]float64 `json:"scale"`
	RotateDeg float64    `json:"rotate_deg"`
	Translate [2]float64 `json:"translate"`
}

// FaceDef is one triangle: counter-clockwise vertex indices (y down) and a
// "#rrggbb" color.
type FaceDef struct {
	V     [3]int `json:"v"`
	Color string `json:"color"`
}

// Load reads a JSON scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	s, err := f.Scene()
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if s.Backdrop != "" && !filepath.IsAbs(s.Backdrop) {
		s.Backdrop = filepath.Join(filepath.Dir(path), s.Backdrop)
	}
	return s, nil
}

// Scene converts the file layout into a Scene.
func (f *File) Scene() (*Scene, error) {
	s := &Scene{
		Name:        f.Name,
		Width:       f.Width,
		Height:      f.Height,
		Backdrop:    f.Backdrop,
		Transparent: f.Transparent,
		Vertices:    f.Vertices,
		Faces:       make([][3]int, len(f.Faces)),
		Colors:      make([]raster.Color, len(f.Faces)),
		Transform:   mathutil.Identity(),
		FitViewport: f.Fit,
		FlipY:       f.FlipY,
		Margin:      f.Margin,
	}
	if f.Name != "" && (f.Name != filepath.Base(f.Name) || f.Name == "." || f.Name == "..") {
		return nil, fmt.Errorf("name %q: must be a plain file name", f.Name)
	}
	if f.Background != "" {
		bg, err := raster.ParseHex(f.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Background = bg
	}
	if t := f.Transform; t != nil {
		sx, sy := t.Scale[0], t.Scale[1]
		if sx == 0 && sy == 0 {
			sx, sy = 1, 1
		}
		s.Transform = mathutil.Mul(
			mathutil.Translate(t.Translate[0], t.Translate[1]),
			mathutil.Mul(mathutil.Rotate(mathutil.Deg2Rad(t.RotateDeg)), mathutil.Scale(sx, sy)))
	}
	for i, fd := range f.Faces {
		c, err := raster.ParseHex(fd.Color)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		s.Faces[i] = fd.V
		s.Colors[i] = c
	}
	return s, nil
}
