package batch

import (
	"fmt"
	"image"

	"scanline-renderer/internal/backdrop"
	"scanline-renderer/internal/postprocess"
	"scanline-renderer/internal/raster"
	"scanline-renderer/internal/scene"
)

// Renderer turns scenes into images. It owns one FrameBuffer that is
// resized per scene, so a Renderer must stay on one goroutine.
type Renderer struct {
	Backdrops   backdrop.Resolver
	Supersample int

	fb *raster.FrameBuffer
}

func NewRenderer(backdrops backdrop.Resolver, supersample int) *Renderer {
	if supersample < 1 {
		supersample = 1
	}
	return &Renderer{
		Backdrops:   backdrops,
		Supersample: supersample,
		fb:          raster.NewFrameBuffer(0, 0),
	}
}

// Render draws s into a w×h image. Rendering happens at Supersample times
// the size and is filtered down afterwards.
func (r *Renderer) Render(s *scene.Scene, w, h int) (*image.NRGBA, raster.Stats, error) {
	k := r.Supersample
	big := s.Scaled(k)
	bw, bh := w*k, h*k

	m, err := big.Build(bw, bh)
	if err != nil {
		return nil, raster.Stats{}, err
	}

	r.fb.Resize(bw, bh)
	switch {
	case s.Backdrop != "":
		if r.Backdrops == nil {
			return nil, raster.Stats{}, fmt.Errorf("batch: %s: backdrop %s set but no resolver", s.Name, s.Backdrop)
		}
		frame, err := r.Backdrops.Resolve(s.Backdrop)
		if err != nil {
			return nil, raster.Stats{}, err
		}
		r.fb.DrawBackdrop(frame)
	case !s.Transparent:
		r.fb.Clear(s.Background)
	}

	st := m.Draw(r.fb)

	img := r.fb.Image()
	if k > 1 {
		img = postprocess.Downsample(img, w, h)
	}
	return img, st, nil
}
