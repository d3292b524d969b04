package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"scanline-renderer/internal/backdrop"
	"scanline-renderer/internal/postprocess"
	"scanline-renderer/internal/raster"
	"scanline-renderer/internal/scene"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Backdrops   backdrop.Resolver
	Width       int // used when a scene has no size of its own
	Height      int
	Supersample int
	Workers     int
	Crop        bool
	CropPad     int

	// Progress receives a status line every two seconds; nil disables it.
	Progress io.Writer
}

// Result holds the outcome of processing one scene.
type Result struct {
	Name    string
	Path    string
	Image   string // relative to OutputDir
	Width   int
	Height  int
	Stats   raster.Stats
	Success bool
	Error   string
}

// Run renders all scene files using a worker pool. Results keep the order
// of paths.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		if cfg.Progress == nil {
			return
		}
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := NewRenderer(cfg.Backdrops, cfg.Supersample)
			for idx := range jobs {
				res := processScene(cfg, r, paths[idx])
				if res.Success {
					raster.Logger().Debug("scene rendered", "name", res.Name, "image", res.Image,
						"width", res.Width, "height", res.Height)
				} else {
					raster.Logger().Warn("scene skipped", "path", res.Path, "error", res.Error)
				}
				results[idx] = res
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, r *Renderer, path string) Result {
	res := Result{Path: path}

	s, err := scene.Open(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Name = s.Name

	res.Width, res.Height = cfg.Width, cfg.Height
	if s.Width > 0 && s.Height > 0 {
		res.Width, res.Height = s.Width, s.Height
	}

	img, st, err := r.Render(s, res.Width, res.Height)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Stats = st

	if cfg.Crop {
		img = postprocess.Crop(img, cfg.CropPad)
		res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	// Save as WebP
	res.Image = filepath.Base(s.Name) + ".webp"
	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
