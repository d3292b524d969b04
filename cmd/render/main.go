package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scanline-renderer/internal/backdrop"
	"scanline-renderer/internal/batch"
	"scanline-renderer/internal/config"
	"scanline-renderer/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Viewport width for scenes without their own size (default: 640)")
	height := flag.Int("height", 0, "Viewport height for scenes without their own size (default: 480)")
	supersample := flag.Int("supersample", 0, "Render at N× size and filter down (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log per-mesh draw statistics to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [flags] scene.json|tile.msh ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	paths := make([]string, flag.NArg())
	for i, arg := range flag.Args() {
		paths[i] = cfg.ScenePath(arg)
	}
	if len(paths) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	fmt.Printf("Scanline renderer → WebP\n")
	fmt.Printf("Scenes: %d, Workers: %d, Supersample: %d×\n", len(paths), cfg.Workers, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	frames := backdrop.NewCache()
	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Backdrops:   frames,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Crop:        cfg.Crop,
		CropPad:     cfg.CropPad,
		Progress:    os.Stdout,
	}, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var culled, pixels int
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			culled += r.Stats.Culled
			pixels += r.Stats.Pixels
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d (%d triangles culled, %d cells filled, %d backdrops)\n",
		success, len(paths), culled, pixels, frames.Len())

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Path, e.Error)
		}
	}

	// Write manifest
	if manifestPath, err := writeManifest(cfg.OutputDir, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// writeManifest creates dir if needed and writes manifest.json into it.
func writeManifest(dir string, results []batch.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("manifest: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := batch.WriteManifest(path, results); err != nil {
		return "", fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return path, nil
}
