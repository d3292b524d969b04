package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultSupersample = 1
	DefaultOutputDir   = "renders"

	maxSupersample = 8
	maxDimension   = 16384
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings. Scenes that name their own size keep it.
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	Supersample int  `json:"supersample"`
	Workers     int  `json:"workers"`
	Crop        bool `json:"crop"`
	CropPad     int  `json:"crop_pad"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.BaseDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CropPad < 0 {
		c.CropPad = 0
	}
}

// ScenePath resolves a scene argument against BaseDir.
func (c *Config) ScenePath(p string) string {
	if c.BaseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Supersample > maxSupersample {
		return fmt.Errorf("config: supersample %d exceeds %d", c.Supersample, maxSupersample)
	}
	if w, h := c.Width*c.Supersample, c.Height*c.Supersample; w > maxDimension || h > maxDimension {
		return fmt.Errorf("config: %dx%d render target exceeds %d", w, h, maxDimension)
	}
	return nil
}
