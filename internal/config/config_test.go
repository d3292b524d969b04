package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_dir": "/data/scenes",
		"output_dir": "out",
		"width": 320,
		"supersample": 2,
		"crop": true
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		BaseDir:     "/data/scenes",
		OutputDir:   "out",
		Width:       320,
		Supersample: 2,
		Crop:        true,
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width": "wide"}`), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, Config{
		OutputDir:   DefaultOutputDir,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Supersample: DefaultSupersample,
		Workers:     runtime.NumCPU(),
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{
		BaseDir:     "/srv",
		OutputDir:   "from-file",
		Width:       100,
		Supersample: 2,
		CropPad:     -3,
	}
	cfg.Resolve(Flags{Width: 200, Height: 150, Workers: 3})

	assert.Equal(t, filepath.Join("/srv", "from-file"), cfg.OutputDir)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 3, cfg.Workers)
	assert.Zero(t, cfg.CropPad)

	cfg.Resolve(Flags{OutputDir: "/abs/out"})
	assert.Equal(t, "/abs/out", cfg.OutputDir)
}

func TestScenePath(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "a.json", cfg.ScenePath("a.json"))

	cfg.BaseDir = "/srv"
	assert.Equal(t, filepath.Join("/srv", "a.json"), cfg.ScenePath("a.json"))
	assert.Equal(t, "/tmp/b.msh", cfg.ScenePath("/tmp/b.msh"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"supersample", Config{Width: 64, Height: 64, Supersample: 9}, "supersample"},
		{"target", Config{Width: 8192, Height: 600, Supersample: 4}, "32768x2400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
}
