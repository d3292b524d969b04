package backdrop

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 200, G: 40, B: 10, A: 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{R: 10, G: 40, B: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "frame.png", checker(4, 3))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 40, B: 10, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 40, B: 200, A: 255}, img.NRGBAAt(1, 0))
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.JPG")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, checker(16, 8), &jpeg.Options{Quality: 95}))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	assert.Equal(t, uint8(255), img.NRGBAAt(3, 3).A)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "frame.bmp"))
	assert.ErrorContains(t, err, "unknown extension")

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "backdrop: read")

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "backdrop: decode")
}

func TestToNRGBAOffset(t *testing.T) {
	src := checker(6, 6).SubImage(image.Rect(2, 2, 5, 4))
	dst := toNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), dst.Bounds())
	// (2,2) is an even cell
	assert.Equal(t, uint8(200), dst.NRGBAAt(0, 0).R)
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "frame.png", checker(2, 2))
	c := NewCache()

	a, err := c.Resolve(path)
	require.NoError(t, err)
	b, err := c.Resolve(filepath.Join(dir, ".", "frame.png"))
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	missing := filepath.Join(dir, "missing.png")
	_, err = c.Resolve(missing)
	assert.Error(t, err)
	// later writes are not seen; the failure is cached
	writePNG(t, dir, "missing.png", checker(2, 2))
	_, err = c.Resolve(missing)
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestCacheConcurrent(t *testing.T) {
	path := writePNG(t, t.TempDir(), "frame.png", checker(8, 8))
	c := NewCache()

	var wg sync.WaitGroup
	got := make([]*image.NRGBA, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := c.Resolve(path)
			assert.NoError(t, err)
			got[i] = img
		}(i)
	}
	wg.Wait()

	for _, img := range got {
		assert.Same(t, got[0], img)
	}
	assert.Equal(t, 1, c.Len())
}
