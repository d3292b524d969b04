package raster

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanline-renderer/internal/fixed"
)

func quadMesh(t *testing.T, height int) *Mesh {
	t.Helper()
	faces := [][3]int{{0, 1, 3}, {1, 2, 3}, {0, 3, 1}}
	colors := []Color{red, green, {B: 255}}
	m, err := NewMesh(4, faces, colors, height)
	require.NoError(t, err)
	m.Vertices.SetFloat(0, 1, 1)
	m.Vertices.SetFloat(1, 1, 7)
	m.Vertices.SetFloat(2, 7, 7)
	m.Vertices.SetFloat(3, 7, 1)
	return m
}

func TestNewMeshValidates(t *testing.T) {
	_, err := NewMesh(3, [][3]int{{0, 1, 3}}, []Color{red}, 8)
	assert.ErrorContains(t, err, "out of range")

	_, err = NewMesh(3, [][3]int{{0, 1, 2}}, nil, 8)
	assert.ErrorContains(t, err, "colors")
}

func TestMeshDraw(t *testing.T) {
	m := quadMesh(t, 10)
	fb := NewFrameBuffer(10, 10)
	st := m.Draw(fb)

	assert.Equal(t, Stats{Triangles: 3, Culled: 1, Pixels: 36}, st)
	assert.Len(t, written(fb), 36)
	for _, p := range fb.Pix {
		assert.NotEqual(t, Color{B: 255}.Pack(), p, "back face drawn")
	}
}

func TestMeshSharesScratch(t *testing.T) {
	m := quadMesh(t, 10)
	for _, tri := range m.Triangles {
		assert.Same(t, m.scratch, tri.scratch)
	}

	m.Resize(20)
	assert.Equal(t, 20, m.scratch.Height())
	fb := NewFrameBuffer(20, 20)
	m.Vertices.SetFloat(2, 15, 15)
	st := m.Draw(fb)
	assert.Positive(t, st.Pixels)
}

func TestMeshDrawLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	m := quadMesh(t, 10)
	m.Draw(NewFrameBuffer(10, 10))
	assert.Contains(t, buf.String(), "mesh drawn")
	assert.Contains(t, buf.String(), "culled=1")
}

func TestVertexBuffer(t *testing.T) {
	vb := NewVertexBuffer(2)
	vb.SetFloat(0, 1.5, 2.25)
	vb.SetFloat32(1, 3, 0.5)
	assert.Equal(t, 2, vb.Len())
	assert.Equal(t, fixed.Vec{X: 24, Y: 36}, vb[0])
	assert.Equal(t, fixed.Vec{X: 48, Y: 8}, vb[1])
}
