package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanline-renderer/internal/fixed"
)

const unset = math.MinInt32

func newEdgeBuf(n int) []int32 {
	buf := make([]int32, n)
	for i := range buf {
		buf[i] = unset
	}
	return buf
}

// exactColumn is the pixel column holding the edge's x at row r's center.
func exactColumn(start, end fixed.Vec, r int32) int32 {
	dx := int64(end.X - start.X)
	dy := int64(end.Y - start.Y)
	c := int64(r)*fixed.One + fixed.Half
	return int32(fixed.FloorDiv(int64(start.X)*dy+dx*(c-int64(start.Y)), dy*fixed.One))
}

func checkEdge(t *testing.T, start, end fixed.Vec) {
	t.Helper()
	buf := newEdgeBuf(64)
	scanEdge(start, end, buf)

	first := fixed.FirstCenterRow(start.Y)
	endRow := fixed.Int(end.Y)
	for r := int32(0); r < int32(len(buf)); r++ {
		center := r<<fixed.Shift + fixed.Half
		switch {
		case r < first || r > endRow:
			assert.Equal(t, int32(unset), buf[r], "row %d outside the edge was written", r)
		case center < end.Y:
			require.NotEqual(t, int32(unset), buf[r], "row %d left unset", r)
			assert.Equal(t, exactColumn(start, end, r), fixed.Int(buf[r]), "row %d", r)

			exact := fixed.Float(start.X) + fixed.Float(end.X-start.X)*
				(fixed.Float(center)-fixed.Float(start.Y))/fixed.Float(end.Y-start.Y)
			assert.InDelta(t, exact, float64(fixed.Int(buf[r])), 1, "row %d drifted", r)
		default:
			assert.Equal(t, end.X, buf[r], "end row %d", r)
		}
	}
}

func TestScanEdgeMajorAxis(t *testing.T) {
	tests := []struct {
		name       string
		start, end fixed.Vec
	}{
		{"vertical", fixed.Vec{X: 40, Y: 3}, fixed.Vec{X: 40, Y: 300}},
		{"steep right", fixed.Vec{X: 130, Y: 5}, fixed.Vec{X: 200, Y: 230}},
		{"steep left", fixed.Vec{X: 200, Y: 5}, fixed.Vec{X: 130, Y: 230}},
		{"shallow right", fixed.Vec{X: 21, Y: 37}, fixed.Vec{X: 250, Y: 101}},
		{"shallow left", fixed.Vec{X: 900, Y: 12}, fixed.Vec{X: 3, Y: 140}},
		{"diagonal", fixed.Vec{X: 64, Y: 0}, fixed.Vec{X: 0, Y: 64}},
		{"long shallow", fixed.Vec{X: 0, Y: 100}, fixed.Vec{X: 1000, Y: 1000}},
		{"within one row", fixed.Vec{X: 10, Y: 17}, fixed.Vec{X: 90, Y: 22}},
		{"below row center", fixed.Vec{X: 10, Y: 26}, fixed.Vec{X: 90, Y: 30}},
		{"ends on center", fixed.Vec{X: 10, Y: 8}, fixed.Vec{X: 50, Y: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkEdge(t, tt.start, tt.end)
		})
	}
}

func TestScanEdgeEndpointWrittenFirst(t *testing.T) {
	buf := newEdgeBuf(8)
	start := fixed.FromPixel(2, 1)
	end := fixed.FromPixel(5, 4)
	scanEdge(start, end, buf)

	// row 4's center lies below the edge, so it keeps the endpoint
	assert.Equal(t, end.X, buf[4])
	// rows 1..3 sample the diagonal at y+0.5
	assert.Equal(t, int32(2), fixed.Int(buf[1]))
	assert.Equal(t, int32(3), fixed.Int(buf[2]))
	assert.Equal(t, int32(4), fixed.Int(buf[3]))
	assert.Equal(t, int32(unset), buf[0])
}

func TestScanEdgeSkipsEndpointBelowCenter(t *testing.T) {
	buf := newEdgeBuf(4)
	buf[1] = 77
	// the whole edge lies in row 1 below its center (y=24)
	scanEdge(fixed.Vec{X: 10, Y: 26}, fixed.Vec{X: 90, Y: 30}, buf)
	assert.Equal(t, int32(77), buf[1])
}

func TestScanEdgeDeterministic(t *testing.T) {
	start := fixed.Vec{X: 33, Y: 7}
	end := fixed.Vec{X: 501, Y: 333}
	a := newEdgeBuf(32)
	b := make([]int32, 32)
	scanEdge(start, end, a)
	scanEdge(start, end, b)
	for r := fixed.FirstCenterRow(start.Y); r <= fixed.Int(end.Y); r++ {
		assert.Equal(t, a[r], b[r], "row %d", r)
	}
}
