package raster

import "scanline-renderer/internal/fixed"

// scanEdge records, for every scanline the edge start→end crosses, the
// edge's x position in buf. start must lie strictly above end.
//
// A row receives the edge's x at its vertical pixel center, collapsed to the
// containing column (k << Shift). Rows whose center falls outside the edge
// are left alone, except the end row, which receives end.X directly unless
// the whole edge sits below that row's center. The result depends only on
// start and end, so triangles sharing an edge record identical values.
func scanEdge(start, end fixed.Vec, buf []int32) {
	dx := int64(end.X) - int64(start.X)
	dy := int64(end.Y) - int64(start.Y)
	if debugChecks && dy <= 0 {
		Logger().Error("edge scanned upwards", "start", start, "end", end)
		panic("raster: scanEdge requires start.Y < end.Y")
	}

	row := fixed.FirstCenterRow(start.Y)
	endRow := fixed.Int(end.Y)
	if row <= endRow {
		buf[endRow] = end.X
	}

	// last row whose center lies strictly above end.Y
	last := fixed.Int(end.Y - fixed.Half - 1)
	if row > last {
		return
	}

	// Track x at the current row center as a column k plus a remainder:
	//   x*dy = k*d + e, 0 <= e < d, with d = dy*One (one column, scaled).
	// Seeding from the exact intersection with the first center keeps the
	// walk free of drift however long the edge is.
	d := dy * fixed.One
	center := int64(row)<<fixed.Shift + fixed.Half
	n := int64(start.X)*dy + dx*(center-int64(start.Y))
	k := fixed.FloorDiv(n, d)
	e := n - k*d
	inc := dx * fixed.One

	if dy > abs64(dx) {
		// y-major: at most one column per row
		for r := row; r <= last; r++ {
			buf[r] = int32(k) << fixed.Shift
			e += inc
			if e >= d {
				k++
				e -= d
			} else if e < 0 {
				k--
				e += d
			}
		}
		return
	}

	// x-major: walk whole columns until the edge reaches the next row center
	for r := row; r <= last; r++ {
		buf[r] = int32(k) << fixed.Shift
		e += inc
		for e >= d {
			k++
			e -= d
		}
		for e < 0 {
			k--
			e += d
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
