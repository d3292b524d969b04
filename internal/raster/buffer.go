package raster

import (
	"encoding/binary"
	"image"

	"golang.org/x/image/draw"
)

// FrameBuffer holds the rendering target as packed 32-bit cells, row-major,
// len(Pix) = Width*Height. Triangles write into it in place.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewFrameBuffer allocates a zeroed (fully transparent) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint32, w*h),
	}
}

// Resize changes the viewport size. Existing storage is reused when it is
// large enough; the contents are cleared either way.
func (fb *FrameBuffer) Resize(w, h int) {
	n := w * h
	if cap(fb.Pix) >= n {
		fb.Pix = fb.Pix[:n]
		clear(fb.Pix)
	} else {
		fb.Pix = make([]uint32, n)
	}
	fb.Width = w
	fb.Height = h
}

// Clear fills every cell with c.
func (fb *FrameBuffer) Clear(c Color) {
	p := c.Pack()
	for i := range fb.Pix {
		fb.Pix[i] = p
	}
}

// Set writes a packed cell.
func (fb *FrameBuffer) Set(row, col int, packed uint32) {
	if debugChecks {
		fb.checkBounds(row, col)
	}
	fb.Pix[row*fb.Width+col] = packed
}

// At returns the packed cell at (row, col).
func (fb *FrameBuffer) At(row, col int) uint32 {
	return fb.Pix[row*fb.Width+col]
}

// span fills columns [x0, x1] of a row. Callers guarantee the range.
func (fb *FrameBuffer) span(row, x0, x1 int, packed uint32) {
	if x0 > x1 {
		return
	}
	if debugChecks {
		fb.checkBounds(row, x0)
		fb.checkBounds(row, x1)
	}
	off := row * fb.Width
	line := fb.Pix[off+x0 : off+x1+1]
	for i := range line {
		line[i] = packed
	}
}

// Image converts the buffer to an NRGBA image. Cells are packed so that
// their little-endian bytes are R, G, B, A.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pix {
		binary.LittleEndian.PutUint32(img.Pix[i*4:], p)
	}
	return img
}

// DrawBackdrop scales src over the whole buffer, replacing its contents.
// It stands in for the live camera frame the triangles are overlaid on.
func (fb *FrameBuffer) DrawBackdrop(src image.Image) {
	dst := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	for i := range fb.Pix {
		fb.Pix[i] = binary.LittleEndian.Uint32(dst.Pix[i*4:])
	}
}

func (fb *FrameBuffer) checkBounds(row, col int) {
	if row < 0 || row >= fb.Height || col < 0 || col >= fb.Width {
		Logger().Error("framebuffer write out of bounds", "row", row, "col", col,
			"width", fb.Width, "height", fb.Height)
		panic("raster: framebuffer write out of bounds")
	}
}
