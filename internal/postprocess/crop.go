package postprocess

import "image"

// OpaqueBounds returns the bounding box of cells with non-zero alpha, or an
// empty rectangle when there are none.
func OpaqueBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			minX = min(minX, b.Min.X+x)
			maxX = max(maxX, b.Min.X+x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Crop trims a transparent-background render to its drawn cells plus pad
// cells on every side (clamped to the image). Fully transparent images are
// returned unchanged.
func Crop(img *image.NRGBA, pad int) *image.NRGBA {
	r := OpaqueBounds(img)
	if r.Empty() {
		return img
	}
	r = r.Inset(-pad).Intersect(img.Bounds())

	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		src := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()*4], img.Pix[src:src+r.Dx()*4])
	}
	return out
}
