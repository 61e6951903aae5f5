package draw

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scaled draws src scaled to fill r in dst, using nearest neighbor sampling
// so pixel art stays crisp.
func Scaled(dst Image, r image.Rectangle, src image.Image, op Op) {
	xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), op, nil)
}

// Smooth draws src scaled to fill r in dst with bilinear filtering.
func Smooth(dst Image, r image.Rectangle, src image.Image, op Op) {
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), op, nil)
}
