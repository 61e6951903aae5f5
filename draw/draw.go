// Package draw has drawing primitives for any image/draw.Image, including the screen.
//
// Shapes are clipped to the bounds of the destination and set pixel by pixel,
// in the color model of the destination.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for [image/draw.Op].
type Op = draw.Op

// Porter-Duff operators.
const (
	Over = draw.Over
	Src  = draw.Src
)

// Draw src onto dst at r, see [image/draw.Draw].
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask, a nil mask is opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}
