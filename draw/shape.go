package draw

import (
	"image"
	"image/color"
)

// Corners of a rounded shape.
const (
	topLeft = 1 << iota
	topRight
	bottomRight
	bottomLeft
)

// Halves of a filled rounded shape.
const (
	rightHalf = 1 << iota
	leftHalf
)

// Line draws a line between two points, both included.
func Line(dst Image, a, b image.Point, c color.Color) {
	c = dst.ColorModel().Convert(c)
	switch {
	case a.Y == b.Y:
		hline(dst, min(a.X, b.X), max(a.X, b.X), a.Y, c)
	case a.X == b.X:
		vline(dst, a.X, min(a.Y, b.Y), max(a.Y, b.Y), c)
	default:
		bresenham(dst, a, b, c)
	}
}

// HorizontalLine draws w pixels to the right of and including (x,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w > 0 {
		hline(dst, x, x+w-1, y, dst.ColorModel().Convert(c))
	}
}

// VerticalLine draws h pixels down from and including (x,y).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h > 0 {
		vline(dst, x, y, y+h-1, dst.ColorModel().Convert(c))
	}
}

// Rectangle draws a rectangle outline along the inside edge of rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	c = dst.ColorModel().Convert(c)
	hline(dst, rect.Min.X, rect.Max.X-1, rect.Min.Y, c)
	hline(dst, rect.Min.X, rect.Max.X-1, rect.Max.Y-1, c)
	vline(dst, rect.Min.X, rect.Min.Y, rect.Max.Y-1, c)
	vline(dst, rect.Max.X-1, rect.Min.Y, rect.Max.Y-1, c)
}

// RoundedRectangle draws a rectangle with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	var (
		r = radius
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	c = dst.ColorModel().Convert(c)
	hline(dst, x+r, x+w-r-1, y, c)
	hline(dst, x+r, x+w-r-1, y+h-1, c)
	vline(dst, x, y+r, y+h-r-1, c)
	vline(dst, x+w-1, y+r, y+h-r-1, c)
	corner(dst, x+r, y+r, r, topLeft, c)
	corner(dst, x+w-r-1, y+r, r, topRight, c)
	corner(dst, x+w-r-1, y+h-r-1, r, bottomRight, c)
	corner(dst, x+r, y+h-r-1, r, bottomLeft, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	c = dst.ColorModel().Convert(c)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	var (
		r = radius
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	c = dst.ColorModel().Convert(c)
	Box(dst, image.Rect(x+r, y, x+w-r, y+h), c)
	filledCorners(dst, x+w-r-1, y+r, r, rightHalf, h-2*r-1, c)
	filledCorners(dst, x+r, y+r, r, leftHalf, h-2*r-1, c)
}

// Circle draws a circle outline around center.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	c = dst.ColorModel().Convert(c)
	if radius <= 0 {
		dst.Set(center.X, center.Y, c)
		return
	}
	dst.Set(center.X, center.Y-radius, c)
	dst.Set(center.X, center.Y+radius, c)
	dst.Set(center.X-radius, center.Y, c)
	dst.Set(center.X+radius, center.Y, c)
	corner(dst, center.X, center.Y, radius, topLeft|topRight|bottomRight|bottomLeft, c)
}

// Disc draws a filled circle around center.
func Disc(dst Image, center image.Point, radius int, c color.Color) {
	c = dst.ColorModel().Convert(c)
	if radius <= 0 {
		dst.Set(center.X, center.Y, c)
		return
	}
	vline(dst, center.X, center.Y-radius, center.Y+radius, c)
	filledCorners(dst, center.X, center.Y, radius, rightHalf|leftHalf, 0, c)
}

// octant walks the first octant of a circle with the midpoint algorithm, x < y.
func octant(radius int, fn func(x, y int)) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx
		fn(x, y)
	}
}

func corner(dst Image, x0, y0, radius, corners int, c color.Color) {
	octant(radius, func(x, y int) {
		if corners&bottomRight != 0 {
			dst.Set(x0+x, y0+y, c)
			dst.Set(x0+y, y0+x, c)
		}
		if corners&topRight != 0 {
			dst.Set(x0+x, y0-y, c)
			dst.Set(x0+y, y0-x, c)
		}
		if corners&bottomLeft != 0 {
			dst.Set(x0-y, y0+x, c)
			dst.Set(x0-x, y0+y, c)
		}
		if corners&topLeft != 0 {
			dst.Set(x0-y, y0-x, c)
			dst.Set(x0-x, y0-y, c)
		}
	})
}

// filledCorners fills the columns of the rounded halves around (x0,y0), stretched delta pixels down.
func filledCorners(dst Image, x0, y0, radius, halves, delta int, c color.Color) {
	octant(radius, func(x, y int) {
		if halves&rightHalf != 0 {
			vline(dst, x0+x, y0-y, y0+y+delta, c)
			vline(dst, x0+y, y0-x, y0+x+delta, c)
		}
		if halves&leftHalf != 0 {
			vline(dst, x0-x, y0-y, y0+y+delta, c)
			vline(dst, x0-y, y0-x, y0+x+delta, c)
		}
	})
}

// hline sets x0..x1 on row y, clipped to dst.
func hline(dst Image, x0, x1, y int, c color.Color) {
	r := dst.Bounds()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	for x := max(x0, r.Min.X); x <= x1 && x < r.Max.X; x++ {
		dst.Set(x, y, c)
	}
}

// vline sets y0..y1 on column x, clipped to dst.
func vline(dst Image, x, y0, y1 int, c color.Color) {
	r := dst.Bounds()
	if x < r.Min.X || x >= r.Max.X {
		return
	}
	for y := max(y0, r.Min.Y); y <= y1 && y < r.Max.Y; y++ {
		dst.Set(x, y, c)
	}
}

// bresenham draws any sloped line; lines that are entirely beside dst are skipped.
func bresenham(dst Image, a, b image.Point, c color.Color) {
	r := dst.Bounds()
	if (a.X < r.Min.X && b.X < r.Min.X) || (a.X >= r.Max.X && b.X >= r.Max.X) ||
		(a.Y < r.Min.Y && b.Y < r.Min.Y) || (a.Y >= r.Max.Y && b.Y >= r.Max.Y) {
		return
	}

	var (
		dx, sx = abs(b.X - a.X), step(a.X, b.X)
		dy, sy = -abs(b.Y - a.Y), step(a.Y, b.Y)
		e      = dx + dy
		x, y   = a.X, a.Y
	)
	for {
		dst.Set(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}
