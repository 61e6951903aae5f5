// Package pixel implements the packed color formats and pixel buffers used by the screen.
//
// The types in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so anything that can draw into a
// [draw.Image] can draw into a frame buffer.
package pixel
