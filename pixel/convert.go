package pixel

import (
	"encoding/binary"
	"image"
)

// ToNRGBA unpacks RGBA8888 rows (pitch bytes apart, in order byte order) into
// the byte-wise R, G, B, A layout of dst. The copied area is the intersection
// of dst's bounds and the source rows.
func ToNRGBA(dst *image.NRGBA, pix []byte, pitch int, order binary.ByteOrder) {
	size := dst.Rect.Size()
	for y := 0; y < size.Y; y++ {
		row := y * pitch
		if row >= len(pix) {
			return
		}
		out := dst.Pix[y*dst.Stride:]
		for x, src := 0, row; x < size.X && src+4 <= len(pix) && src+4 <= row+pitch; x++ {
			v := order.Uint32(pix[src:])
			out[0] = byte(v >> 24)
			out[1] = byte(v >> 16)
			out[2] = byte(v >> 8)
			out[3] = byte(v)
			out = out[4:]
			src += 4
		}
	}
}
