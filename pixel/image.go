package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/screen/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// fillPattern repeats pattern over pix, doubling the copied span each pass.
func fillPattern(pix, pattern []byte) {
	if len(pix) == 0 {
		return
	}
	n := copy(pix, pattern)
	for n < len(pix) {
		n += copy(pix[n:], pix[:n])
	}
}

// RGBA8888Image is a 32-bits per pixel packed RGBA image.
//
// Pixels are stored row-major, one packed [RGBA8888] per pixel in Order byte
// order, so Pix can be handed to a texture declared as [FormatRGBA8888]
// without conversion.
type RGBA8888Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewRGBA8888Image(w, h int) *RGBA8888Image {
	return &RGBA8888Image{
		Buffer: makeBuffer(w, h, w*4, w*4*h),
		Order:  binary.NativeEndian,
	}
}

func (p *RGBA8888Image) ColorModel() color.Model {
	return RGBA8888Model
}

func (p *RGBA8888Image) PixOffset(x, y int) int {
	return y*p.Stride + x*4
}

func (p *RGBA8888Image) At(x, y int) color.Color {
	return p.RGBA8888At(x, y)
}

// RGBA8888At returns the packed color at (x, y), or [Transparent] when out of bounds.
func (p *RGBA8888Image) RGBA8888At(x, y int) RGBA8888 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Transparent
	}
	return RGBA8888(p.Order.Uint32(p.Pix[y*p.Stride+x*4:]))
}

func (p *RGBA8888Image) Set(x, y int, c color.Color) {
	p.SetRGBA8888(x, y, rgba8888Model(c).(RGBA8888))
}

// SetRGBA8888 sets the packed color at (x, y); out of bounds writes are discarded.
func (p *RGBA8888Image) SetRGBA8888(x, y int, c RGBA8888) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint32(p.Pix[y*p.Stride+x*4:], uint32(c))
}

func (p *RGBA8888Image) Fill(c color.Color) {
	p.FillRGBA8888(rgba8888Model(c).(RGBA8888))
}

// FillRGBA8888 sets every pixel to c.
func (p *RGBA8888Image) FillRGBA8888(c RGBA8888) {
	var value [4]byte
	p.Order.PutUint32(value[:], uint32(c))
	fillPattern(p.Pix, value[:])
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	var value [2]byte
	p.Order.PutUint16(value[:], crgb16Model(c).(CRGB16).V)
	fillPattern(p.Pix, value[:])
}

// CopyRGBA8888 converts packed RGBA8888 rows (pitch bytes apart, in order byte
// order) into the image. Rows and columns beyond either side are ignored.
func (p *CRGB16Image) CopyRGBA8888(pix []byte, pitch int, order binary.ByteOrder) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	for y := 0; y < h; y++ {
		src := y * pitch
		if src >= len(pix) {
			return
		}
		dst := y * p.Stride
		for x := 0; x < w && src+4 <= len(pix) && src+4 <= y*pitch+pitch; x++ {
			v := crgb16FromRGBA8888(RGBA8888(order.Uint32(pix[src:]))).V
			p.Order.PutUint16(p.Pix[dst:], v)
			src += 4
			dst += 2
		}
	}
}

// Interface checks.
var (
	_ Image = (*RGBA8888Image)(nil)
	_ Image = (*CRGB16Image)(nil)
)
