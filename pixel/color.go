package pixel

import (
	"fmt"
	"image/color"
)

// Models for the color types in this package.
var (
	RGBA8888Model color.Model = color.ModelFunc(rgba8888Model)
	CRGB16Model   color.Model = color.ModelFunc(crgb16Model)
)

// Common colors.
const (
	Transparent RGBA8888 = 0x00000000
	Black       RGBA8888 = 0x000000ff
	White       RGBA8888 = 0xffffffff
	Red         RGBA8888 = 0xff0000ff
	Green       RGBA8888 = 0x00ff00ff
	Blue        RGBA8888 = 0x0000ffff
)

// Format is the pixel layout declared to a presentation texture.
type Format uint8

// Supported formats.
const (
	FormatUnknown  Format = iota
	FormatRGBA8888        // 32-bit packed 0xRRGGBBAA, host byte order
	FormatRGB565          // 16-bit packed 5-6-5 RGB, big endian
)

// BytesPerPixel is the size of one packed pixel.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8888:
		return 4
	case FormatRGB565:
		return 2
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGB565:
		return "RGB565"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// RGBA8888 represents a 32-bit packed color, with red in the most significant
// byte and alpha in the least significant byte.
//
// The channels are not alpha-premultiplied.
type RGBA8888 uint32

// NewRGBA8888 packs the four channels.
func NewRGBA8888(r, g, b, a uint8) RGBA8888 {
	return RGBA8888(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Channels unpacks the color.
func (c RGBA8888) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c RGBA8888) RGBA() (r, g, b, a uint32) {
	cr, cg, cb, ca := c.Channels()
	return color.NRGBA{R: cr, G: cg, B: cb, A: ca}.RGBA()
}

func (c RGBA8888) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

func rgba8888Model(c color.Color) color.Color {
	if _, ok := c.(RGBA8888); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewRGBA8888(n.R, n.G, n.B, n.A)
}

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case CRGB16:
		return c
	case RGBA8888:
		return crgb16FromRGBA8888(c)
	default:
		r, g, b, _ := c.RGBA()
		r = (r & 0xF800)
		g = (g & 0xFC00) >> 5
		b = (b & 0xF800) >> 11
		return CRGB16{uint16(r | g | b)}
	}
}

// crgb16FromRGBA8888 drops alpha; panels have no notion of transparency.
func crgb16FromRGBA8888(c RGBA8888) CRGB16 {
	r, g, b, _ := c.Channels()
	return CRGB16{uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)}
}
