package framebuffer

import (
	"encoding/binary"
	"fmt"
)

// fixScreenInfo is struct fb_fix_screeninfo from <linux/fb.h>.
type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// bitField describes the position of one color channel inside a pixel.
type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo is struct fb_var_screeninfo from <linux/fb.h>, device
// independent changeable information about a frame buffer device and a
// specific video mode.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// refreshRate derives the refresh rate in Hz from the mode timings, 0 if unknown.
func (info *varScreenInfo) refreshRate() int {
	if info.Pixclock == 0 {
		return 0
	}
	var (
		htotal = uint64(info.Xres + info.LeftMargin + info.RightMargin + info.HsyncLen)
		vtotal = uint64(info.Yres + info.UpperMargin + info.LowerMargin + info.VsyncLen)
	)
	if htotal == 0 || vtotal == 0 {
		return 0
	}
	// Pixclock is in picoseconds.
	return int((1e12/uint64(info.Pixclock) + htotal*vtotal/2) / (htotal * vtotal))
}

// layout is a packed true color pixel layout.
type layout struct {
	bytes                   int
	red, green, blue, alpha bitField
}

func (l layout) String() string {
	return fmt.Sprintf("%dbpp R%d:%d G%d:%d B%d:%d A%d:%d", l.bytes*8,
		l.red.Offset, l.red.Length,
		l.green.Offset, l.green.Length,
		l.blue.Offset, l.blue.Length,
		l.alpha.Offset, l.alpha.Length)
}

func parseLayout(info *varScreenInfo) (layout, error) {
	if info == nil {
		return layout{}, fmt.Errorf("%w: invalid VarScreenInfo", ErrFormat)
	}
	if info.Grayscale != 0 {
		return layout{}, fmt.Errorf("%w: grayscale", ErrFormat)
	}

	switch info.BitsPerPixel {
	case 16, 24, 32:
	default:
		return layout{}, fmt.Errorf("%w: %d bits per pixel", ErrFormat, info.BitsPerPixel)
	}

	l := layout{
		bytes: int(info.BitsPerPixel / 8),
		red:   info.Red,
		green: info.Green,
		blue:  info.Blue,
		alpha: info.Alpha,
	}
	for _, field := range []bitField{l.red, l.green, l.blue, l.alpha} {
		if field.Length > 8 || field.Offset+field.Length > info.BitsPerPixel || field.MsbRight != 0 {
			return layout{}, fmt.Errorf("%w: %s", ErrFormat, l)
		}
	}
	if l.red.Length == 0 || l.green.Length == 0 || l.blue.Length == 0 {
		return layout{}, fmt.Errorf("%w: %s", ErrFormat, l)
	}
	return l, nil
}

// isRGBA8888 reports whether the layout is the packed RGBA8888 of the frame buffer.
func (l layout) isRGBA8888() bool {
	return l.bytes == 4 &&
		l.red == bitField{Offset: 24, Length: 8} &&
		l.green == bitField{Offset: 16, Length: 8} &&
		l.blue == bitField{Offset: 8, Length: 8} &&
		l.alpha == bitField{Offset: 0, Length: 8}
}

func packChannel(v uint8, field bitField) uint32 {
	if field.Length == 0 {
		return 0
	}
	return uint32(v>>(8-field.Length)) << field.Offset
}

// pack converts w×h pixels of packed RGBA8888 (host order, srcPitch bytes per
// row) into dst, dstStride bytes per row. Framebuffer memory is in host byte
// order, which is assumed to be little endian for 24 bit layouts.
func (l layout) pack(dst []byte, dstStride int, src []byte, srcPitch, w, h int) {
	if l.isRGBA8888() {
		for y := 0; y < h; y++ {
			copy(dst[y*dstStride:y*dstStride+w*4], src[y*srcPitch:])
		}
		return
	}

	for y := 0; y < h; y++ {
		s := src[y*srcPitch:]
		d := dst[y*dstStride:]
		for x := 0; x < w; x++ {
			c := binary.NativeEndian.Uint32(s[x*4:])
			r, g, b, a := uint8(c>>24), uint8(c>>16), uint8(c>>8), uint8(c)
			v := packChannel(r, l.red) | packChannel(g, l.green) | packChannel(b, l.blue) | packChannel(a, l.alpha)
			o := d[x*l.bytes:]
			switch l.bytes {
			case 2:
				binary.NativeEndian.PutUint16(o, uint16(v))
			case 3:
				o[0], o[1], o[2] = byte(v), byte(v>>8), byte(v>>16)
			case 4:
				binary.NativeEndian.PutUint32(o, v)
			}
		}
	}
}
