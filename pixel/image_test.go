package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestRGBA8888Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewRGBA8888Image(size.X, size.Y)
	}, RGBA8888Model)
}

func TestCRGB16Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCRGB16Image(size.X, size.Y)
	}, CRGB16Model)
}

func TestRGBA8888ImageLayout(t *testing.T) {
	i := NewRGBA8888Image(4, 3)
	if i.Stride != 16 {
		t.Fatalf("expected stride 16, got %d", i.Stride)
	}
	i.SetRGBA8888(2, 1, 0x11223344)
	offset := i.PixOffset(2, 1)
	if offset != 1*4*4+2*4 {
		t.Fatalf("expected offset %d, got %d", 1*4*4+2*4, offset)
	}
	if v := binary.NativeEndian.Uint32(i.Pix[offset:]); v != 0x11223344 {
		t.Errorf("expected packed value 0x11223344 in host order, got %#08x", v)
	}
	for j, b := range i.Pix {
		if j >= offset && j < offset+4 {
			continue
		}
		if b != 0 {
			t.Fatalf("byte %d was altered to %#02x", j, b)
		}
	}
}

func TestCRGB16ImageCopyRGBA8888(t *testing.T) {
	src := NewRGBA8888Image(3, 2)
	src.FillRGBA8888(Blue)
	src.SetRGBA8888(0, 0, Red)
	src.SetRGBA8888(2, 1, White)

	dst := NewCRGB16Image(3, 2)
	dst.CopyRGBA8888(src.Pix, src.Stride, src.Order)

	for _, test := range []struct {
		x, y int
		want uint16
	}{
		{0, 0, 0xf800},
		{1, 0, 0x001f},
		{2, 1, 0xffff},
	} {
		if v := dst.At(test.x, test.y).(CRGB16).V; v != test.want {
			t.Errorf("pixel (%d,%d) is %#04x, expected %#04x", test.x, test.y, v, test.want)
		}
	}
	if v := binary.BigEndian.Uint16(dst.Pix); v != 0xf800 {
		t.Errorf("expected big endian wire order, got %#04x", v)
	}
}

func TestToNRGBA(t *testing.T) {
	src := NewRGBA8888Image(2, 2)
	src.SetRGBA8888(0, 0, 0x11223344)
	src.SetRGBA8888(1, 1, Red)

	dst := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	ToNRGBA(dst, src.Pix, src.Stride, src.Order)

	if v := dst.NRGBAAt(0, 0); v != (color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}) {
		t.Errorf("pixel (0,0) is %v", v)
	}
	if v := dst.NRGBAAt(1, 1); v != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("pixel (1,1) is %v", v)
	}
	if v := dst.NRGBAAt(1, 0); v != (color.NRGBA{}) {
		t.Errorf("pixel (1,0) is %v, expected transparent", v)
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(320, 240),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				i.Fill(color.White)
				for y := -test.Y - 1; y < test.Y*2+1; y++ {
					for x := -test.X - 1; x < test.X*2+1; x++ {
						if (image.Point{X: x, Y: y}).In(i.Bounds()) {
							continue
						}
						i.Set(x, y, color.Black)
					}
				}
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						if r, g, b, _ := i.At(x, y).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
							itt.Fatalf("pixel (%d,%d) was altered by an out of bounds write", x, y)
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if r, g, b, _ := i.At(x, y).RGBA(); r|g|b != 0 {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
