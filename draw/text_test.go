package draw_test

import (
	"image"
	"testing"

	"github.com/BeatGlow/screen/draw"
	"github.com/BeatGlow/screen/pixel"
)

func TestDefaultFont(t *testing.T) {
	f, err := draw.DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := draw.DefaultFont(); g != f {
		t.Error("expected the default font to be parsed once")
	}
}

func TestText(t *testing.T) {
	i := pixel.NewRGBA8888Image(64, 24)
	i.FillRGBA8888(pixel.Black)

	next, err := draw.Text(i, image.Pt(2, 18), "Hi!", draw.Font{Size: 16}, pixel.White)
	if err != nil {
		t.Fatal(err)
	}
	if next.X <= 2 {
		t.Errorf("expected the pen to advance, got %s", next)
	}
	if next.Y != 18 {
		t.Errorf("expected the baseline to stay at 18, got %d", next.Y)
	}

	var lit int
	for y := 0; y < 24; y++ {
		for x := 0; x < 64; x++ {
			if r, _, _, _ := i.RGBA8888At(x, y).Channels(); r > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected glyph pixels to be drawn")
	}
}

func TestTextClipped(t *testing.T) {
	i := pixel.NewRGBA8888Image(8, 8)
	if _, err := draw.Text(i, image.Pt(-100, -100), "clipped", draw.Font{}, pixel.White); err != nil {
		t.Fatal(err)
	}
	if v := countColor(i, pixel.White); v != 0 {
		t.Errorf("expected no pixels to be drawn, got %d", v)
	}
}

func TestScaled(t *testing.T) {
	src := pixel.NewRGBA8888Image(2, 2)
	src.SetRGBA8888(0, 0, pixel.Red)
	src.SetRGBA8888(1, 0, pixel.Green)
	src.SetRGBA8888(0, 1, pixel.Blue)
	src.SetRGBA8888(1, 1, pixel.White)

	dst := pixel.NewRGBA8888Image(8, 8)
	draw.Scaled(dst, dst.Bounds(), src, draw.Src)

	for _, test := range []struct {
		X, Y int
		Want pixel.RGBA8888
	}{
		{0, 0, pixel.Red},
		{3, 3, pixel.Red},
		{4, 0, pixel.Green},
		{0, 7, pixel.Blue},
		{7, 7, pixel.White},
	} {
		if v := dst.RGBA8888At(test.X, test.Y); v != test.Want {
			t.Errorf("pixel (%d,%d) is %s, expected %s", test.X, test.Y, v, test.Want)
		}
	}
}
