package draw_test

import (
	"image"
	"testing"

	"github.com/BeatGlow/screen/draw"
	"github.com/BeatGlow/screen/pixel"
)

func countColor(i *pixel.RGBA8888Image, c pixel.RGBA8888) (n int) {
	r := i.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if i.RGBA8888At(x, y) == c {
				n++
			}
		}
	}
	return
}

func TestLine(t *testing.T) {
	tests := []struct {
		Name string
		A, B image.Point
		Want int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 2), image.Pt(9, 2), 10},
		{"vertical", image.Pt(4, 9), image.Pt(4, 0), 10},
		{"diagonal", image.Pt(0, 0), image.Pt(9, 9), 10},
		{"anti-diagonal", image.Pt(0, 9), image.Pt(9, 0), 10},
		{"steep", image.Pt(1, 0), image.Pt(3, 9), 10},
		{"shallow", image.Pt(0, 1), image.Pt(9, 4), 10},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			i := pixel.NewRGBA8888Image(10, 10)
			draw.Line(i, test.A, test.B, pixel.Red)
			if v := countColor(i, pixel.Red); v != test.Want {
				it.Errorf("expected %d pixels, got %d", test.Want, v)
			}
			if i.RGBA8888At(test.A.X, test.A.Y) != pixel.Red || i.RGBA8888At(test.B.X, test.B.Y) != pixel.Red {
				it.Error("expected both end points to be drawn")
			}
		})
	}
}

func TestLineClipping(t *testing.T) {
	i := pixel.NewRGBA8888Image(10, 10)
	draw.Line(i, image.Pt(-20, 5), image.Pt(30, 5), pixel.Green)
	if v := countColor(i, pixel.Green); v != 10 {
		t.Errorf("expected clipped line to cover the 10 visible pixels, got %d", v)
	}
}

func TestRectangle(t *testing.T) {
	i := pixel.NewRGBA8888Image(10, 10)
	draw.Rectangle(i, image.Rect(2, 2, 6, 5), pixel.White)
	// 4x3 outline: 4+4 horizontal, plus 1+1 remaining vertical pixels.
	if v := countColor(i, pixel.White); v != 10 {
		t.Errorf("expected 10 outline pixels, got %d", v)
	}
	if i.RGBA8888At(3, 3) == pixel.White {
		t.Error("expected the inside to stay empty")
	}
	for _, p := range []image.Point{{2, 2}, {5, 2}, {2, 4}, {5, 4}} {
		if i.RGBA8888At(p.X, p.Y) != pixel.White {
			t.Errorf("expected corner %s to be drawn", p)
		}
	}
}

func TestBox(t *testing.T) {
	i := pixel.NewRGBA8888Image(10, 10)
	draw.Box(i, image.Rect(1, 2, 5, 7), pixel.Blue)
	if v := countColor(i, pixel.Blue); v != 4*5 {
		t.Errorf("expected %d pixels, got %d", 4*5, v)
	}
	draw.Box(i, image.Rect(-5, -5, 100, 100), pixel.Red)
	if v := countColor(i, pixel.Red); v != 100 {
		t.Errorf("expected oversized box to cover all 100 pixels, got %d", v)
	}
}

func TestCircle(t *testing.T) {
	i := pixel.NewRGBA8888Image(21, 21)
	center := image.Pt(10, 10)
	draw.Circle(i, center, 8, pixel.White)
	for _, p := range []image.Point{{10, 2}, {10, 18}, {2, 10}, {18, 10}} {
		if i.RGBA8888At(p.X, p.Y) != pixel.White {
			t.Errorf("expected %s on the outline", p)
		}
	}
	if i.RGBA8888At(center.X, center.Y) == pixel.White {
		t.Error("expected the center to stay empty")
	}

	draw.Disc(i, center, 5, pixel.Red)
	for _, p := range []image.Point{center, {10, 5}, {10, 15}, {5, 10}, {15, 10}, {12, 12}} {
		if i.RGBA8888At(p.X, p.Y) != pixel.Red {
			t.Errorf("expected %s inside the disc", p)
		}
	}
}

func TestRoundedBox(t *testing.T) {
	i := pixel.NewRGBA8888Image(20, 20)
	draw.RoundedBox(i, image.Rect(2, 2, 18, 12), 3, pixel.Blue)
	for _, p := range []image.Point{{10, 7}, {2, 7}, {17, 7}, {10, 2}, {10, 11}} {
		if i.RGBA8888At(p.X, p.Y) != pixel.Blue {
			t.Errorf("expected %s inside the box", p)
		}
	}
	for _, p := range []image.Point{{2, 2}, {17, 2}, {10, 12}, {1, 7}} {
		if i.RGBA8888At(p.X, p.Y) == pixel.Blue {
			t.Errorf("expected %s outside the box", p)
		}
	}
}

func TestRoundedRectangle(t *testing.T) {
	i := pixel.NewRGBA8888Image(20, 20)
	draw.RoundedRectangle(i, image.Rect(2, 2, 18, 12), 3, pixel.White)
	for _, p := range []image.Point{{10, 2}, {10, 11}, {2, 7}, {17, 7}} {
		if i.RGBA8888At(p.X, p.Y) != pixel.White {
			t.Errorf("expected %s on the outline", p)
		}
	}
	if i.RGBA8888At(2, 2) == pixel.White || i.RGBA8888At(10, 7) == pixel.White {
		t.Error("expected corners and inside to stay empty")
	}
}
