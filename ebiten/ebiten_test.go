package ebiten

import (
	"image"
	"testing"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/pixel"
)

func testGame(w, h int) *game {
	return &game{
		width:  w,
		height: h,
		frame:  image.NewRGBA(image.Rect(0, 0, w, h)),
		vsync:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func TestSurfaceCopy(t *testing.T) {
	g := testGame(4, 2)
	s := &surface{game: g}

	tex, err := s.CreateTexture(pixel.FormatRGBA8888, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	buf := pixel.NewRGBA8888Image(4, 2)
	buf.FillRGBA8888(pixel.Blue)
	buf.SetRGBA8888(1, 1, pixel.NewRGBA8888(0xff, 0x00, 0x00, 0x80))
	if err = tex.Update(buf.Pix, buf.Stride); err != nil {
		t.Fatal(err)
	}
	if err = s.Copy(tex); err != nil {
		t.Fatal(err)
	}

	if !g.dirty {
		t.Error("expected frame to be marked dirty")
	}
	if got := g.frame.RGBAAt(0, 0); got.B != 0xff || got.A != 0xff || got.R != 0 {
		t.Errorf("expected blue, got %v", got)
	}
	// Half transparent red is stored premultiplied.
	if got := g.frame.RGBAAt(1, 1); got.R != 0x80 || got.A != 0x80 {
		t.Errorf("expected premultiplied red, got %v", got)
	}
}

func TestSurfaceClosed(t *testing.T) {
	g := testGame(1, 1)
	s := &surface{game: g, vsync: true}
	close(g.done)

	tex, err := screen.NewMemoryTexture(pixel.FormatRGBA8888, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err = s.Copy(tex); err != ErrClosed {
		t.Errorf("expected ErrClosed from Copy, got %v", err)
	}
	if err = s.Present(); err != ErrClosed {
		t.Errorf("expected ErrClosed from Present, got %v", err)
	}
}

func TestPresentVSync(t *testing.T) {
	g := testGame(1, 1)
	s := &surface{game: g, vsync: true}
	g.vsync <- struct{}{}
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateTexture(t *testing.T) {
	s := &surface{game: testGame(1, 1)}
	if _, err := s.CreateTexture(pixel.FormatRGB565, 1, 1); err == nil {
		t.Error("expected an error for RGB565 textures")
	}
}

func TestLayout(t *testing.T) {
	g := testGame(320, 240)
	if w, h := g.Layout(1920, 1080); w != 320 || h != 240 {
		t.Errorf("expected 320x240, got %dx%d", w, h)
	}
}
