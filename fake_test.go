package screen

import (
	"errors"

	"github.com/BeatGlow/screen/pixel"
)

var errInjected = errors.New("injected failure")

// fakeDriver counts the resources it hands out and fails the step named by failAt.
type fakeDriver struct {
	mode   Mode
	failAt string

	inits, quits int
	live         map[string]int

	blend    BlendMode
	uploads  int
	copies   int
	presents int
	pitch    int
	uploaded []byte
}

func newFakeDriver(w, h int) *fakeDriver {
	return &fakeDriver{
		mode: Mode{Width: w, Height: h, RefreshRate: 60},
		live: make(map[string]int),
	}
}

func (d *fakeDriver) fail(step string) error {
	if d.failAt == step {
		return errInjected
	}
	return nil
}

func (d *fakeDriver) liveCount() (n int) {
	for _, v := range d.live {
		n += v
	}
	if d.inits > d.quits {
		n += d.inits - d.quits
	}
	return
}

func (d *fakeDriver) Init() error {
	if err := d.fail("init"); err != nil {
		return err
	}
	d.inits++
	return nil
}

func (d *fakeDriver) Quit() {
	d.quits++
}

func (d *fakeDriver) DisplayMode() (Mode, error) {
	if err := d.fail("mode"); err != nil {
		return Mode{}, err
	}
	return d.mode, nil
}

func (d *fakeDriver) CreateWindow(_ string, width, height int) (Window, error) {
	if err := d.fail("window"); err != nil {
		return nil, err
	}
	d.live["window"]++
	return &fakeWindow{d: d}, nil
}

type fakeWindow struct {
	d *fakeDriver
}

func (w *fakeWindow) CreateSurface() (Surface, error) {
	if err := w.d.fail("surface"); err != nil {
		return nil, err
	}
	w.d.live["surface"]++
	return &fakeSurface{d: w.d}, nil
}

func (w *fakeWindow) Destroy() error {
	w.d.live["window"]--
	return w.d.fail("window.destroy")
}

type fakeSurface struct {
	d *fakeDriver
}

func (s *fakeSurface) SetBlendMode(mode BlendMode) error {
	if err := s.d.fail("blend"); err != nil {
		return err
	}
	s.d.blend = mode
	return nil
}

func (s *fakeSurface) CreateTexture(format pixel.Format, width, height int) (Texture, error) {
	if err := s.d.fail("texture"); err != nil {
		return nil, err
	}
	s.d.live["texture"]++
	return &fakeTexture{d: s.d}, nil
}

func (s *fakeSurface) Copy(Texture) error {
	if err := s.d.fail("copy"); err != nil {
		return err
	}
	s.d.copies++
	return nil
}

func (s *fakeSurface) Present() error {
	if err := s.d.fail("present"); err != nil {
		return err
	}
	s.d.presents++
	return nil
}

func (s *fakeSurface) Destroy() error {
	s.d.live["surface"]--
	return nil
}

type fakeTexture struct {
	d *fakeDriver
}

func (t *fakeTexture) Update(pix []byte, pitch int) error {
	if err := t.d.fail("update"); err != nil {
		return err
	}
	t.d.uploads++
	t.d.pitch = pitch
	t.d.uploaded = append(t.d.uploaded[:0], pix...)
	return nil
}

func (t *fakeTexture) Destroy() error {
	t.d.live["texture"]--
	return nil
}
