// Package headless is a display driver without a display.
//
// Frames presented to it are kept in memory and can be inspected with
// [Driver.Snapshot], which is useful for tests and for rendering to images.
package headless

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/pixel"
)

// Config for the headless driver.
type Config struct {
	// Width and Height of the simulated display.
	Width  int
	Height int

	// RefreshRate of the simulated display in Hz.
	RefreshRate int
}

// DefaultConfig is used if no config is given.
var DefaultConfig = Config{
	Width:       800,
	Height:      600,
	RefreshRate: 60,
}

// ErrClosed is returned when using a destroyed resource.
var ErrClosed = errors.New("headless: use of destroyed resource")

// Driver records what happens to it.
type Driver struct {
	config Config

	mu    sync.Mutex
	frame *image.NRGBA

	// Inits and Quits count subsystem initialization and shutdown.
	Inits, Quits int

	// Presents counts the presented frames, Copies the texture copies.
	Presents, Copies int

	// LastPitch is the pitch of the most recent texture upload.
	LastPitch int

	// Live is the number of windows, surfaces and textures not destroyed yet.
	Live int

	texture *texture
}

// New returns a headless driver; config may be nil for the [DefaultConfig].
func New(config *Config) *Driver {
	d := &Driver{config: DefaultConfig}
	if config != nil {
		d.config = *config
	}
	return d
}

func (d *Driver) String() string {
	return fmt.Sprintf("headless %dx%d", d.config.Width, d.config.Height)
}

func (d *Driver) Init() error {
	d.Inits++
	return nil
}

func (d *Driver) Quit() {
	d.Quits++
}

func (d *Driver) DisplayMode() (screen.Mode, error) {
	return screen.Mode{
		Width:       d.config.Width,
		Height:      d.config.Height,
		RefreshRate: d.config.RefreshRate,
	}, nil
}

func (d *Driver) CreateWindow(_ string, width, height int) (screen.Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("headless: invalid window size %dx%d", width, height)
	}
	d.Live++
	return &window{driver: d, width: width, height: height}, nil
}

// Uploads returns the number of texture updates, 0 if there is no texture.
func (d *Driver) Uploads() int {
	if d.texture == nil {
		return 0
	}
	return d.texture.Updates
}

// Snapshot returns a copy of the last presented frame, or nil if nothing was
// presented yet. It is safe to call from any goroutine.
func (d *Driver) Snapshot() *image.NRGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return nil
	}
	c := image.NewNRGBA(d.frame.Rect)
	copy(c.Pix, d.frame.Pix)
	return c
}

type window struct {
	driver        *Driver
	width, height int
	destroyed     bool
}

func (w *window) CreateSurface() (screen.Surface, error) {
	if w.destroyed {
		return nil, ErrClosed
	}
	w.driver.Live++
	return &surface{window: w, blend: screen.BlendNone}, nil
}

func (w *window) Destroy() error {
	if w.destroyed {
		return ErrClosed
	}
	w.destroyed = true
	w.driver.Live--
	return nil
}

type surface struct {
	window    *window
	blend     screen.BlendMode
	copied    *texture
	destroyed bool
}

func (s *surface) SetBlendMode(mode screen.BlendMode) error {
	s.blend = mode
	return nil
}

func (s *surface) CreateTexture(format pixel.Format, width, height int) (screen.Texture, error) {
	if s.destroyed {
		return nil, ErrClosed
	}
	if format != pixel.FormatRGBA8888 {
		return nil, fmt.Errorf("headless: unsupported texture format %s", format)
	}
	mt, err := screen.NewMemoryTexture(format, width, height)
	if err != nil {
		return nil, err
	}
	t := &texture{MemoryTexture: mt, driver: s.window.driver}
	s.window.driver.texture = t
	s.window.driver.Live++
	return t, nil
}

func (s *surface) Copy(t screen.Texture) error {
	if s.destroyed {
		return ErrClosed
	}
	ht, ok := t.(*texture)
	if !ok {
		return fmt.Errorf("headless: foreign texture %T", t)
	}
	s.copied = ht
	s.window.driver.Copies++
	return nil
}

func (s *surface) Present() error {
	if s.destroyed {
		return ErrClosed
	}
	d := s.window.driver
	d.Presents++
	if s.copied == nil {
		return nil
	}

	t := s.copied
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil || d.frame.Rect.Dx() != t.Width || d.frame.Rect.Dy() != t.Height {
		d.frame = image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	}
	pixel.ToNRGBA(d.frame, t.Pix, t.Pitch, binary.NativeEndian)
	return nil
}

func (s *surface) Destroy() error {
	if s.destroyed {
		return ErrClosed
	}
	s.destroyed = true
	s.window.driver.Live--
	return nil
}

type texture struct {
	*screen.MemoryTexture
	driver *Driver
}

func (t *texture) Update(pix []byte, pitch int) error {
	if err := t.MemoryTexture.Update(pix, pitch); err != nil {
		return err
	}
	t.driver.LastPitch = pitch
	return nil
}

func (t *texture) Destroy() error {
	if t.Pix == nil {
		return ErrClosed
	}
	t.driver.Live--
	return t.MemoryTexture.Destroy()
}

var _ screen.Driver = (*Driver)(nil)
