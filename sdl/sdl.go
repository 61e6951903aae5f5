// Package sdl is a display driver on top of SDL2.
//
// The screen is a borderless window centered on the display at the native
// resolution, rendered through an accelerated renderer and a streaming
// texture. SDL has to be driven from the main OS thread; callers should call
// runtime.LockOSThread from an init function.
package sdl

import (
	"fmt"
	"unsafe"

	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/pixel"
)

// Config for the SDL driver.
type Config struct {
	// Display index whose mode is used.
	Display int

	// VSync synchronizes Present with the display refresh.
	VSync bool

	// Software selects the software renderer over the accelerated one.
	Software bool
}

type driver struct {
	config Config
}

// New returns an SDL driver; config may be nil for defaults.
func New(config *Config) screen.Driver {
	d := new(driver)
	if config != nil {
		d.config = *config
	}
	return d
}

func (d *driver) String() string {
	return fmt.Sprintf("SDL %d.%d.%d", sdl2.MAJOR_VERSION, sdl2.MINOR_VERSION, sdl2.PATCHLEVEL)
}

func (d *driver) Init() error {
	return sdl2.Init(sdl2.INIT_VIDEO)
}

func (d *driver) Quit() {
	sdl2.Quit()
}

func (d *driver) DisplayMode() (screen.Mode, error) {
	mode, err := sdl2.GetCurrentDisplayMode(d.config.Display)
	if err != nil {
		return screen.Mode{}, err
	}
	return screen.Mode{
		Width:       int(mode.W),
		Height:      int(mode.H),
		RefreshRate: int(mode.RefreshRate),
	}, nil
}

func (d *driver) CreateWindow(title string, width, height int) (screen.Window, error) {
	w, err := sdl2.CreateWindow(title,
		sdl2.WINDOWPOS_CENTERED, sdl2.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl2.WINDOW_BORDERLESS)
	if err != nil {
		return nil, err
	}
	return &window{w: w, config: d.config}, nil
}

type window struct {
	w      *sdl2.Window
	config Config
}

func (w *window) CreateSurface() (screen.Surface, error) {
	var flags uint32 = sdl2.RENDERER_ACCELERATED
	if w.config.Software {
		flags = sdl2.RENDERER_SOFTWARE
	}
	if w.config.VSync {
		flags |= sdl2.RENDERER_PRESENTVSYNC
	}
	r, err := sdl2.CreateRenderer(w.w, -1, flags)
	if err != nil {
		return nil, err
	}
	return &surface{r: r}, nil
}

func (w *window) Destroy() error {
	return w.w.Destroy()
}

type surface struct {
	r *sdl2.Renderer
}

func (s *surface) SetBlendMode(mode screen.BlendMode) error {
	switch mode {
	case screen.BlendNone:
		return s.r.SetDrawBlendMode(sdl2.BLENDMODE_NONE)
	case screen.BlendAlpha:
		return s.r.SetDrawBlendMode(sdl2.BLENDMODE_BLEND)
	default:
		return fmt.Errorf("sdl: unsupported blend mode %s", mode)
	}
}

func (s *surface) CreateTexture(format pixel.Format, width, height int) (screen.Texture, error) {
	var f uint32
	switch format {
	case pixel.FormatRGBA8888:
		f = sdl2.PIXELFORMAT_RGBA8888
	case pixel.FormatRGB565:
		f = sdl2.PIXELFORMAT_RGB565
	default:
		return nil, fmt.Errorf("sdl: unsupported texture format %s", format)
	}
	t, err := s.r.CreateTexture(f, sdl2.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, err
	}
	return &texture{t: t}, nil
}

func (s *surface) Copy(t screen.Texture) error {
	st, ok := t.(*texture)
	if !ok {
		return fmt.Errorf("sdl: foreign texture %T", t)
	}
	return s.r.Copy(st.t, nil, nil)
}

func (s *surface) Present() error {
	s.r.Present()
	return nil
}

func (s *surface) Destroy() error {
	return s.r.Destroy()
}

type texture struct {
	t *sdl2.Texture
}

func (t *texture) Update(pix []byte, pitch int) error {
	if len(pix) == 0 {
		return fmt.Errorf("sdl: empty texture update")
	}
	return t.t.Update(nil, unsafe.Pointer(&pix[0]), pitch)
}

func (t *texture) Destroy() error {
	return t.t.Destroy()
}
