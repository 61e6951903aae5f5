// Package ebiten is a display driver on top of Ebitengine.
//
// Ebitengine owns its game loop, so the driver runs it in a goroutine of its
// own and hands frames over under a mutex; [screen.Screen] callers don't see
// it. The game loop can only run once per process, so a screen on this driver
// can't be reopened after Close.
package ebiten

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/pixel"
)

// Errors
var (
	ErrClosed  = errors.New("ebiten: window closed")
	ErrMonitor = errors.New("ebiten: no monitor")
)

// Config for the Ebitengine driver.
type Config struct {
	// VSync synchronizes Present with the drawn frames.
	VSync bool

	// Width and Height override the monitor size if not zero.
	Width  int
	Height int
}

var debug = os.Getenv("SCREEN_DEBUG") != ""

type driver struct {
	config Config
}

// New returns an Ebitengine driver; config may be nil for defaults.
func New(config *Config) screen.Driver {
	d := new(driver)
	if config != nil {
		d.config = *config
	}
	return d
}

func (d *driver) String() string {
	return "ebiten"
}

// Init does nothing, Ebitengine initializes on first use.
func (d *driver) Init() error {
	return nil
}

func (d *driver) Quit() {}

func (d *driver) DisplayMode() (screen.Mode, error) {
	if d.config.Width > 0 && d.config.Height > 0 {
		return screen.Mode{Width: d.config.Width, Height: d.config.Height, RefreshRate: 60}, nil
	}
	m := ebiten.Monitor()
	if m == nil {
		return screen.Mode{}, ErrMonitor
	}
	w, h := m.Size()
	return screen.Mode{Width: w, Height: h, RefreshRate: 60}, nil
}

func (d *driver) CreateWindow(title string, width, height int) (screen.Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ebiten: invalid window size %dx%d", width, height)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowSize(width, height)
	if m := ebiten.Monitor(); m != nil {
		mw, mh := m.Size()
		ebiten.SetWindowPosition((mw-width)/2, (mh-height)/2)
	}
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(d.config.VSync)
	return &window{
		config: d.config,
		width:  width,
		height: height,
	}, nil
}

type window struct {
	config        Config
	width, height int
}

// CreateSurface starts the game loop and waits for it to draw once.
func (w *window) CreateSurface() (screen.Surface, error) {
	g := &game{
		width:  w.width,
		height: w.height,
		frame:  image.NewRGBA(image.Rect(0, 0, w.width, w.height)),
		vsync:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(g.done)
		if err := ebiten.RunGame(g); err != nil {
			g.err = err
		}
	}()

	select {
	case <-g.vsync:
	case <-g.done:
		if g.err != nil {
			return nil, g.err
		}
		return nil, ErrClosed
	}
	return &surface{game: g, vsync: w.config.VSync}, nil
}

// Destroy does nothing, the window goes away with the game loop.
func (w *window) Destroy() error {
	return nil
}

type game struct {
	width, height int

	mu     sync.Mutex
	frame  *image.RGBA // premultiplied, as WritePixels wants it
	dirty  bool
	img    *ebiten.Image
	frames uint64

	vsync chan struct{}
	done  chan struct{}
	quit  atomic.Bool
	err   error
}

func (g *game) Update() error {
	if g.quit.Load() || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(dst *ebiten.Image) {
	g.mu.Lock()
	if g.img == nil {
		g.img = ebiten.NewImage(g.width, g.height)
	}
	if g.dirty {
		g.img.WritePixels(g.frame.Pix)
		g.dirty = false
	}
	g.frames++
	g.mu.Unlock()

	dst.DrawImage(g.img, nil)

	select {
	case g.vsync <- struct{}{}:
	default:
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

type surface struct {
	game    *game
	vsync   bool
	scratch *image.NRGBA
}

// SetBlendMode accepts any mode; frames replace the window contents.
func (s *surface) SetBlendMode(screen.BlendMode) error {
	return nil
}

func (s *surface) CreateTexture(format pixel.Format, width, height int) (screen.Texture, error) {
	if format != pixel.FormatRGBA8888 {
		return nil, fmt.Errorf("ebiten: unsupported texture format %s", format)
	}
	return screen.NewMemoryTexture(format, width, height)
}

// Copy converts the texture into the frame drawn next.
func (s *surface) Copy(t screen.Texture) error {
	mt, ok := t.(*screen.MemoryTexture)
	if !ok {
		return fmt.Errorf("ebiten: foreign texture %T", t)
	}
	select {
	case <-s.game.done:
		return ErrClosed
	default:
	}

	if s.scratch == nil {
		s.scratch = image.NewNRGBA(s.game.frame.Rect)
	}
	pixel.ToNRGBA(s.scratch, mt.Pix, mt.Pitch, binary.NativeEndian)

	g := s.game
	g.mu.Lock()
	draw.Draw(g.frame, g.frame.Rect, s.scratch, image.Point{}, draw.Src)
	g.dirty = true
	g.mu.Unlock()
	return nil
}

func (s *surface) Present() error {
	if !s.vsync {
		select {
		case <-s.game.done:
			return ErrClosed
		default:
			return nil
		}
	}
	select {
	case <-s.game.vsync:
		return nil
	case <-s.game.done:
		return ErrClosed
	}
}

// Destroy stops the game loop and waits for it to exit.
func (s *surface) Destroy() error {
	g := s.game
	g.quit.Store(true)
	<-g.done
	if debug {
		g.mu.Lock()
		log.Printf("ebiten: game loop stopped after %d frames", g.frames)
		g.mu.Unlock()
	}
	return g.err
}
