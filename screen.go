// Package screen is a software frame buffer that is presented to a display once per frame.
//
// A [Screen] owns a window, a presentation surface, a streaming texture and a
// frame buffer sized to the native display resolution. A renderer clears the
// buffer, writes individual pixels and calls [Screen.Present]; frame cadence
// and input are left to the caller.
//
// The platform is reached through the [Driver] interface. This package has a
// driver for SPI connected ST7789 panels; the sdl, ebiten, framebuffer and
// headless packages implement the others.
package screen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"os"

	"github.com/BeatGlow/screen/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("SCREEN_DEBUG") != ""
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf("screen: "+format, args...)
	}
}

// Config is the screen configuration.
type Config struct {
	// Title of the window, for drivers that show one.
	Title string

	// ErrorLog receives initialization diagnostics. If nil, they are logged to standard error.
	ErrorLog *log.Logger

	// MaxBufferSize limits the frame buffer size in bytes, 0 means no limit.
	MaxBufferSize int
}

var defaultErrorLog = log.New(os.Stderr, "", log.LstdFlags)

// Screen is a frame buffer bound to a display.
//
// A Screen is not safe for concurrent use; all methods must be called from the
// goroutine that called [Screen.Init].
type Screen struct {
	driver  Driver
	config  Config
	state   State
	running bool // driver.Init succeeded, driver.Quit is pending
	mode    Mode
	width   int
	height  int
	window  Window
	surface Surface
	buffer  *pixel.RGBA8888Image
	texture Texture
}

// New returns an uninitialized screen, call [Screen.Init] before use.
func New(driver Driver, config *Config) *Screen {
	s := &Screen{driver: driver}
	if config != nil {
		s.config = *config
	}
	return s
}

// Open a screen on the display of driver. On error, nothing is left acquired.
func Open(driver Driver, config *Config) (*Screen, error) {
	s := New(driver, config)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init acquires the display device, allocates the frame buffer and creates the
// presentation texture, in that order.
//
// If any step fails, everything acquired by the earlier steps is released and
// an [*InitError] is returned; the screen is back in the [Uninit] state.
func (s *Screen) Init() error {
	if s.state != Uninit {
		return fmt.Errorf("%w: init called in %s state", ErrState, s.state)
	}
	if s.driver == nil {
		return s.fail(fmt.Errorf("%w: no driver", ErrInit))
	}

	if err := s.initDevice(); err != nil {
		return s.fail(err)
	}
	s.state = DeviceReady
	debugf("device ready, display mode %s", s.mode)

	if err := s.initBuffer(); err != nil {
		return s.fail(err)
	}
	s.state = BufferReady
	debugf("frame buffer ready, %d bytes", len(s.buffer.Pix))

	if err := s.initTexture(); err != nil {
		return s.fail(err)
	}
	s.state = Ready
	debugf("ready")

	return nil
}

func (s *Screen) initDevice() error {
	if err := s.driver.Init(); err != nil {
		return stepError(ErrInit, err)
	}
	s.running = true

	mode, err := s.driver.DisplayMode()
	if err != nil {
		return stepError(ErrDisplayMode, err)
	}
	if mode.Width <= 0 || mode.Height <= 0 {
		return fmt.Errorf("%w: invalid mode %s", ErrDisplayMode, mode)
	}
	s.mode = mode

	window, err := s.driver.CreateWindow(s.config.Title, mode.Width, mode.Height)
	if err != nil {
		return stepError(ErrWindow, err)
	}
	s.window = window

	surface, err := window.CreateSurface()
	if err != nil {
		return stepError(ErrSurface, err)
	}
	s.surface = surface

	if err = surface.SetBlendMode(BlendAlpha); err != nil {
		s.logf("screen: unable to set %s blend mode: %v", BlendAlpha, err)
	}
	return nil
}

func (s *Screen) initBuffer() error {
	buffer, err := allocBuffer(s.mode.Width, s.mode.Height, s.config.MaxBufferSize)
	if err != nil {
		return stepError(ErrBuffer, err)
	}
	s.buffer = buffer
	s.width, s.height = s.mode.Width, s.mode.Height
	return nil
}

// allocBuffer reports allocation failure as an error instead of crashing.
// Running out of memory proper is fatal to the Go runtime and can't be caught.
func allocBuffer(w, h, limit int) (buffer *pixel.RGBA8888Image, err error) {
	if w > math.MaxInt/4/h {
		return nil, fmt.Errorf("%dx%d pixels overflows the addressable size", w, h)
	}
	if size := w * h * 4; limit > 0 && size > limit {
		return nil, fmt.Errorf("%d bytes exceeds the limit of %d bytes", size, limit)
	}

	defer func() {
		if r := recover(); r != nil {
			buffer, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return pixel.NewRGBA8888Image(w, h), nil
}

func (s *Screen) initTexture() error {
	texture, err := s.surface.CreateTexture(pixel.FormatRGBA8888, s.width, s.height)
	if err != nil {
		return stepError(ErrTexture, err)
	}
	s.texture = texture
	return nil
}

func (s *Screen) fail(err error) error {
	last := s.state
	s.state = Failed
	s.logf("%v", err)
	if cerr := s.teardown(); cerr != nil {
		s.logf("screen: teardown after failed initialization: %v", cerr)
	}
	return &InitError{State: last, Err: err}
}

func (s *Screen) logf(format string, args ...any) {
	if s.config.ErrorLog != nil {
		s.config.ErrorLog.Printf(format, args...)
	} else {
		defaultErrorLog.Printf(format, args...)
	}
}

// Close releases the texture, frame buffer, surface and window, and shuts
// down the graphics subsystem. It is safe to call more than once, on a screen
// that was never initialized and on a nil Screen.
func (s *Screen) Close() error {
	if s == nil {
		return nil
	}
	return s.teardown()
}

func (s *Screen) teardown() error {
	var errs []error
	if s.texture != nil {
		if err := s.texture.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("screen: destroy texture: %w", err))
		}
		s.texture = nil
	}
	s.buffer = nil
	s.width, s.height = 0, 0
	if s.surface != nil {
		if err := s.surface.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("screen: destroy surface: %w", err))
		}
		s.surface = nil
	}
	if s.window != nil {
		if err := s.window.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("screen: destroy window: %w", err))
		}
		s.window = nil
	}
	if s.running {
		s.driver.Quit()
		s.running = false
	}
	if s.state != Uninit {
		debugf("teardown from %s state", s.state)
	}
	s.state = Uninit
	return errors.Join(errs...)
}

// State returns the current state.
func (s *Screen) State() State {
	return s.state
}

// Mode is the display mode the screen was initialized with.
func (s *Screen) Mode() Mode {
	return s.mode
}

// Size returns the frame buffer dimensions, fixed at initialization.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// Bounds is the frame buffer bounding box.
func (s *Screen) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Screen) ColorModel() color.Model {
	return pixel.RGBA8888Model
}

func (s *Screen) String() string {
	return fmt.Sprintf("screen %dx%d (%s)", s.width, s.height, s.state)
}

// Clear sets every pixel of the frame buffer to c.
func (s *Screen) Clear(c pixel.RGBA8888) {
	s.buffer.FillRGBA8888(c)
}

// DrawPixel sets the pixel at (x, y) to c. Writes outside of the screen are
// discarded, so rasterizers may produce coordinates just off screen.
func (s *Screen) DrawPixel(x, y int, c pixel.RGBA8888) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		binary.NativeEndian.PutUint32(s.buffer.Pix[(y*s.width+x)*4:], uint32(c))
	}
}

// Pixel returns the color at (x, y), or [pixel.Transparent] outside of the screen.
func (s *Screen) Pixel(x, y int) pixel.RGBA8888 {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		return pixel.RGBA8888(binary.NativeEndian.Uint32(s.buffer.Pix[(y*s.width+x)*4:]))
	}
	return pixel.Transparent
}

func (s *Screen) At(x, y int) color.Color {
	return s.Pixel(x, y)
}

func (s *Screen) Set(x, y int, c color.Color) {
	if v, ok := c.(pixel.RGBA8888); ok {
		s.DrawPixel(x, y, v)
		return
	}
	s.DrawPixel(x, y, pixel.RGBA8888Model.Convert(c).(pixel.RGBA8888))
}

// Present uploads the frame buffer into the texture, copies the texture onto
// the surface and presents the surface. Errors are returned as is, there is no
// attempt to recover.
func (s *Screen) Present() error {
	if s.state != Ready {
		return fmt.Errorf("%w: present called in %s state", ErrState, s.state)
	}
	if err := s.texture.Update(s.buffer.Pix, s.buffer.Stride); err != nil {
		return stepError(ErrPresent, err)
	}
	if err := s.surface.Copy(s.texture); err != nil {
		return stepError(ErrPresent, err)
	}
	if err := s.surface.Present(); err != nil {
		return stepError(ErrPresent, err)
	}
	return nil
}

var _ draw.Image = (*Screen)(nil)
