package screen

import (
	"fmt"

	"github.com/BeatGlow/screen/pixel"
)

// Mode is a display mode as reported by the platform.
type Mode struct {
	// Width in pixels.
	Width int

	// Height in pixels.
	Height int

	// RefreshRate in Hz, 0 if unknown.
	RefreshRate int
}

func (m Mode) String() string {
	if m.RefreshRate > 0 {
		return fmt.Sprintf("%dx%d@%dHz", m.Width, m.Height, m.RefreshRate)
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// BlendMode is the blend mode used by a Surface when drawing.
type BlendMode uint8

// Supported blend modes.
const (
	BlendNone  BlendMode = iota // No blending
	BlendAlpha                  // dst = src*srcA + dst*(1-srcA)
)

func (b BlendMode) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(b))
	}
}

// Driver is the platform graphics subsystem.
//
// A Driver produces exactly one Window; the Screen never asks for a second one.
type Driver interface {
	// Init initializes the graphics subsystem.
	Init() error

	// Quit shuts down the graphics subsystem. Only called after a successful Init.
	Quit()

	// DisplayMode returns the current (native) mode of the display.
	DisplayMode() (Mode, error)

	// CreateWindow creates a borderless window of the given size, centered on the display.
	CreateWindow(title string, width, height int) (Window, error)
}

// Window is an OS level window.
type Window interface {
	// CreateSurface creates the presentation surface bound to the window.
	CreateSurface() (Surface, error)

	// Destroy the window.
	Destroy() error
}

// Surface is where pixels actually get shown.
type Surface interface {
	// SetBlendMode sets the blend mode used for drawing operations.
	SetBlendMode(BlendMode) error

	// CreateTexture creates a streaming texture in the given pixel format.
	CreateTexture(format pixel.Format, width, height int) (Texture, error)

	// Copy the texture onto the full extent of the surface.
	Copy(Texture) error

	// Present makes the surface visible; it may block on vertical sync.
	Present() error

	// Destroy the surface.
	Destroy() error
}

// Texture is a streaming texture, used only as the transfer target for frame buffer bytes.
type Texture interface {
	// Update replaces the texture contents with pix, rows are pitch bytes apart.
	Update(pix []byte, pitch int) error

	// Destroy the texture.
	Destroy() error
}
