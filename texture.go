package screen

import (
	"fmt"

	"github.com/BeatGlow/screen/pixel"
)

// MemoryTexture is a [Texture] kept in system memory, for drivers without
// storage of their own on the display side.
type MemoryTexture struct {
	Format pixel.Format
	Width  int
	Height int

	// Pix holds the last uploaded pixels, Pitch bytes per row.
	Pix   []byte
	Pitch int

	// Updates counts the calls to Update.
	Updates int
}

// NewMemoryTexture allocates a texture of the given format and size.
func NewMemoryTexture(format pixel.Format, width, height int) (*MemoryTexture, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("screen: unsupported texture format %s", format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen: invalid texture size %dx%d", width, height)
	}
	return &MemoryTexture{
		Format: format,
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*bpp*height),
		Pitch:  width * bpp,
	}, nil
}

// Update copies a full texture worth of rows from pix.
func (t *MemoryTexture) Update(pix []byte, pitch int) error {
	if t.Pix == nil {
		return fmt.Errorf("screen: update of destroyed texture")
	}
	if pitch < t.Pitch {
		return fmt.Errorf("screen: pitch %d is less than the texture row size of %d bytes", pitch, t.Pitch)
	}
	if need := pitch*(t.Height-1) + t.Pitch; len(pix) < need {
		return fmt.Errorf("screen: texture update of %d bytes, need %d", len(pix), need)
	}
	if pitch == t.Pitch {
		copy(t.Pix, pix)
	} else {
		for y := 0; y < t.Height; y++ {
			copy(t.Pix[y*t.Pitch:(y+1)*t.Pitch], pix[y*pitch:])
		}
	}
	t.Updates++
	return nil
}

// Destroy releases the pixels.
func (t *MemoryTexture) Destroy() error {
	t.Pix = nil
	return nil
}

var _ Texture = (*MemoryTexture)(nil)
