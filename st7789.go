package screen

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/screen/conn"
	"github.com/BeatGlow/screen/pixel"
)

const (
	st7789DefaultWidth  = 240
	st7789DefaultHeight = 240
	st7789RefreshRate   = 60 // FRCTR2 0x0F
	st7789BatchSize     = 4096
)

// Registers (from st7789.pdf).
const (
	st7789SLPOUT    = 0x11 // Sleep Out
	st7789INVON     = 0x21 // Display Inversion On
	st7789DISPOFF   = 0x28 // Display Off
	st7789DISPON    = 0x29 // Display On
	st7789CASET     = 0x2A // Column Address Set
	st7789RASET     = 0x2B // Row Address Set
	st7789RAMWR     = 0x2C // Memory Write
	st7789MADCTL    = 0x36 // Memory Data Access Control
	st7789COLMOD    = 0x3A // Interface Pixel Format
	st7789PORCTRL   = 0xB2 // Porch Setting
	st7789GCTRL     = 0xB7 // Gate Control
	st7789VCOMS     = 0xBB // VCOM Setting
	st7789LCMCTRL   = 0xC0 // LCM Control
	st7789VDVVRHEN  = 0xC2 // VDV and VRH Command Enable
	st7789VRHS      = 0xC3 // VRH Set
	st7789VDVSET    = 0xC4 // VDV Set
	st7789VCMOFSET  = 0xC5 // VCOM Offset Set
	st7789FRCTR2    = 0xC6 // Frame Rate Control in Normal Mode
	st7789PWCTRL1   = 0xD0 // Power Control 1
	st7789PVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789NVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                           byte = 1 << iota // D0: reserved
	_                                            // D1: reserved
	st7789DisplayDataLatchOrder                  // D2: MH
	st7789RGBOrder                               // D3: RGB
	st7789LineAddressOrder                       // D4: ML
	st7789PageColumnOrder                        // D5: MV
	st7789ColumnAddressOrder                     // D6: MX
	st7789PageAddressOrder                       // D7: MY
)

// PanelConfig is the configuration of a directly attached display panel.
type PanelConfig struct {
	// Width of the panel in pixels, 0 selects the controller default.
	Width int

	// Height of the panel in pixels, 0 selects the controller default.
	Height int

	// Rotation of the panel.
	Rotation Rotation

	// Backlight pin, optional.
	Backlight gpio.PinOut

	// ColOffset and RowOffset position the glass inside the controller RAM.
	ColOffset int
	RowOffset int
}

type st7789 struct {
	c         Conn
	config    PanelConfig
	width     int
	height    int
	colOffset int
	rowOffset int
	rotation  Rotation
}

// ST7789 is a driver for a ST7789 TFT panel, the panel resolution is its display mode.
//
// The connection is owned by the caller and is not closed by Quit.
func ST7789(c Conn, config *PanelConfig) Driver {
	d := &st7789{c: c}
	if config != nil {
		d.config = *config
	}
	return d
}

func (d *st7789) String() string {
	return fmt.Sprintf("ST7789 %dx%d", d.width, d.height)
}

// command shadows Conn.Command, the ST7789 wants every argument as a separate data transfer.
func (d *st7789) command(command byte, data ...byte) (err error) {
	if err = d.c.Command(command); err != nil {
		return
	}
	for _, data := range data {
		if err = d.c.Data(data); err != nil {
			return
		}
	}
	return
}

func (d *st7789) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *st7789) Init() (err error) {
	// Update mode and speed
	if spi, ok := d.c.(SPI); ok {
		spi.SetDataLow(false)
		if err = spi.SetMode(conn.SPIMode3); err != nil {
			return
		}
		if err = spi.SetMaxSpeed(40_000_000); err != nil {
			return
		}
	}

	config := d.config
	if config.Width == 0 {
		config.Width = st7789DefaultWidth
	}
	if config.Height == 0 {
		config.Height = st7789DefaultHeight
	}
	if (config.Rotation == NoRotation || config.Rotation == Rotate180) && (config.Width > 240 || config.Height > 320) {
		return fmt.Errorf("st7789: invalid size %dx%d, maximum size is 240x320 at %s rotation", config.Width, config.Height, config.Rotation)
	} else if (config.Rotation == Rotate90 || config.Rotation == Rotate270) && (config.Width > 320 || config.Height > 240) {
		return fmt.Errorf("st7789: invalid size %dx%d, maximum size is 320x240 at %s rotation", config.Width, config.Height, config.Rotation)
	}
	d.width, d.height = config.Width, config.Height
	d.colOffset, d.rowOffset = config.ColOffset, config.RowOffset

	// reset the device.
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err = d.c.Reset(level); err != nil {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err = d.command(st7789SLPOUT); err != nil { // Sleep Out
		return
	}
	time.Sleep(150 * time.Millisecond)

	if err = d.commands([][]byte{
		{st7789COLMOD, 0x05},        // Interface Pixel Format: 8-bit data bus for 16-bit/pixel (RGB 5-6-5-bit input)
		{st7789PORCTRL, 0x0C, 0x0C}, // Porch Setting: default
		{st7789GCTRL, 0x35},         // Gate Control: 13.26V / -10.43V (default)
		{st7789VCOMS, 0x1A},         // VCOM Setting: 0.75V (default is 0x20 / 0.9V)
		{st7789LCMCTRL, 0x2C},       // LCM Control: default
		{st7789VDVVRHEN, 0x01},      // VDV and VRH Command Enable: default
		{st7789VRHS, 0x0B},          // VRH Set: default (4.1V+( vcom+vcom offset+vdv))
		{st7789VDVSET, 0x20},        // VDV Set: default (0V)
		{st7789VCMOFSET, 0x20},      // VCOM Offset Set: default (0V)
		{st7789FRCTR2, 0x0F},        // Frame Rate Control in Normal Mode: 60Hz (default)
		{st7789PWCTRL1, 0xA4, 0xA1}, // Power Control 1: default
		{st7789INVON},               // Display Inversion On
		{st7789PVGAMCTRL, 0x00, 0x19, 0x1E, 0x0A, 0x09, 0x15, 0x3D, 0x44, 0x51, 0x12, 0x03, 0x00, 0x3F, 0x3F}, // Positive Voltage Gamma Control: default
		{st7789NVGAMCTRL, 0x00, 0x18, 0x1E, 0x0A, 0x09, 0x25, 0x3F, 0x43, 0x52, 0x33, 0x03, 0x00, 0x3F, 0x3F}, // Negative Voltage Gamma Control: default
	}); err != nil {
		return
	}

	if err = d.setRotation(config.Rotation); err != nil {
		return
	}
	if config.Backlight != nil {
		if err = config.Backlight.Out(gpio.High); err != nil {
			return
		}
	}
	return
}

// Quit turns the panel and its backlight off.
func (d *st7789) Quit() {
	if err := d.command(st7789DISPOFF); err != nil {
		debugf("st7789: display off: %v", err)
	}
	if d.config.Backlight != nil {
		if err := d.config.Backlight.Out(gpio.Low); err != nil {
			debugf("st7789: backlight off: %v", err)
		}
	}
}

func (d *st7789) DisplayMode() (Mode, error) {
	return Mode{Width: d.width, Height: d.height, RefreshRate: st7789RefreshRate}, nil
}

func (d *st7789) CreateWindow(_ string, width, height int) (Window, error) {
	if width != d.width || height != d.height {
		return nil, fmt.Errorf("st7789: window %dx%d does not match the %dx%d panel", width, height, d.width, d.height)
	}
	if err := d.command(st7789DISPON); err != nil {
		return nil, err
	}
	return &panelWindow{d: d}, nil
}

func (d *st7789) setRotation(rotation Rotation) error {
	rotation &= 3

	var madctl byte
	switch rotation {
	case NoRotation:
		madctl = 0
	case Rotate90:
		madctl = st7789ColumnAddressOrder | st7789PageColumnOrder
	case Rotate180:
		madctl = st7789ColumnAddressOrder | st7789PageAddressOrder
	case Rotate270:
		madctl = st7789PageAddressOrder | st7789PageColumnOrder
	}

	d.rotation = rotation
	return d.command(st7789MADCTL, madctl)
}

func (d *st7789) setWindow(x0, y0, x1, y1 int) error {
	if d.rotation == Rotate90 || d.rotation == Rotate270 {
		x0 += d.rowOffset
		y0 += d.colOffset
		x1 += d.rowOffset
		y1 += d.colOffset
	} else {
		x0 += d.colOffset
		y0 += d.rowOffset
		x1 += d.colOffset
		y1 += d.rowOffset
	}
	return d.commands([][]byte{
		{st7789CASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}, // Column address
		{st7789RASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}, // Row address
		{st7789RAMWR}, // Write to RAM
	})
}

type panelWindow struct {
	d *st7789
}

func (w *panelWindow) CreateSurface() (Surface, error) {
	return &panelSurface{
		d:     w.d,
		frame: pixel.NewCRGB16Image(w.d.width, w.d.height),
	}, nil
}

// Destroy blanks the panel.
func (w *panelWindow) Destroy() error {
	return w.d.command(st7789DISPOFF)
}

// panelSurface holds the frame in the panel's RGB565 wire format.
type panelSurface struct {
	d     *st7789
	frame *pixel.CRGB16Image
	blend BlendMode
}

// SetBlendMode is recorded only, full frame copies never blend.
func (s *panelSurface) SetBlendMode(mode BlendMode) error {
	s.blend = mode
	return nil
}

func (s *panelSurface) CreateTexture(format pixel.Format, width, height int) (Texture, error) {
	if format != pixel.FormatRGBA8888 {
		return nil, fmt.Errorf("st7789: unsupported texture format %s", format)
	}
	return NewMemoryTexture(format, width, height)
}

func (s *panelSurface) Copy(t Texture) error {
	mt, ok := t.(*MemoryTexture)
	if !ok {
		return fmt.Errorf("st7789: foreign texture %T", t)
	}
	s.frame.CopyRGBA8888(mt.Pix, mt.Pitch, binary.NativeEndian)
	return nil
}

// Present sends the frame to the panel RAM.
func (s *panelSurface) Present() error {
	if err := s.d.setWindow(0, 0, s.d.width-1, s.d.height-1); err != nil {
		return err
	}
	pix := s.frame.Pix
	for i, l := 0, len(pix); i < l; i += st7789BatchSize {
		j := min(i+st7789BatchSize, l)
		if err := s.d.c.Data(pix[i:j]...); err != nil {
			return err
		}
	}
	return nil
}

func (s *panelSurface) Destroy() error {
	s.frame = nil
	return nil
}
