// Package conn implements the Linux spidev bus used by directly attached display panels.
package conn

import (
	"fmt"
	"os"

	"github.com/BeatGlow/screen/internal/ioctl"
)

// Definitions from <linux/spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02

	spiIOCMode        = 'k'<<8 | 1
	spiIOCBitsPerWord = 'k'<<8 | 3
	spiIOCMaxSpeedHz  = 'k'<<8 | 4
)

// SPIMode is the clock polarity and phase of the bus.
type SPIMode uint8

// SPI modes.
const (
	SPIMode0 SPIMode = 0
	SPIMode1 SPIMode = spiCPHA
	SPIMode2 SPIMode = spiCPOL
	SPIMode3 SPIMode = spiCPOL | spiCPHA
)

// spiDevPath is the device node prefix, followed by <bus>.<device>.
const spiDevPath = "/dev/spidev"

// SPI is an open spidev device.
type SPI struct {
	name        string
	f           *os.File
	fd          uintptr
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds to the CS pin for that bus.
func OpenSPI(bus, device int) (*SPI, error) {
	name := fmt.Sprintf("%s%d.%d", spiDevPath, bus, device)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		name: name,
		f:    f,
		fd:   f.Fd(),
	}
	if err = c.readConfig(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("conn: %s: %w", name, err)
	}
	return c, nil
}

func (c *SPI) readConfig() (err error) {
	if err = c.get(spiIOCMode, &c.mode); err != nil {
		return
	}
	if err = c.get(spiIOCBitsPerWord, &c.bitsPerWord); err != nil {
		return
	}
	return c.get(spiIOCMaxSpeedHz, &c.maxSpeedHz)
}

func (c *SPI) get(cmd uintptr, ptr any) error {
	return ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, ptr, cmd), ptr)
}

func (c *SPI) set(cmd uintptr, ptr any) error {
	return ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, ptr, cmd), ptr)
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("%s mode=%d bits per word=%d max speed=%dHz", c.name, c.mode, c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

// SetMode changes the SPI mode and reads it back to verify the device accepted it.
func (c *SPI) SetMode(mode SPIMode) error {
	mode &= 0x0f
	if err := c.set(spiIOCMode, &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := c.get(spiIOCMode, &test); err != nil {
		return err
	}
	if test != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}
	if c.bitsPerWord == bits {
		return nil
	}
	if err := c.set(spiIOCBitsPerWord, &bits); err != nil {
		return err
	}
	c.bitsPerWord = bits
	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

// SetMaxSpeed changes the maximum clock speed, negative values are ignored.
func (c *SPI) SetMaxSpeed(hz int) error {
	if hz < 0 {
		return nil
	}
	u := uint32(hz)
	if c.maxSpeedHz == u {
		return nil
	}
	if err := c.set(spiIOCMaxSpeedHz, &u); err != nil {
		return err
	}
	c.maxSpeedHz = u
	return nil
}

func (c *SPI) Read(b []byte) (n int, err error) {
	return c.f.Read(b)
}

// Write sends b as a half-duplex transfer.
func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}
