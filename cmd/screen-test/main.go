package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/draw"
	"github.com/BeatGlow/screen/ebiten"
	"github.com/BeatGlow/screen/framebuffer"
	"github.com/BeatGlow/screen/headless"
	"github.com/BeatGlow/screen/pixel"
	"github.com/BeatGlow/screen/sdl"
)

func init() {
	// SDL wants to be called from the main thread.
	runtime.LockOSThread()
}

func main() {
	driverFlag := flag.String("driver", "sdl", "Display driver (sdl, ebiten, fbdev, st7789, headless)")
	titleFlag := flag.String("title", "screen-test", "Window title")
	vsyncFlag := flag.Bool("vsync", true, "Synchronize with the display refresh")
	fbFlag := flag.String("fb", framebuffer.DefaultDevice, "Framebuffer device")
	widthFlag := flag.Int("width", 0, "Display width (st7789, headless)")
	heightFlag := flag.Int("height", 0, "Display height (st7789, headless)")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "GPIO8", "Chip enable GPIO pin")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	framesFlag := flag.Int("frames", 0, "Number of frames to present, 0 runs until interrupted")
	outFlag := flag.String("out", "", "Write the last frame as PNG (headless)")
	flag.Parse()

	var (
		driver screen.Driver
		dummy  *headless.Driver
	)
	switch name := strings.ToLower(*driverFlag); name {
	case "sdl":
		driver = sdl.New(&sdl.Config{VSync: *vsyncFlag})
	case "ebiten":
		driver = ebiten.New(&ebiten.Config{VSync: *vsyncFlag})
	case "fbdev", "framebuffer":
		driver = framebuffer.New(*fbFlag)
	case "st7789":
		rotation, ok := screen.ParseRotation(*rotateFlag)
		if !ok {
			fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
		}
		fmt.Printf("using rotation: %s\n", rotation)

		if _, err := host.Init(); err != nil {
			fatal(err)
		}
		conn, err := screen.OpenSPI(&screen.SPIConfig{
			Bus:    *spiBusFlag,
			Device: *spiDeviceFlag,
			Reset:  gpioreg.ByName(*resetPinFlag),
			DC:     gpioreg.ByName(*dcPinFlag),
			CE:     gpioreg.ByName(*cePinFlag),
		})
		if err != nil {
			fatal(err)
		}
		defer conn.Close()
		fmt.Printf("using connection: %s\n", conn)

		driver = screen.ST7789(conn, &screen.PanelConfig{
			Width:     *widthFlag,
			Height:    *heightFlag,
			Rotation:  rotation,
			Backlight: gpioreg.ByName(*blPinFlag),
		})
	case "headless":
		config := headless.DefaultConfig
		if *widthFlag > 0 && *heightFlag > 0 {
			config.Width, config.Height = *widthFlag, *heightFlag
		}
		dummy = headless.New(&config)
		driver = dummy
		if *framesFlag == 0 {
			*framesFlag = 1
		}
	default:
		fatal(fmt.Errorf("unsupported driver %q", name))
	}

	output, err := screen.Open(driver, &screen.Config{Title: *titleFlag})
	if err != nil {
		fatal(err)
	}
	defer output.Close()
	fmt.Printf("using driver: %s on %s\n", driver, output.Mode())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var (
		offset int
		ticker = time.NewTicker(time.Second / 60)
	)
	defer ticker.Stop()

	if *framesFlag == 0 {
		fmt.Println("hit control-c to stop...")
	}
	for *framesFlag == 0 || offset < *framesFlag {
		if err = drawFrame(output, offset); err != nil {
			fatal(err)
		}
		if err = output.Present(); err != nil {
			fatal(err)
		}
		offset++

		select {
		case <-ticker.C:
		case <-interrupt:
			*framesFlag = offset
		}
	}

	if dummy != nil && *outFlag != "" {
		if err = writePNG(*outFlag, dummy.Snapshot()); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *outFlag)
	}
}

func drawFrame(output *screen.Screen, offset int) error {
	r := output.Bounds()
	output.Clear(pixel.Black)

	// Draw gradient inside box
	for y := 1; y < r.Max.Y-1; y++ {
		for x := 1; x < r.Max.X-1; x++ {
			output.DrawPixel(x, y, pixel.NewRGBA8888(
				uint8(x+y+offset),
				uint8(x-y+offset),
				uint8(x+y-offset),
				0xff))
		}
	}

	// Draw box around edge
	draw.Rectangle(output, r, pixel.White)

	var (
		size   = r.Size()
		center = image.Pt(size.X/2, size.Y/2)
		radius = min(size.X, size.Y) / 4
	)
	draw.Disc(output, center, radius, color.RGBA{A: 0xff})
	draw.Circle(output, center, radius, pixel.White)

	box := image.Rect(5, 5, min(125, r.Max.X-5), min(25, r.Max.Y-5))
	draw.RoundedBox(output, box, 5, pixel.Black)

	_, err := draw.Text(output, image.Pt(box.Min.X+6, box.Max.Y-6), fmt.Sprintf("frame %d", offset), draw.Font{}, pixel.White)
	return err
}

func writePNG(name string, frame image.Image) error {
	if frame == nil {
		return fmt.Errorf("no frame presented")
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, frame); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
