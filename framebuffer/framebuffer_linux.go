package framebuffer

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/BeatGlow/screen"
	"github.com/BeatGlow/screen/internal/ioctl"
	"github.com/BeatGlow/screen/pixel"
)

// From <linux/fb.h>
var (
	fbioGetVScreenInfo = ioctl.Command(0x4600)
	fbioGetFScreenInfo = ioctl.Command(0x4602)
	fbioWaitForVSync   = ioctl.Encode(ioctl.Write, 4, 'F'<<8|0x20)
)

type linuxFrameBuffer struct {
	name       string
	f          *os.File
	fd         uintptr
	info       fixScreenInfo
	screenInfo varScreenInfo
	layout     layout
}

// New returns a driver for the Linux framebuffer device (fbdev) by name,
// typically /dev/fb[0..x]. The device is opened by Init.
func New(name string) screen.Driver {
	if name == "" {
		name = DefaultDevice
	}
	return &linuxFrameBuffer{name: name}
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("framebuffer %s (%s)", fb.name, fb.layout)
}

func (fb *linuxFrameBuffer) Init() (err error) {
	if fb.f, err = os.OpenFile(fb.name, os.O_RDWR, os.ModeDevice); err != nil {
		return
	}
	fb.fd = fb.f.Fd()

	if err = fb.ioctl(fbioGetFScreenInfo, unsafe.Pointer(&fb.info)); err != nil {
		fb.Quit()
		return
	}

	// Request virtual screen info.
	if err = fb.ioctl(fbioGetVScreenInfo, unsafe.Pointer(&fb.screenInfo)); err != nil {
		fb.Quit()
		return
	}
	if fb.layout, err = parseLayout(&fb.screenInfo); err != nil {
		fb.Quit()
		return
	}
	return nil
}

// Quit closes the framebuffer device.
func (fb *linuxFrameBuffer) Quit() {
	if fb.f != nil {
		_ = fb.f.Close()
		fb.f = nil
	}
}

func (fb *linuxFrameBuffer) DisplayMode() (screen.Mode, error) {
	return screen.Mode{
		Width:       int(fb.screenInfo.Xres),
		Height:      int(fb.screenInfo.Yres),
		RefreshRate: fb.screenInfo.refreshRate(),
	}, nil
}

// CreateWindow maps the framebuffer memory; the window has to fit the visible resolution.
func (fb *linuxFrameBuffer) CreateWindow(_ string, width, height int) (screen.Window, error) {
	if width > int(fb.screenInfo.Xres) || height > int(fb.screenInfo.Yres) {
		return nil, fmt.Errorf("framebuffer: window %dx%d exceeds the %dx%d display", width, height, fb.screenInfo.Xres, fb.screenInfo.Yres)
	}

	// Map pixel buffer.
	mem, err := syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	var (
		stride = int(fb.info.LineLength)
		offset = int(fb.screenInfo.Yoffset)*stride + int(fb.screenInfo.Xoffset)*fb.layout.bytes
	)
	if offset+(height-1)*stride+width*fb.layout.bytes > len(mem) {
		_ = syscall.Munmap(mem)
		return nil, fmt.Errorf("framebuffer: %d bytes of memory can't hold a %dx%d window", len(mem), width, height)
	}

	return &window{
		fb:     fb,
		mem:    mem,
		pix:    mem[offset:],
		stride: stride,
		width:  width,
		height: height,
	}, nil
}

func (fb *linuxFrameBuffer) ioctl(cmd ioctl.Command, arg unsafe.Pointer) error {
	return ioctl.Call(fb.fd, cmd, arg)
}

type window struct {
	fb     *linuxFrameBuffer
	mem    []byte
	pix    []byte
	stride int
	width  int
	height int

	noVSync bool
}

func (w *window) CreateSurface() (screen.Surface, error) {
	return w, nil
}

// Destroy unmaps the framebuffer memory; the window doubles as its surface.
func (w *window) Destroy() error {
	if w.mem == nil {
		return nil
	}
	mem := w.mem
	w.mem, w.pix = nil, nil
	return syscall.Munmap(mem)
}

func (w *window) SetBlendMode(screen.BlendMode) error {
	return nil
}

func (w *window) CreateTexture(format pixel.Format, width, height int) (screen.Texture, error) {
	if format != pixel.FormatRGBA8888 {
		return nil, fmt.Errorf("%w: texture format %s", ErrFormat, format)
	}
	return screen.NewMemoryTexture(format, width, height)
}

// Copy converts the texture into the framebuffer pixel layout, clipped to the window.
func (w *window) Copy(t screen.Texture) error {
	mt, ok := t.(*screen.MemoryTexture)
	if !ok {
		return fmt.Errorf("framebuffer: foreign texture %T", t)
	}
	if w.pix == nil {
		return fmt.Errorf("framebuffer: copy to destroyed window")
	}
	w.fb.layout.pack(w.pix, w.stride, mt.Pix, mt.Pitch, min(mt.Width, w.width), min(mt.Height, w.height))
	return nil
}

// Present waits for vertical sync, if the device supports it. The pixels are
// visible as soon as Copy writes them.
func (w *window) Present() error {
	if w.noVSync {
		return nil
	}
	var arg uint32
	if err := w.fb.ioctl(fbioWaitForVSync, unsafe.Pointer(&arg)); err != nil {
		w.noVSync = true
	}
	return nil
}
