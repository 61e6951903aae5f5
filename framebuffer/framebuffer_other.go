//go:build !linux

package framebuffer

import "github.com/BeatGlow/screen"

type unsupported struct{}

// New returns a driver whose Init fails with [ErrNotSupported].
func New(_ string) screen.Driver {
	return unsupported{}
}

func (unsupported) Init() error { return ErrNotSupported }

func (unsupported) Quit() {}

func (unsupported) DisplayMode() (screen.Mode, error) {
	return screen.Mode{}, ErrNotSupported
}

func (unsupported) CreateWindow(string, int, int) (screen.Window, error) {
	return nil, ErrNotSupported
}
