// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The driver
// returned by [New] presents frames by converting them into the pixel layout
// of the framebuffer device; the whole framebuffer is the window.
//
// Note that a framebuffer has no compositor, so blend modes are accepted and
// ignored.
package framebuffer

import "errors"

// DefaultDevice is the first framebuffer device.
const DefaultDevice = "/dev/fb0"

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported pixel format")
)
