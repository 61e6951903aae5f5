package ioctl

import (
	"errors"
	"syscall"
	"testing"
)

func TestEncode(t *testing.T) {
	// FBIO_WAITFORVSYNC is _IOW('F', 0x20, __u32).
	if c := Encode(Write, 4, 'F'<<8|0x20); c != 0x40044620 {
		t.Errorf("expected 0x40044620, got %#x", uintptr(c))
	}

	var mode uint8
	c := Pointer(Read, &mode, 'k'<<8|1)
	if c.Mode() != Read || c.Size() != 1 {
		t.Errorf("expected read of 1 byte, got mode %d size %d", c.Mode(), c.Size())
	}
	if s := c.String(); s != "ioctl read (1 bytes) 0x6b01" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestError(t *testing.T) {
	var err error = &Error{Command: 0x4600, Errno: syscall.ENOTTY}
	if !errors.Is(err, syscall.ENOTTY) {
		t.Errorf("expected %v to wrap ENOTTY", err)
	}
}
