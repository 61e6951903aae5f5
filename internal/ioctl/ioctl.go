// Package ioctl wraps the ioctl(2) system call for the device drivers.
package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
	"unsafe"
)

// Mode is the IOCTL mode.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl, encoded like the _IOC macro of <asm/ioctl.h>.
type Command uintptr

func (c Command) Mode() Mode {
	return Mode(c >> 30 & 0x03)
}

// Size of the argument in bytes.
func (c Command) Size() int {
	return int(c >> 16 & 0x3fff)
}

func (c Command) String() string {
	var (
		mode = c.Mode()
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", str, c.Size(), uintptr(c&0xffff))
}

// Error is a failed ioctl.
type Error struct {
	Command Command
	Errno   syscall.Errno
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Command, e.Errno)
}

// Unwrap returns the errno, so errors.Is(err, syscall.ENOTTY) and friends work.
func (e *Error) Unwrap() error {
	return e.Errno
}

// Do executes the ioctl call; ptr is a pointer to the argument, or nil.
func Do(fd uintptr, command Command, ptr any) error {
	var p uintptr

	if ptr != nil {
		v := reflect.ValueOf(ptr)
		p = v.Pointer()
	}

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), p)
	if errno != 0 {
		return &Error{Command: command, Errno: errno}
	}
	return nil
}

// Call does a plain ioctl system call.
func Call(fd uintptr, command Command, arg unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), uintptr(arg))
	if errno != 0 {
		return &Error{Command: command, Errno: errno}
	}
	return nil
}

// Encode an ioctl command, cmd holds the type in the high and the number in the low byte.
func Encode(mode Mode, size uint16, cmd uintptr) Command {
	return Command(mode)<<30 | Command(size&0x3fff)<<16 | Command(cmd&0xffff)
}

// Pointer encodes a command whose argument is the value ref points to.
func Pointer(mode Mode, ref any, cmd uintptr) Command {
	size := uint16(reflect.TypeOf(ref).Elem().Size())
	return Encode(mode, size, cmd)
}
