package screen

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInit        = errors.New("screen: graphics subsystem initialization failed")
	ErrDisplayMode = errors.New("screen: unable to query display mode")
	ErrWindow      = errors.New("screen: window creation failed")
	ErrSurface     = errors.New("screen: surface creation failed")
	ErrBuffer      = errors.New("screen: frame buffer allocation failed")
	ErrTexture     = errors.New("screen: texture creation failed")
	ErrPresent     = errors.New("screen: present failed")
	ErrState       = errors.New("screen: invalid state")
)

// InitError is returned by [Screen.Init] when one of the initialization steps fails.
//
// Everything acquired before the failing step has been released by the time
// the error is returned.
type InitError struct {
	// State is the last state reached before the failure.
	State State

	// Err is the step error, it wraps one of the Err* sentinels.
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%v (after %s)", e.Err, e.State)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func stepError(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
