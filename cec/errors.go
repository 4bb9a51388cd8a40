//go:build linux

package cec

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Validation errors, returned before any ioctl is issued.
var (
	ErrInvalidAddress  = errors.New("cec: logical address out of range")
	ErrPayloadTooLarge = errors.New("cec: message payload too large")
	ErrInvalidMessage  = errors.New("cec: invalid message")
	ErrClosed          = errors.New("cec: device closed")
)

// Kernel conditions the caller is expected to handle.
var (
	// ErrWouldBlock is returned by a non-blocking receive or event
	// dequeue with nothing pending (EAGAIN).
	ErrWouldBlock = errors.New("cec: operation would block")
	// ErrTimeout is returned when a bounded receive saw no message in
	// time (ETIMEDOUT).
	ErrTimeout = errors.New("cec: timed out")
	// ErrBusy is returned when the transmit queue is full or the adapter
	// configuration conflicts with another filehandle (EBUSY).
	ErrBusy = errors.New("cec: device busy")
	// ErrNotSupported is returned for ioctls the adapter does not
	// implement, e.g. claiming addresses without CapLogAddrs (ENOTTY).
	ErrNotSupported = errors.New("cec: not supported by adapter")
)

// wrapIoctlErr maps well-known errnos onto the sentinel errors above and
// tags everything else with the operation name. The errno itself stays
// reachable through errors.Is/As.
func wrapIoctlErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EAGAIN):
		return fmt.Errorf("%s: %w: %w", op, ErrWouldBlock, err)
	case errors.Is(err, unix.ETIMEDOUT):
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("%s: %w: %w", op, ErrBusy, err)
	case errors.Is(err, unix.ENOTTY):
		return fmt.Errorf("%s: %w: %w", op, ErrNotSupported, err)
	}
	return fmt.Errorf("cec: %s: %w", op, err)
}
