//go:build linux

package cec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/sys/unix"
)

func TestWrapIoctlErr(t *testing.T) {
	tests := []struct {
		name  string
		errno error
		want  error
	}{
		{"EAGAIN maps to would-block", unix.EAGAIN, ErrWouldBlock},
		{"ETIMEDOUT maps to timeout", unix.ETIMEDOUT, ErrTimeout},
		{"EBUSY maps to busy", unix.EBUSY, ErrBusy},
		{"ENOTTY maps to not supported", unix.ENOTTY, ErrNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapIoctlErr("receive", tt.errno)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.errno, "the errno stays in the chain")
			assert.Contains(t, err.Error(), "receive")
		})
	}
}

func TestWrapIoctlErrPassThrough(t *testing.T) {
	assert.NoError(t, wrapIoctlErr("transmit", nil))

	err := wrapIoctlErr("transmit", unix.EINVAL)
	assert.ErrorIs(t, err, unix.EINVAL)
	assert.False(t, errors.Is(err, ErrWouldBlock))
	assert.Contains(t, err.Error(), "cec: transmit")
}
