//go:build linux

package cec

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cecd/cec/uapi"
)

func TestDecodeStateChangeEvent(t *testing.T) {
	var raw uapi.Event
	raw.Ts = 5_000_000_000
	raw.Type = uapi.EventStateChange
	raw.Flags = uapi.EventFlagInitialState
	putUint16(raw.Payload[0:], 0x3200)
	putUint16(raw.Payload[2:], uint16(MaskPlayback1))

	ev, err := decodeEvent(&raw)
	require.NoError(t, err)
	assert.Equal(t, EventStateChange, ev.Type)
	assert.True(t, ev.InitialState())
	assert.Equal(t, PhysicalAddress(0x3200), ev.StateChange.PhysicalAddress)
	assert.Equal(t, LogAddrMask(MaskPlayback1), ev.StateChange.LogicalAddresses)
	assert.Equal(t, "state change: phys 3.2.0.0, claimed 0010", ev.String())
}

func TestDecodeLostMessagesEvent(t *testing.T) {
	var raw uapi.Event
	raw.Type = uapi.EventLostMsgs
	putUint32(raw.Payload[0:], 7)

	ev, err := decodeEvent(&raw)
	require.NoError(t, err)
	assert.Equal(t, EventLostMessages, ev.Type)
	assert.False(t, ev.InitialState())
	assert.Equal(t, uint32(7), ev.LostMessages.Count)
}

func TestDecodeUnknownEvent(t *testing.T) {
	raw := uapi.Event{Type: 99}
	_, err := decodeEvent(&raw)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func putUint16(b []byte, v uint16) {
	if hostEndianness() == binary.LittleEndian {
		binary.LittleEndian.PutUint16(b, v)
	} else {
		binary.BigEndian.PutUint16(b, v)
	}
}

func putUint32(b []byte, v uint32) {
	if hostEndianness() == binary.BigEndian {
		binary.BigEndian.PutUint32(b, v)
	} else {
		binary.LittleEndian.PutUint32(b, v)
	}
}

func hostEndianness() binary.ByteOrder {
	var x uint16 = 1
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
