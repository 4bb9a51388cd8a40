//go:build linux

package uapi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestStructSizes(t *testing.T) {
	// sizeof per linux/cec.h; these are part of the ioctl numbers and so
	// of the ABI itself.
	assert.Equal(t, uintptr(76), unsafe.Sizeof(Caps{}))
	assert.Equal(t, uintptr(92), unsafe.Sizeof(LogAddrs{}))
	assert.Equal(t, uintptr(56), unsafe.Sizeof(Msg{}))
	assert.Equal(t, uintptr(80), unsafe.Sizeof(Event{}))
}

func TestIoctlRequestNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  ioctl
		want uintptr
	}{
		{"CEC_ADAP_G_CAPS", adapGCapsIoctl, 0xc04c6100},
		{"CEC_ADAP_G_PHYS_ADDR", adapGPhysAddrIoctl, 0x80026101},
		{"CEC_ADAP_S_PHYS_ADDR", adapSPhysAddrIoctl, 0x40026102},
		{"CEC_ADAP_G_LOG_ADDRS", adapGLogAddrsIoctl, 0x805c6103},
		{"CEC_ADAP_S_LOG_ADDRS", adapSLogAddrsIoctl, 0xc05c6104},
		{"CEC_TRANSMIT", transmitIoctl, 0xc0386105},
		{"CEC_RECEIVE", receiveIoctl, 0xc0386106},
		{"CEC_DQEVENT", dqEventIoctl, 0xc0506107},
		{"CEC_G_MODE", getModeIoctl, 0x80046108},
		{"CEC_S_MODE", setModeIoctl, 0x40046109},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uintptr(tt.got))
		})
	}
}

func TestLogAddrsOffsets(t *testing.T) {
	// spot check the field offsets that straddle the packed u8/u16 runs
	var la LogAddrs
	assert.Equal(t, uintptr(4), unsafe.Offsetof(la.LogAddrMask))
	assert.Equal(t, uintptr(6), unsafe.Offsetof(la.CECVersion))
	assert.Equal(t, uintptr(7), unsafe.Offsetof(la.NumLogAddrs))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(la.VendorID))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(la.OSDName))
	assert.Equal(t, uintptr(31), unsafe.Offsetof(la.PrimaryDeviceType))
	assert.Equal(t, uintptr(43), unsafe.Offsetof(la.Features))
}

func TestMsgOffsets(t *testing.T) {
	var m Msg
	assert.Equal(t, uintptr(16), unsafe.Offsetof(m.Len))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(m.Msg))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(m.Reply))
	assert.Equal(t, uintptr(50), unsafe.Offsetof(m.TxStatus))
	assert.Equal(t, uintptr(54), unsafe.Offsetof(m.TxErrorCnt))
}

func TestEventPayloadDecode(t *testing.T) {
	var ev Event
	ev.Type = EventStateChange
	nativeEndian.PutUint16(ev.Payload[0:2], 0x3300)
	nativeEndian.PutUint16(ev.Payload[2:4], 0x0010)

	sc := ev.StateChange()
	assert.Equal(t, uint16(0x3300), sc.PhysAddr)
	assert.Equal(t, uint16(0x0010), sc.LogAddrMask)

	ev = Event{Type: EventLostMsgs}
	nativeEndian.PutUint32(ev.Payload[0:4], 17)
	assert.Equal(t, uint32(17), ev.LostMsgs().LostMsgs)
}

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "cec-gpio", BytesToString([]byte{'c', 'e', 'c', '-', 'g', 'p', 'i', 'o', 0, 0}))
	assert.Equal(t, "abc", BytesToString([]byte{'a', 'b', 'c'}))

	var buf [5]byte
	StringToBytes("toolong", buf[:])
	assert.Equal(t, "tool", BytesToString(buf[:]))
	StringToBytes("ok", buf[:])
	assert.Equal(t, "ok", BytesToString(buf[:]))
}
