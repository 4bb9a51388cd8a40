//go:build linux

// Package uapi mirrors the Linux CEC uAPI (linux/cec.h) as fixed-layout Go
// structs and raw ioctl wrappers.
//
// The struct revision mirrored here is the kernel 5.x framework ABI: struct
// cec_caps, cec_log_addrs, cec_msg and cec_event, driven through the 'a'
// ioctl group, numbers 0-9. Field order, sizes and padding are part of the
// compatibility contract and must not change.
//
// The zero value of every struct is a valid, fully initialized request
// buffer; reserved and padding fields are zero on send and ignored on
// receive.
package uapi

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// MaxMsgSize is the maximum number of bytes in a CEC frame, including
	// the header (initiator/destination) byte and the opcode.
	MaxMsgSize = 16

	// MaxLogAddrs is the maximum number of logical addresses one adapter
	// can claim.
	MaxLogAddrs = 4
)

// Caps mirrors struct cec_caps.
//
// Filled by the driver on CEC_ADAP_G_CAPS.
type Caps struct {
	// Driver is the name of the CEC device driver.
	Driver [32]byte
	// Name is the name of the CEC device. Driver + Name must be unique.
	Name [32]byte
	// AvailableLogAddrs is the number of available logical addresses.
	AvailableLogAddrs uint32
	// Capabilities holds the CEC_CAP_* flags.
	Capabilities uint32
	// Version of the CEC adapter framework.
	Version uint32
}

// LogAddrs mirrors struct cec_log_addrs, used by both
// CEC_ADAP_G_LOG_ADDRS and CEC_ADAP_S_LOG_ADDRS.
type LogAddrs struct {
	// LogAddr holds the claimed logical addresses. Set by the driver.
	LogAddr [MaxLogAddrs]uint8
	// LogAddrMask is the current logical address mask. Set by the driver.
	LogAddrMask uint16
	// CECVersion is the CEC version the adapter should implement.
	CECVersion uint8
	// NumLogAddrs is how many logical addresses should be claimed,
	// 0 clears all claimed addresses.
	NumLogAddrs uint8
	// VendorID of the device.
	VendorID uint32
	// Flags holds the CEC_LOG_ADDRS_FL_* flags.
	Flags uint32
	// OSDName is the OSD name of the device, NUL padded, not terminated.
	OSDName [15]byte
	// PrimaryDeviceType per logical address.
	PrimaryDeviceType [MaxLogAddrs]uint8
	// LogAddrType per logical address.
	LogAddrType [MaxLogAddrs]uint8
	// AllDeviceTypes per logical address (CEC 2.0).
	AllDeviceTypes [MaxLogAddrs]uint8
	// Features per logical address (CEC 2.0).
	Features [MaxLogAddrs][12]uint8
}

// Msg mirrors struct cec_msg, used by CEC_TRANSMIT and CEC_RECEIVE.
type Msg struct {
	// TxTs is the CLOCK_MONOTONIC timestamp in ns when the transmit
	// finished. Set by the driver.
	TxTs uint64
	// RxTs is the CLOCK_MONOTONIC timestamp in ns when the message was
	// received. Set by the driver.
	RxTs uint64
	// Len is the length of Msg in bytes.
	Len uint32
	// Timeout in ms for CEC_RECEIVE, or for waiting for a reply on
	// CEC_TRANSMIT. 0 waits forever on receive, 1s on transmit reply.
	Timeout uint32
	// Sequence is assigned by the framework on transmit. Non-zero on a
	// received message identifies the result of an earlier non-blocking
	// transmit.
	Sequence uint32
	// Flags, no flags are defined in this ABI revision.
	Flags uint32
	// Msg is the frame payload, including the initiator/destination
	// header byte and the opcode.
	Msg [MaxMsgSize]byte
	// Reply is the opcode to wait for, CEC_TRANSMIT only.
	Reply uint8
	// RxStatus holds the CEC_RX_STATUS_* bits. Set by the driver.
	RxStatus uint8
	// TxStatus holds the CEC_TX_STATUS_* bits. Set by the driver.
	TxStatus uint8
	// TxArbLostCnt is the number of 'Arbitration Lost' events.
	TxArbLostCnt uint8
	// TxNackCnt is the number of 'Not Acknowledged' events.
	TxNackCnt uint8
	// TxLowDriveCnt is the number of 'Low Drive Detected' events.
	TxLowDriveCnt uint8
	// TxErrorCnt is the number of 'Error' events.
	TxErrorCnt uint8
}

// Event types for Event.Type.
const (
	EventStateChange = 1
	EventLostMsgs    = 2
)

// Event flags.
const (
	EventFlagInitialState = 1 << 0
)

// EventPayloadSize is the size of the union padding in struct cec_event
// ([16]__u32 in the kernel header).
const EventPayloadSize = 64

// Event mirrors struct cec_event.
//
// Payload is the raw event union; use StateChange or LostMsgs to decode it
// according to Type.
type Event struct {
	// Ts is the timestamp of when the event was sent.
	Ts uint64
	// Type is one of EventStateChange or EventLostMsgs.
	Type uint32
	// Flags holds the CEC_EVENT_FL_* bits.
	Flags uint32
	// Payload pads the event to the kernel union size.
	Payload [EventPayloadSize]byte
}

// StateChangePayload mirrors struct cec_event_state_change.
type StateChangePayload struct {
	// PhysAddr is the current physical address.
	PhysAddr uint16
	// LogAddrMask is the current set of claimed logical addresses. 0 if
	// nothing is claimed or PhysAddr is invalid.
	LogAddrMask uint16
}

// LostMsgsPayload mirrors struct cec_event_lost_msgs.
type LostMsgsPayload struct {
	// LostMsgs is how many messages were lost because the application
	// did not empty the receive queue in time.
	LostMsgs uint32
}

// StateChange decodes the event payload as a state change.
func (e *Event) StateChange() StateChangePayload {
	return StateChangePayload{
		PhysAddr:    nativeEndian.Uint16(e.Payload[0:2]),
		LogAddrMask: nativeEndian.Uint16(e.Payload[2:4]),
	}
}

// LostMsgs decodes the event payload as a lost-messages count.
func (e *Event) LostMsgs() LostMsgsPayload {
	return LostMsgsPayload{
		LostMsgs: nativeEndian.Uint32(e.Payload[0:4]),
	}
}

// ioctl encoding, per include/uapi/asm-generic/ioctl.h.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2
)

type ioctl uintptr

func ioc(dir, typ, nr, size uintptr) ioctl {
	return ioctl(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

func ior(typ, nr, size uintptr) ioctl  { return ioc(iocRead, typ, nr, size) }
func iow(typ, nr, size uintptr) ioctl  { return ioc(iocWrite, typ, nr, size) }
func iowr(typ, nr, size uintptr) ioctl { return ioc(iocRead|iocWrite, typ, nr, size) }

// CEC ioctl request numbers.
var (
	adapGCapsIoctl     = iowr('a', 0, unsafe.Sizeof(Caps{}))
	adapGPhysAddrIoctl = ior('a', 1, unsafe.Sizeof(uint16(0)))
	adapSPhysAddrIoctl = iow('a', 2, unsafe.Sizeof(uint16(0)))
	adapGLogAddrsIoctl = ior('a', 3, unsafe.Sizeof(LogAddrs{}))
	adapSLogAddrsIoctl = iowr('a', 4, unsafe.Sizeof(LogAddrs{}))
	transmitIoctl      = iowr('a', 5, unsafe.Sizeof(Msg{}))
	receiveIoctl       = iowr('a', 6, unsafe.Sizeof(Msg{}))
	dqEventIoctl       = iowr('a', 7, unsafe.Sizeof(Event{}))
	getModeIoctl       = ior('a', 8, unsafe.Sizeof(uint32(0)))
	setModeIoctl       = iow('a', 9, unsafe.Sizeof(uint32(0)))
)

// GetCaps returns the capabilities of the CEC adapter.
//
// The fd is an open CEC character device.
func GetCaps(fd uintptr) (Caps, error) {
	var caps Caps
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(adapGCapsIoctl),
		uintptr(unsafe.Pointer(&caps)))
	if errno != 0 {
		return Caps{}, errno
	}
	return caps, nil
}

// GetPhysAddr returns the current physical address of the adapter.
func GetPhysAddr(fd uintptr) (uint16, error) {
	var pa uint16
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(adapGPhysAddrIoctl),
		uintptr(unsafe.Pointer(&pa)))
	if errno != 0 {
		return 0, errno
	}
	return pa, nil
}

// SetPhysAddr sets the physical address of the adapter.
//
// Only available if CEC_CAP_PHYS_ADDR is set.
func SetPhysAddr(fd uintptr, pa uint16) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(adapSPhysAddrIoctl),
		uintptr(unsafe.Pointer(&pa)))
	if errno != 0 {
		return errno
	}
	return nil
}

// GetLogAddrs returns the logical address configuration of the adapter.
func GetLogAddrs(fd uintptr) (LogAddrs, error) {
	var la LogAddrs
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(adapGLogAddrsIoctl),
		uintptr(unsafe.Pointer(&la)))
	if errno != 0 {
		return LogAddrs{}, errno
	}
	return la, nil
}

// SetLogAddrs claims or clears logical addresses.
//
// The driver fills in the addresses actually claimed. Only available if
// CEC_CAP_LOG_ADDRS is set.
func SetLogAddrs(fd uintptr, la *LogAddrs) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(adapSLogAddrsIoctl),
		uintptr(unsafe.Pointer(la)))
	if errno != 0 {
		return errno
	}
	return nil
}

// Transmit queues msg for transmission.
//
// On a blocking fd the call returns once the transmit finished and the
// driver has filled in the status fields. Only available if
// CEC_CAP_TRANSMIT is set.
func Transmit(fd uintptr, msg *Msg) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(transmitIoctl),
		uintptr(unsafe.Pointer(msg)))
	if errno != 0 {
		return errno
	}
	return nil
}

// Receive dequeues a received message into msg.
//
// msg.Timeout bounds the wait on a blocking fd. On a non-blocking fd with
// an empty queue the errno is EAGAIN.
func Receive(fd uintptr, msg *Msg) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(receiveIoctl),
		uintptr(unsafe.Pointer(msg)))
	if errno != 0 {
		return errno
	}
	return nil
}

// DQEvent dequeues a pending event into ev.
//
// The kernel event queues are per-filehandle and per-event type; if a queue
// overflows the oldest event is overwritten, so the latest state is always
// available.
func DQEvent(fd uintptr, ev *Event) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(dqEventIoctl),
		uintptr(unsafe.Pointer(ev)))
	if errno != 0 {
		return errno
	}
	return nil
}

// GetMode returns the message handling mode of the filehandle.
func GetMode(fd uintptr) (uint32, error) {
	var mode uint32
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(getModeIoctl),
		uintptr(unsafe.Pointer(&mode)))
	if errno != 0 {
		return 0, errno
	}
	return mode, nil
}

// SetMode sets the message handling mode of the filehandle.
func SetMode(fd uintptr, mode uint32) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL,
		fd,
		uintptr(setModeIoctl),
		uintptr(unsafe.Pointer(&mode)))
	if errno != 0 {
		return errno
	}
	return nil
}

// BytesToString converts NUL padded strings stored in byte arrays, as
// returned in Caps and LogAddrs, into Go strings.
func BytesToString(a []byte) string {
	for i, b := range a {
		if b == 0 {
			return string(a[:i])
		}
	}
	return string(a)
}

// StringToBytes copies s into a NUL padded byte array, truncating to
// len(a)-1 so the result stays terminated.
func StringToBytes(s string, a []byte) {
	n := len(a) - 1
	if len(s) < n {
		n = len(s)
	}
	copy(a[:n], s)
	for i := n; i < len(a); i++ {
		a[i] = 0
	}
}

var nativeEndian binary.ByteOrder

func init() {
	// determine native byte order so we can decode event payloads
	buf := [2]byte{}
	*(*uint16)(unsafe.Pointer(&buf[0])) = uint16(0xABCD)
	if buf[0] == 0xCD {
		nativeEndian = binary.LittleEndian
	} else {
		nativeEndian = binary.BigEndian
	}
}
