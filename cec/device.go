//go:build linux

package cec

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"cecd/cec/uapi"
)

// Capabilities describes a CEC adapter, as returned by
// Device.Capabilities.
type Capabilities struct {
	// Driver is the name of the device driver.
	Driver string
	// Name of the adapter. Driver + Name is unique on the system.
	Name string
	// AvailableLogicalAddresses is how many logical addresses the
	// adapter can claim at once.
	AvailableLogicalAddresses uint32
	// Capabilities flags of the adapter.
	Capabilities Capability
	// Version of the CEC framework, e.g. 0x00050f00 for 5.15.
	Version uint32
}

func (c Capabilities) String() string {
	return fmt.Sprintf("%s (%s): %s", c.Name, c.Driver, c.Capabilities)
}

// LogicalAddresses is the adapter's logical address configuration. It is
// passed to SetLogicalAddresses to claim addresses and returned, with the
// driver-set fields filled in, by Device.LogicalAddresses.
type LogicalAddresses struct {
	// Addresses holds the claimed logical addresses. Set by the driver.
	Addresses []LogicalAddress
	// Mask of all claimed addresses. Set by the driver.
	Mask LogAddrMask
	// Version of the CEC specification the adapter should implement.
	Version Version
	// VendorID of the device, VendorIDNone if there is none.
	VendorID uint32
	Flags    LogAddrFlags
	// OSDName of the device, at most 14 bytes.
	OSDName string
	// DeviceTypes lists, per claimed address, the primary device type
	// and the logical address type to claim. At most 4 entries.
	DeviceTypes []DeviceTypePair
}

// DeviceTypePair couples the primary device type with the logical address
// type for one claimed address.
type DeviceTypePair struct {
	Primary PrimaryDeviceType
	Type    LogAddrType
}

// Configured reports whether the adapter has claimed at least one
// logical address.
func (l LogicalAddresses) Configured() bool {
	return l.Mask != 0
}

// Device is a handle to a CEC adapter character device (/dev/cecN).
//
// The handle maps one to one onto a kernel filehandle: the kernel keeps a
// receive queue, an event queue and a follower/initiator mode per
// filehandle, so two Devices on the same adapter see independent message
// streams. Each individual ioctl is atomic, but a Device holds no locks
// of its own: callers that interleave request/reply sequences from
// multiple goroutines must serialize them, or use one handle per
// goroutine.
type Device struct {
	f *os.File
}

// Open opens the CEC device at path, e.g. "/dev/cec0", in blocking mode:
// Receive and DequeueEvent wait until something arrives.
func Open(path string) (*Device, error) {
	return open(path, unix.O_RDWR)
}

// OpenNonBlocking opens the CEC device at path in non-blocking mode:
// Receive and DequeueEvent return ErrWouldBlock when nothing is pending,
// and Transmit queues the message and returns before the bus transfer
// finishes. Combine with Poll or a Monitor to wait for readiness.
func OpenNonBlocking(path string) (*Device, error) {
	return open(path, unix.O_RDWR|unix.O_NONBLOCK)
}

func open(path string, flags int) (*Device, error) {
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("cec: open %s: %w", path, err)
	}
	return &Device{f: os.NewFile(uintptr(fd), path)}, nil
}

// Close releases the device handle. The kernel drops the handle's receive
// and event queues and releases any exclusive follower or initiator mode.
func (d *Device) Close() error {
	return d.f.Close()
}

// Path returns the device path the handle was opened with.
func (d *Device) Path() string {
	return d.f.Name()
}

// Fd exposes the underlying file descriptor for external readiness
// integration (epoll, select). The descriptor stays owned by the Device.
func (d *Device) Fd() uintptr {
	return d.f.Fd()
}

// Capabilities queries the adapter's driver info and capability flags.
func (d *Device) Capabilities() (Capabilities, error) {
	raw, err := uapi.GetCaps(d.f.Fd())
	if err != nil {
		return Capabilities{}, wrapIoctlErr("get capabilities", err)
	}
	return Capabilities{
		Driver:                    uapi.BytesToString(raw.Driver[:]),
		Name:                      uapi.BytesToString(raw.Name[:]),
		AvailableLogicalAddresses: raw.AvailableLogAddrs,
		Capabilities:              Capability(raw.Capabilities),
		Version:                   raw.Version,
	}, nil
}

// PhysicalAddress returns the adapter's current physical address, or
// InvalidPhysicalAddress if the adapter is not connected.
func (d *Device) PhysicalAddress() (PhysicalAddress, error) {
	pa, err := uapi.GetPhysAddr(d.f.Fd())
	if err != nil {
		return InvalidPhysicalAddress, wrapIoctlErr("get physical address", err)
	}
	return PhysicalAddress(pa), nil
}

// SetPhysicalAddress sets the adapter's physical address. Only valid on
// adapters with CapPhysAddr; drivers that derive the address from the
// connector reject this with ErrNotSupported.
func (d *Device) SetPhysicalAddress(pa PhysicalAddress) error {
	return wrapIoctlErr("set physical address", uapi.SetPhysAddr(d.f.Fd(), uint16(pa)))
}

// LogicalAddresses returns the adapter's current logical address
// configuration.
func (d *Device) LogicalAddresses() (LogicalAddresses, error) {
	raw, err := uapi.GetLogAddrs(d.f.Fd())
	if err != nil {
		return LogicalAddresses{}, wrapIoctlErr("get logical addresses", err)
	}
	return decodeLogAddrs(&raw), nil
}

// SetLogicalAddresses asks the adapter to claim logical addresses on the
// bus. Needs CapLogAddrs. The claim completes asynchronously: the result
// arrives as an EventStateChange event once the bus arbitration is done.
// The returned configuration reflects the request as accepted by the
// driver, not the final claim.
func (d *Device) SetLogicalAddresses(req LogicalAddresses) (LogicalAddresses, error) {
	if len(req.DeviceTypes) == 0 || len(req.DeviceTypes) > uapi.MaxLogAddrs {
		return LogicalAddresses{}, fmt.Errorf("%w: %d device types (1..%d)",
			ErrInvalidMessage, len(req.DeviceTypes), uapi.MaxLogAddrs)
	}
	var raw uapi.LogAddrs
	raw.NumLogAddrs = uint8(len(req.DeviceTypes))
	raw.CECVersion = uint8(req.Version)
	raw.VendorID = req.VendorID
	raw.Flags = uint32(req.Flags)
	uapi.StringToBytes(req.OSDName, raw.OSDName[:])
	for i, dt := range req.DeviceTypes {
		raw.PrimaryDeviceType[i] = uint8(dt.Primary)
		raw.LogAddrType[i] = uint8(dt.Type)
	}
	if err := uapi.SetLogAddrs(d.f.Fd(), &raw); err != nil {
		return LogicalAddresses{}, wrapIoctlErr("set logical addresses", err)
	}
	return decodeLogAddrs(&raw), nil
}

// ClearLogicalAddresses releases all claimed logical addresses, returning
// the adapter to the unconfigured state.
func (d *Device) ClearLogicalAddresses() error {
	var raw uapi.LogAddrs
	if err := uapi.SetLogAddrs(d.f.Fd(), &raw); err != nil {
		return wrapIoctlErr("clear logical addresses", err)
	}
	return nil
}

func decodeLogAddrs(raw *uapi.LogAddrs) LogicalAddresses {
	la := LogicalAddresses{
		Mask:     LogAddrMask(raw.LogAddrMask),
		Version:  Version(raw.CECVersion),
		VendorID: raw.VendorID,
		Flags:    LogAddrFlags(raw.Flags),
		OSDName:  uapi.BytesToString(raw.OSDName[:]),
	}
	n := int(raw.NumLogAddrs)
	if n > uapi.MaxLogAddrs {
		n = uapi.MaxLogAddrs
	}
	for i := 0; i < n; i++ {
		la.Addresses = append(la.Addresses, LogicalAddress(raw.LogAddr[i]))
		la.DeviceTypes = append(la.DeviceTypes, DeviceTypePair{
			Primary: PrimaryDeviceType(raw.PrimaryDeviceType[i]),
			Type:    LogAddrType(raw.LogAddrType[i]),
		})
	}
	return la
}

// Mode returns the handle's current initiator and follower mode.
func (d *Device) Mode() (ModeInitiator, ModeFollower, error) {
	mode, err := uapi.GetMode(d.f.Fd())
	if err != nil {
		return 0, 0, wrapIoctlErr("get mode", err)
	}
	return ModeInitiator(mode & modeInitiatorMask), ModeFollower(mode & modeFollowerMask), nil
}

// SetMode changes the handle's initiator and follower mode. Exclusive and
// monitor modes can fail with ErrBusy when another handle already holds
// them, and the monitor modes need CAP_NET_ADMIN.
func (d *Device) SetMode(initiator ModeInitiator, follower ModeFollower) error {
	mode := uint32(initiator)&modeInitiatorMask | uint32(follower)&modeFollowerMask
	return wrapIoctlErr("set mode", uapi.SetMode(d.f.Fd(), mode))
}

// Transmit sends a directed or broadcast message without operands.
func (d *Device) Transmit(from, to LogicalAddress, opcode Opcode) error {
	_, err := d.TransmitMessage(NewMessage(from, to, opcode))
	return err
}

// TransmitData sends a message with operand bytes.
func (d *Device) TransmitData(from, to LogicalAddress, opcode Opcode, params ...byte) error {
	_, err := d.TransmitMessage(NewMessage(from, to, opcode, params...))
	return err
}

// Poll transmits an opcode-less poll frame to probe whether the logical
// address to is in use. A TxStatusNack outcome means nobody answered.
func (d *Device) Poll(from, to LogicalAddress) (*Message, error) {
	return d.TransmitMessage(PollMessage(from, to))
}

// TransmitMessage validates msg and hands it to the adapter.
//
// On a blocking handle the call waits until the bus transfer (and the
// reply, if msg.Reply is set) finished, and the returned message carries
// the transmit status and any reply payload. On a non-blocking handle the
// call returns as soon as the message is queued; the returned message
// carries the assigned Sequence, and the outcome arrives later as a
// received message with the same sequence number.
//
// A Transmit error reports that the kernel rejected or could not queue
// the message. A message that made it onto the bus but was not
// acknowledged is NOT an error: check the returned message's TxStatus or
// OK().
func (d *Device) TransmitMessage(msg *Message) (*Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	var raw uapi.Msg
	msg.encode(&raw)
	if err := uapi.Transmit(d.f.Fd(), &raw); err != nil {
		return nil, wrapIoctlErr("transmit", err)
	}
	out := decodeMessage(&raw)
	msg.applyResult(&raw)
	return out, nil
}

// TransmitWaitReply sends a directed message and waits for a reply with
// the given opcode. A timeout of zero uses the kernel default of one
// second. The returned message is the reply; a Feature Abort reply or a
// reply timeout surfaces through the message's RxStatus, not as an error.
func (d *Device) TransmitWaitReply(from, to LogicalAddress, opcode, reply Opcode, timeout time.Duration, params ...byte) (*Message, error) {
	msg := NewMessage(from, to, opcode, params...)
	msg.Reply = reply
	msg.Timeout = timeout
	return d.TransmitMessage(msg)
}

// Receive dequeues the next message from the handle's receive queue. On a
// blocking handle it waits until a message arrives; on a non-blocking
// handle it returns ErrWouldBlock when the queue is empty.
func (d *Device) Receive() (*Message, error) {
	return d.receive(0)
}

// ReceiveTimeout dequeues the next message, waiting at most timeout. It
// returns ErrTimeout when nothing arrived in time. Only meaningful on a
// blocking handle; a non-blocking handle still returns ErrWouldBlock
// immediately.
func (d *Device) ReceiveTimeout(timeout time.Duration) (*Message, error) {
	return d.receive(timeout)
}

func (d *Device) receive(timeout time.Duration) (*Message, error) {
	var raw uapi.Msg
	raw.Timeout = uint32(timeout / time.Millisecond)
	if err := uapi.Receive(d.f.Fd(), &raw); err != nil {
		return nil, wrapIoctlErr("receive", err)
	}
	return decodeMessage(&raw), nil
}

// DequeueEvent takes the next event from the handle's event queue. On a
// blocking handle it waits; on a non-blocking handle it returns
// ErrWouldBlock when no event is pending. The first event after opening
// is always the initial state snapshot.
func (d *Device) DequeueEvent() (*Event, error) {
	var raw uapi.Event
	if err := uapi.DQEvent(d.f.Fd(), &raw); err != nil {
		return nil, wrapIoctlErr("dequeue event", err)
	}
	return decodeEvent(&raw)
}

// Readiness bits for WaitReady.
const (
	// ReadyMessage indicates Receive will not block (POLLIN).
	ReadyMessage = unix.POLLIN
	// ReadyTransmit indicates the transmit queue has room (POLLOUT).
	ReadyTransmit = unix.POLLOUT
	// ReadyEvent indicates DequeueEvent will not block (POLLPRI).
	ReadyEvent = unix.POLLPRI
)

// WaitReady polls the device for the requested readiness bits, waiting at
// most timeout (negative waits forever). It returns the ready bits, or 0
// when the wait timed out. The poll semantics match the kernel's: POLLIN
// is raised for pending messages, POLLPRI for pending events and POLLOUT
// while the transmit queue has room.
func (d *Device) WaitReady(events int16, timeout time.Duration) (int16, error) {
	fds := []unix.PollFd{{Fd: int32(d.f.Fd()), Events: events}}
	tmo := -1
	if timeout >= 0 {
		tmo = int(timeout / time.Millisecond)
	}
	for {
		n, err := unix.Poll(fds, tmo)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("cec: poll: %w", err)
		}
		if n == 0 {
			return 0, nil
		}
		return fds[0].Revents, nil
	}
}
