//go:build linux

package cec

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"
)

// Helper functions for common bus operations. They all transmit from the
// handle's own address and interpret the reply payloads, so callers don't
// have to deal with raw frames.

// OwnAddress returns the adapter's first claimed logical address, or
// LogicalAddressUnregistered when nothing is claimed yet so that a
// transmit does not fail with an address the adapter does not own.
func (d *Device) OwnAddress() LogicalAddress {
	la, err := d.LogicalAddresses()
	if err == nil && len(la.Addresses) > 0 {
		return la.Addresses[0]
	}
	return LogicalAddressUnregistered
}

// TurnOn powers up the device at address. The TV is woken with Image View
// On; everything else gets a Power remote key press.
func (d *Device) TurnOn(address LogicalAddress) error {
	from := d.OwnAddress()
	if address == LogicalAddressTV {
		return d.Transmit(from, address, OpcodeImageViewOn)
	}
	return d.SendKeypress(address, KeycodePower)
}

// Standby puts the device at address into standby. Broadcast to put the
// whole bus to sleep.
func (d *Device) Standby(address LogicalAddress) error {
	return d.Transmit(d.OwnAddress(), address, OpcodeStandby)
}

// SendKeypress sends a remote-control key press followed by a release.
func (d *Device) SendKeypress(address LogicalAddress, key Keycode) error {
	from := d.OwnAddress()
	if err := d.TransmitData(from, address, OpcodeUserControlPressed, byte(key)); err != nil {
		return err
	}
	return d.Transmit(from, address, OpcodeUserControlReleased)
}

// SetActiveSource broadcasts Active Source with the adapter's own
// physical address, asking the TV to switch to the adapter's input.
func (d *Device) SetActiveSource() error {
	pa, err := d.PhysicalAddress()
	if err != nil {
		return err
	}
	b := pa.Bytes()
	return d.TransmitData(d.OwnAddress(), LogicalAddressBroadcast, OpcodeActiveSource, b[0], b[1])
}

// GetDevicePowerStatus asks the device at address for its power status.
func (d *Device) GetDevicePowerStatus(address LogicalAddress) (PowerStatus, error) {
	reply, err := d.TransmitWaitReply(d.OwnAddress(), address,
		OpcodeGiveDevicePowerStatus, OpcodeReportPowerStatus, 0)
	if err != nil {
		return PowerStatusUnknown, err
	}
	if !reply.OK() || len(reply.Params) < 1 {
		return PowerStatusUnknown, replyError("power status", reply)
	}
	return PowerStatus(reply.Params[0]), nil
}

// GetDeviceCECVersion asks the device at address which CEC version it
// implements.
func (d *Device) GetDeviceCECVersion(address LogicalAddress) (Version, error) {
	reply, err := d.TransmitWaitReply(d.OwnAddress(), address,
		OpcodeGetCECVersion, OpcodeCECVersion, 0)
	if err != nil {
		return 0, err
	}
	if !reply.OK() || len(reply.Params) < 1 {
		return 0, replyError("CEC version", reply)
	}
	return Version(reply.Params[0]), nil
}

// GetDeviceVendorID asks the device at address for its IEEE OUI vendor
// ID. Returns VendorIDNone if the device has none.
func (d *Device) GetDeviceVendorID(address LogicalAddress) (uint32, error) {
	reply, err := d.TransmitWaitReply(d.OwnAddress(), address,
		OpcodeGiveDeviceVendorID, OpcodeDeviceVendorID, 0)
	if err != nil {
		return VendorIDNone, err
	}
	if !reply.OK() || len(reply.Params) < 3 {
		return VendorIDNone, replyError("vendor ID", reply)
	}
	return uint32(reply.Params[0])<<16 | uint32(reply.Params[1])<<8 | uint32(reply.Params[2]), nil
}

// GetDeviceOSDName asks the device at address for its on-screen display
// name.
func (d *Device) GetDeviceOSDName(address LogicalAddress) (string, error) {
	reply, err := d.TransmitWaitReply(d.OwnAddress(), address,
		OpcodeGiveOSDName, OpcodeSetOSDName, 0)
	if err != nil {
		return "", err
	}
	if !reply.OK() || len(reply.Params) == 0 {
		return "", replyError("OSD name", reply)
	}
	return string(reply.Params), nil
}

// GetDevicePhysicalAddress asks the device at address where it sits in
// the HDMI topology.
func (d *Device) GetDevicePhysicalAddress(address LogicalAddress) (PhysicalAddress, error) {
	reply, err := d.TransmitWaitReply(d.OwnAddress(), address,
		OpcodeGivePhysicalAddress, OpcodeReportPhysicalAddress, 0)
	if err != nil {
		return InvalidPhysicalAddress, err
	}
	if !reply.OK() || len(reply.Params) < 2 {
		return InvalidPhysicalAddress, replyError("physical address", reply)
	}
	return PhysicalAddressFromBytes(reply.Params[0], reply.Params[1]), nil
}

// PingDevice probes whether the logical address answers a poll frame.
func (d *Device) PingDevice(address LogicalAddress) bool {
	msg, err := d.Poll(d.OwnAddress(), address)
	return err == nil && msg.TxStatus&TxStatusOK != 0
}

func replyError(what string, reply *Message) error {
	if op, reason, ok := reply.FeatureAbort(); ok {
		return fmt.Errorf("cec: %s: feature abort for 0x%02X: %s", what, uint8(op), reason)
	}
	if reply.RxStatus&RxStatusTimeout != 0 {
		return fmt.Errorf("%s: %w", what, ErrTimeout)
	}
	return fmt.Errorf("cec: %s: short or failed reply (tx %s, rx %s)", what, reply.TxStatus, reply.RxStatus)
}

// DeviceInfo collects what the bus reports about one remote device.
type DeviceInfo struct {
	LogicalAddress  LogicalAddress    `json:"logical_address"`
	PhysicalAddress PhysicalAddress   `json:"physical_address"`
	DeviceType      PrimaryDeviceType `json:"device_type"`
	VendorID        uint32            `json:"vendor_id"`
	VendorName      string            `json:"vendor_name"`
	OSDName         string            `json:"osd_name"`
	CECVersion      Version           `json:"cec_version"`
	PowerStatus     PowerStatus       `json:"power_status"`
}

// QueryDevice polls address and, if it answers, fills a DeviceInfo with
// everything the device is willing to report. Individual query failures
// leave the corresponding field at its zero value.
func (d *Device) QueryDevice(address LogicalAddress) (*DeviceInfo, error) {
	if !d.PingDevice(address) {
		return nil, fmt.Errorf("cec: no device at %s", address)
	}
	info := &DeviceInfo{
		LogicalAddress:  address,
		PhysicalAddress: InvalidPhysicalAddress,
		DeviceType:      DeviceTypeForAddress(address),
		VendorID:        VendorIDNone,
		CECVersion:      0,
		PowerStatus:     PowerStatusUnknown,
	}
	if pa, err := d.GetDevicePhysicalAddress(address); err == nil {
		info.PhysicalAddress = pa
	}
	if vid, err := d.GetDeviceVendorID(address); err == nil {
		info.VendorID = vid
		info.VendorName = GetVendorName(vid)
	}
	if v, err := d.GetDeviceCECVersion(address); err == nil {
		info.CECVersion = v
	}
	if name, err := d.GetDeviceOSDName(address); err == nil {
		info.OSDName = name
	}
	if ps, err := d.GetDevicePowerStatus(address); err == nil {
		info.PowerStatus = ps
	}
	return info, nil
}

// ScanBus polls every logical address except the adapter's own and
// queries the ones that answer.
func (d *Device) ScanBus() ([]*DeviceInfo, error) {
	la, err := d.LogicalAddresses()
	if err != nil {
		return nil, err
	}
	var devices []*DeviceInfo
	for addr := LogicalAddressTV; addr < LogicalAddressBroadcast; addr++ {
		if la.Mask.Has(addr) {
			continue
		}
		if info, err := d.QueryDevice(addr); err == nil {
			devices = append(devices, info)
		}
	}
	return devices, nil
}

// PortInfo describes one HDMI port on the display and which devices sit
// behind it.
type PortInfo struct {
	Port    uint8            `json:"port"`
	Devices []LogicalAddress `json:"devices"`
}

// BusTopology describes the HDMI tree as seen through CEC physical
// addresses.
type BusTopology struct {
	OwnAddress     LogicalAddress  `json:"own_address"`
	OwnPhysical    PhysicalAddress `json:"own_physical"`
	OwnPort        uint8           `json:"own_port"`
	ActivePorts    []PortInfo      `json:"active_ports"`
	KnownPortCount uint8           `json:"known_port_count"`
}

// GetBusTopology scans the bus and groups the discovered devices by the
// HDMI port their physical address hangs off.
func (d *Device) GetBusTopology() (*BusTopology, error) {
	topo := &BusTopology{OwnAddress: d.OwnAddress(), OwnPhysical: InvalidPhysicalAddress}
	if pa, err := d.PhysicalAddress(); err == nil {
		topo.OwnPhysical = pa
		topo.OwnPort = pa.Port()
	}

	devices, err := d.ScanBus()
	if err != nil {
		return nil, err
	}
	portMap := make(map[uint8][]LogicalAddress)
	for _, dev := range devices {
		// The TV is the display itself, not behind a port; 0.x.x.x
		// means internal or unknown.
		if dev.LogicalAddress == LogicalAddressTV || dev.PhysicalAddress == InvalidPhysicalAddress {
			continue
		}
		port := dev.PhysicalAddress.Port()
		if port == 0 {
			continue
		}
		portMap[port] = append(portMap[port], dev.LogicalAddress)
		if port > topo.KnownPortCount {
			topo.KnownPortCount = port
		}
	}
	for p := uint8(1); p <= topo.KnownPortCount; p++ {
		if devs, ok := portMap[p]; ok {
			topo.ActivePorts = append(topo.ActivePorts, PortInfo{Port: p, Devices: devs})
		}
	}
	return topo, nil
}

// DeviceTypeForAddress returns the device type a logical address implies.
func DeviceTypeForAddress(addr LogicalAddress) PrimaryDeviceType {
	switch addr {
	case LogicalAddressTV:
		return DeviceTypeTV
	case LogicalAddressRecordingDevice1, LogicalAddressRecordingDevice2, LogicalAddressRecordingDevice3:
		return DeviceTypeRecordingDevice
	case LogicalAddressTuner1, LogicalAddressTuner2, LogicalAddressTuner3, LogicalAddressTuner4:
		return DeviceTypeTuner
	case LogicalAddressPlaybackDevice1, LogicalAddressPlaybackDevice2, LogicalAddressPlaybackDevice3:
		return DeviceTypePlaybackDevice
	case LogicalAddressAudioSystem:
		return DeviceTypeAudioSystem
	default:
		return DeviceTypeSwitch
	}
}

// GetVendorName returns a human-readable vendor name for an IEEE OUI.
func GetVendorName(vendorID uint32) string {
	vendors := map[uint32]string{
		0x000039: "Toshiba",
		0x0000F0: "Samsung",
		0x0005CD: "Denon",
		0x000678: "Marantz",
		0x000982: "Loewe",
		0x0009B0: "Onkyo",
		0x000CB8: "Medion",
		0x000CE7: "Toshiba",
		0x001582: "Pulse Eight",
		0x001950: "Google",
		0x001A11: "Akai",
		0x0020C7: "AOC",
		0x002467: "Panasonic",
		0x008045: "Philips",
		0x00903E: "Pioneer",
		0x009053: "LG",
		0x00A0DE: "Sharp",
		0x00D0D5: "Vizio",
		0x00E036: "Harman Kardon",
		0x00E091: "Yamaha",
		0x08001F: "Sony",
		0x18C086: "Broadcom",
		0x6B746D: "Vizio",
		0x8065E9: "Benq",
		0x9C645E: "Daewoo",
	}
	if name, ok := vendors[vendorID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (0x%06X)", vendorID)
}

// AdapterInfo pairs a device node with its driver info.
type AdapterInfo struct {
	Path string       `json:"path"`
	Caps Capabilities `json:"caps"`
}

// ListAdapters enumerates the CEC character devices on the system and
// queries each one's capabilities. Devices that cannot be opened are
// skipped.
func ListAdapters() ([]AdapterInfo, error) {
	paths, err := filepath.Glob("/dev/cec*")
	if err != nil {
		return nil, fmt.Errorf("cec: list adapters: %w", err)
	}
	sort.Strings(paths)
	var adapters []AdapterInfo
	for _, path := range paths {
		dev, err := Open(path)
		if err != nil {
			continue
		}
		caps, err := dev.Capabilities()
		dev.Close()
		if err != nil {
			continue
		}
		adapters = append(adapters, AdapterInfo{Path: path, Caps: caps})
	}
	return adapters, nil
}

// WaitForPowerStatus polls the device at address until it reports the
// target power status or the timeout elapses.
func (d *Device) WaitForPowerStatus(address LogicalAddress, target PowerStatus, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		status, err := d.GetDevicePowerStatus(address)
		if err == nil && status == target {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("cec: device %s did not reach %s: %w", address, target, ErrTimeout)
}
