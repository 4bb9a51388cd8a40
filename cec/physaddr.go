//go:build linux

package cec

import "fmt"

// PhysicalAddress is the 16-bit HDMI physical address a.b.c.d, where each
// group of 4 bits is one digit and the most significant 4 bits are 'a'. The
// CEC root device (usually the TV) has address 0.0.0.0; a device on HDMI
// input 'a' of the TV has address a.0.0.0, and so on, up to 5 levels deep.
type PhysicalAddress uint16

// InvalidPhysicalAddress is reported when nothing is connected, and clears
// an existing physical address when passed to Device.SetPhysicalAddress.
const InvalidPhysicalAddress PhysicalAddress = 0xFFFF

// String formats the address in dot notation, e.g. 0x3300 -> "3.3.0.0".
func (p PhysicalAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		(p>>12)&0xF, (p>>8)&0xF, (p>>4)&0xF, p&0xF)
}

// Port returns the top-level HDMI port digit (0 for the root device).
func (p PhysicalAddress) Port() uint8 {
	return uint8((p >> 12) & 0xF)
}

// Bytes returns the big-endian operand encoding used in CEC frames.
func (p PhysicalAddress) Bytes() [2]byte {
	return [2]byte{byte(p >> 8), byte(p)}
}

// PhysicalAddressFromBytes decodes the big-endian operand encoding.
func PhysicalAddressFromBytes(hi, lo byte) PhysicalAddress {
	return PhysicalAddress(hi)<<8 | PhysicalAddress(lo)
}

// ParsePhysicalAddress converts dot notation to a physical address.
func ParsePhysicalAddress(s string) (PhysicalAddress, error) {
	var a, b, c, d uint16
	if _, err := fmt.Sscanf(s, "%d.%d.%d.%d", &a, &b, &c, &d); err != nil {
		return 0, fmt.Errorf("invalid physical address %q: %w", s, err)
	}
	if a > 15 || b > 15 || c > 15 || d > 15 {
		return 0, fmt.Errorf("invalid physical address %q: components must be 0-15", s)
	}
	return PhysicalAddress(a<<12 | b<<8 | c<<4 | d), nil
}
