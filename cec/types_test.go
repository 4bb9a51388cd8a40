//go:build linux

package cec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicalAddressValues(t *testing.T) {
	assert.Equal(t, LogicalAddress(0x0), LogicalAddressTV)
	assert.Equal(t, LogicalAddress(0x4), LogicalAddressPlaybackDevice1)
	assert.Equal(t, LogicalAddress(0x5), LogicalAddressAudioSystem)
	assert.Equal(t, LogicalAddress(0xF), LogicalAddressBroadcast)
	assert.Equal(t, LogicalAddressBroadcast, LogicalAddressUnregistered,
		"0xF is Unregistered as initiator and Broadcast as destination")

	assert.True(t, LogicalAddress(0xF).Valid())
	assert.False(t, LogicalAddress(0x10).Valid())
}

func TestOpcodeValues(t *testing.T) {
	assert.Equal(t, Opcode(0x04), OpcodeImageViewOn)
	assert.Equal(t, Opcode(0x36), OpcodeStandby)
	assert.Equal(t, Opcode(0x00), OpcodeFeatureAbort)
	assert.Equal(t, Opcode(0x82), OpcodeActiveSource)
	assert.Equal(t, Opcode(0x8F), OpcodeGiveDevicePowerStatus)
	assert.Equal(t, Opcode(0x90), OpcodeReportPowerStatus)
	assert.Equal(t, Opcode(0x9E), OpcodeCECVersion)
	assert.Equal(t, Opcode(0x83), OpcodeGivePhysicalAddress)
	assert.Equal(t, Opcode(0x84), OpcodeReportPhysicalAddress)
	assert.Equal(t, Opcode(0xC0), OpcodeInitiateARC)
}

func TestPowerStatusString(t *testing.T) {
	assert.Equal(t, "On", PowerStatusOn.String())
	assert.Equal(t, "Standby", PowerStatusStandby.String())
	assert.Equal(t, "Unknown", PowerStatus(0x42).String())
}

func TestVersionValues(t *testing.T) {
	assert.Equal(t, Version(4), Version1_3A)
	assert.Equal(t, Version(5), Version1_4)
	assert.Equal(t, Version(6), Version2_0)
}

func TestVendorName(t *testing.T) {
	assert.Equal(t, "Pulse Eight", GetVendorName(0x001582))
	assert.Equal(t, "Sony", GetVendorName(0x08001F))
	assert.Equal(t, "Unknown (0xABCDEF)", GetVendorName(0xABCDEF))
}

func TestDeviceTypeForAddress(t *testing.T) {
	assert.Equal(t, DeviceTypeTV, DeviceTypeForAddress(LogicalAddressTV))
	assert.Equal(t, DeviceTypePlaybackDevice, DeviceTypeForAddress(LogicalAddressPlaybackDevice3))
	assert.Equal(t, DeviceTypeTuner, DeviceTypeForAddress(LogicalAddressTuner4))
	assert.Equal(t, DeviceTypeAudioSystem, DeviceTypeForAddress(LogicalAddressAudioSystem))
}
