//go:build linux

package cec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityString(t *testing.T) {
	caps := CapPhysAddr | CapLogAddrs | CapTransmit
	assert.Equal(t, "PhysAddr|LogAddrs|Transmit", caps.String())
	assert.Equal(t, "None", Capability(0).String())

	assert.True(t, caps.Has(CapTransmit))
	assert.True(t, caps.Has(CapPhysAddr|CapLogAddrs))
	assert.False(t, caps.Has(CapMonitorAll))
}

func TestTxStatusString(t *testing.T) {
	assert.Equal(t, "OK", TxStatusOK.String())
	assert.Equal(t, "NotAcknowledged|MaxRetries", (TxStatusNack | TxStatusMaxRetries).String())
}

func TestLogAddrMask(t *testing.T) {
	m := MaskPlayback1 | MaskAudioSystem

	assert.True(t, m.Has(LogicalAddressPlaybackDevice1))
	assert.True(t, m.Has(LogicalAddressAudioSystem))
	assert.False(t, m.Has(LogicalAddressTV))

	assert.Equal(t, []LogicalAddress{LogicalAddressPlaybackDevice1, LogicalAddressAudioSystem},
		m.Addresses())

	assert.True(t, m.IsPlayback())
	assert.False(t, m.IsRecord())
	assert.True(t, (MaskTuner3 | MaskTV).IsTuner())
	assert.True(t, MaskBackup2.IsBackup())
}

func TestModeBits(t *testing.T) {
	// The follower nibble sits above the initiator nibble.
	mode := uint32(InitiatorSend)&modeInitiatorMask | uint32(FollowerMonitorAll)&modeFollowerMask
	assert.Equal(t, uint32(0xF1), mode)

	assert.Equal(t, ModeInitiator(1), ModeInitiator(mode&modeInitiatorMask))
	assert.Equal(t, FollowerMonitorAll, ModeFollower(mode&modeFollowerMask))
	assert.Equal(t, uint32(0xE0), uint32(FollowerMonitor))
}
