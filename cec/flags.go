//go:build linux

package cec

import "strings"

// Capability holds the CEC_CAP_* flags reported by the adapter.
type Capability uint32

const (
	// CapPhysAddr means userspace has to configure the physical address
	// via Device.SetPhysicalAddress.
	CapPhysAddr Capability = 1 << 0
	// CapLogAddrs means userspace has to configure the logical addresses
	// via Device.SetLogicalAddresses.
	CapLogAddrs Capability = 1 << 1
	// CapTransmit means userspace can transmit messages, and thus also
	// become a follower.
	CapTransmit Capability = 1 << 2
	// CapPassthrough means all messages can be passed to userspace
	// instead of being processed by the framework.
	CapPassthrough Capability = 1 << 3
	// CapRC means the adapter supports remote control.
	CapRC Capability = 1 << 4
	// CapMonitorAll means the hardware can monitor all messages, not just
	// directed and broadcast. Needed for FollowerMonitorAll.
	CapMonitorAll Capability = 1 << 5
)

// Has reports whether all capabilities in mask are present.
func (c Capability) Has(mask Capability) bool {
	return c&mask == mask
}

func (c Capability) String() string {
	var names []string
	for _, f := range []struct {
		bit  Capability
		name string
	}{
		{CapPhysAddr, "PhysAddr"},
		{CapLogAddrs, "LogAddrs"},
		{CapTransmit, "Transmit"},
		{CapPassthrough, "Passthrough"},
		{CapRC, "RC"},
		{CapMonitorAll, "MonitorAll"},
	} {
		if c&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// LogAddrFlags holds the CEC_LOG_ADDRS_FL_* flags for a logical address
// claim.
type LogAddrFlags uint32

const (
	// LogAddrFlagAllowUnregFallback makes the adapter fall back to the
	// Unregistered logical address if no address of the requested type
	// can be claimed, instead of going unconfigured.
	LogAddrFlagAllowUnregFallback LogAddrFlags = 1 << 0
)

// TxStatus holds the CEC_TX_STATUS_* bits reported after a transmit.
type TxStatus uint8

const (
	TxStatusOK         TxStatus = 1 << 0
	TxStatusArbLost    TxStatus = 1 << 1
	TxStatusNack       TxStatus = 1 << 2
	TxStatusLowDrive   TxStatus = 1 << 3
	TxStatusError      TxStatus = 1 << 4
	TxStatusMaxRetries TxStatus = 1 << 5
)

func (s TxStatus) String() string {
	var names []string
	for _, f := range []struct {
		bit  TxStatus
		name string
	}{
		{TxStatusOK, "OK"},
		{TxStatusArbLost, "ArbitrationLost"},
		{TxStatusNack, "NotAcknowledged"},
		{TxStatusLowDrive, "LowDrive"},
		{TxStatusError, "Error"},
		{TxStatusMaxRetries, "MaxRetries"},
	} {
		if s&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// RxStatus holds the CEC_RX_STATUS_* bits reported on a received message.
type RxStatus uint8

const (
	RxStatusOK           RxStatus = 1 << 0
	RxStatusTimeout      RxStatus = 1 << 1
	RxStatusFeatureAbort RxStatus = 1 << 2
)

func (s RxStatus) String() string {
	var names []string
	for _, f := range []struct {
		bit  RxStatus
		name string
	}{
		{RxStatusOK, "OK"},
		{RxStatusTimeout, "Timeout"},
		{RxStatusFeatureAbort, "FeatureAbort"},
	} {
		if s&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// LogAddrMask is the bitmask of all logical addresses the adapter has
// claimed. 0 if the adapter is unconfigured.
type LogAddrMask uint16

const (
	MaskTV           LogAddrMask = 1 << 0
	MaskRecord1      LogAddrMask = 1 << 1
	MaskRecord2      LogAddrMask = 1 << 2
	MaskTuner1       LogAddrMask = 1 << 3
	MaskPlayback1    LogAddrMask = 1 << 4
	MaskAudioSystem  LogAddrMask = 1 << 5
	MaskTuner2       LogAddrMask = 1 << 6
	MaskTuner3       LogAddrMask = 1 << 7
	MaskPlayback2    LogAddrMask = 1 << 8
	MaskRecord3      LogAddrMask = 1 << 9
	MaskTuner4       LogAddrMask = 1 << 10
	MaskPlayback3    LogAddrMask = 1 << 11
	MaskBackup1      LogAddrMask = 1 << 12
	MaskBackup2      LogAddrMask = 1 << 13
	MaskSpecific     LogAddrMask = 1 << 14
	MaskUnregistered LogAddrMask = 1 << 15
)

// Has reports whether the address a is in the mask.
func (m LogAddrMask) Has(a LogicalAddress) bool {
	return a.Valid() && m&(1<<uint(a)) != 0
}

// Addresses expands the mask to the list of claimed logical addresses.
func (m LogAddrMask) Addresses() []LogicalAddress {
	var addrs []LogicalAddress
	for a := LogicalAddressTV; a <= LogicalAddressBroadcast; a++ {
		if m&(1<<uint(a)) != 0 {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// IsPlayback reports whether any playback address is in the mask.
func (m LogAddrMask) IsPlayback() bool {
	return m&(MaskPlayback1|MaskPlayback2|MaskPlayback3) != 0
}

// IsRecord reports whether any recording address is in the mask.
func (m LogAddrMask) IsRecord() bool {
	return m&(MaskRecord1|MaskRecord2|MaskRecord3) != 0
}

// IsTuner reports whether any tuner address is in the mask.
func (m LogAddrMask) IsTuner() bool {
	return m&(MaskTuner1|MaskTuner2|MaskTuner3|MaskTuner4) != 0
}

// IsBackup reports whether any backup address is in the mask.
func (m LogAddrMask) IsBackup() bool {
	return m&(MaskBackup1|MaskBackup2) != 0
}

// ModeInitiator selects the transmit role of a filehandle.
type ModeInitiator uint32

const (
	// InitiatorNone disables transmitting on this handle (others still can).
	InitiatorNone ModeInitiator = 0
	// InitiatorSend is the default shared access.
	InitiatorSend ModeInitiator = 1
	// InitiatorExclusive does not allow other senders.
	InitiatorExclusive ModeInitiator = 2
)

// ModeFollower selects which received messages a filehandle sees.
type ModeFollower uint32

const (
	// FollowerRepliesOnly only retrieves replies to this handle's own
	// messages. The default.
	FollowerRepliesOnly ModeFollower = 0x0 << 4
	// FollowerAll retrieves all messages for this device. Needs
	// CapTransmit and an initiator mode other than InitiatorNone.
	FollowerAll ModeFollower = 0x1 << 4
	// FollowerExclusive retrieves all messages and locks the device.
	FollowerExclusive ModeFollower = 0x2 << 4
	// FollowerExclusivePassthrough passes most core messages through to
	// userspace unprocessed; the follower has to implement them.
	FollowerExclusivePassthrough ModeFollower = 0x3 << 4
	// FollowerMonitor sees all messages sent or received by this device.
	// Only possible with InitiatorNone; needs CAP_NET_ADMIN.
	FollowerMonitor ModeFollower = 0xE << 4
	// FollowerMonitorAll sees all messages on the bus. Additionally needs
	// CapMonitorAll.
	FollowerMonitorAll ModeFollower = 0xF << 4
)

const (
	modeInitiatorMask = 0x0F
	modeFollowerMask  = 0xF0
)

// EventFlags holds the CEC_EVENT_FL_* bits.
type EventFlags uint32

const (
	// EventFlagInitialState marks the snapshot event delivered right
	// after the filehandle was opened.
	EventFlagInitialState EventFlags = 1 << 0
)
