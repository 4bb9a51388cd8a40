//go:build linux

package cec

// LogicalAddress represents a CEC logical address (0-15)
type LogicalAddress uint8

const (
	LogicalAddressTV               LogicalAddress = 0x0
	LogicalAddressRecordingDevice1 LogicalAddress = 0x1
	LogicalAddressRecordingDevice2 LogicalAddress = 0x2
	LogicalAddressTuner1           LogicalAddress = 0x3
	LogicalAddressPlaybackDevice1  LogicalAddress = 0x4
	LogicalAddressAudioSystem      LogicalAddress = 0x5
	LogicalAddressTuner2           LogicalAddress = 0x6
	LogicalAddressTuner3           LogicalAddress = 0x7
	LogicalAddressPlaybackDevice2  LogicalAddress = 0x8
	LogicalAddressRecordingDevice3 LogicalAddress = 0x9
	LogicalAddressTuner4           LogicalAddress = 0xA
	LogicalAddressPlaybackDevice3  LogicalAddress = 0xB
	LogicalAddressBackup1          LogicalAddress = 0xC
	LogicalAddressBackup2          LogicalAddress = 0xD
	LogicalAddressSpecific         LogicalAddress = 0xE
	// LogicalAddressUnregistered is used as the initiator address by
	// unconfigured devices; as a destination it is the broadcast address.
	LogicalAddressUnregistered LogicalAddress = 0xF
	LogicalAddressBroadcast    LogicalAddress = 0xF
)

// Valid reports whether l is a valid bus address (0-15).
func (l LogicalAddress) Valid() bool {
	return l <= LogicalAddressBroadcast
}

func (l LogicalAddress) String() string {
	switch l {
	case LogicalAddressTV:
		return "TV"
	case LogicalAddressRecordingDevice1:
		return "Recording Device 1"
	case LogicalAddressRecordingDevice2:
		return "Recording Device 2"
	case LogicalAddressTuner1:
		return "Tuner 1"
	case LogicalAddressPlaybackDevice1:
		return "Playback Device 1"
	case LogicalAddressAudioSystem:
		return "Audio System"
	case LogicalAddressTuner2:
		return "Tuner 2"
	case LogicalAddressTuner3:
		return "Tuner 3"
	case LogicalAddressPlaybackDevice2:
		return "Playback Device 2"
	case LogicalAddressRecordingDevice3:
		return "Recording Device 3"
	case LogicalAddressTuner4:
		return "Tuner 4"
	case LogicalAddressPlaybackDevice3:
		return "Playback Device 3"
	case LogicalAddressBackup1:
		return "Backup 1"
	case LogicalAddressBackup2:
		return "Backup 2"
	case LogicalAddressSpecific:
		return "Specific Use"
	case LogicalAddressBroadcast:
		return "Broadcast"
	default:
		return "Unknown"
	}
}

// PrimaryDeviceType represents the CEC primary device type operand.
type PrimaryDeviceType uint8

const (
	DeviceTypeTV              PrimaryDeviceType = 0
	DeviceTypeRecordingDevice PrimaryDeviceType = 1
	DeviceTypeTuner           PrimaryDeviceType = 3
	DeviceTypePlaybackDevice  PrimaryDeviceType = 4
	DeviceTypeAudioSystem     PrimaryDeviceType = 5
	DeviceTypeSwitch          PrimaryDeviceType = 6
	DeviceTypeProcessor       PrimaryDeviceType = 7
)

func (d PrimaryDeviceType) String() string {
	switch d {
	case DeviceTypeTV:
		return "TV"
	case DeviceTypeRecordingDevice:
		return "Recording Device"
	case DeviceTypeTuner:
		return "Tuner"
	case DeviceTypePlaybackDevice:
		return "Playback Device"
	case DeviceTypeAudioSystem:
		return "Audio System"
	case DeviceTypeSwitch:
		return "Switch"
	case DeviceTypeProcessor:
		return "Processor"
	default:
		return "Reserved"
	}
}

// LogAddrType is the kind of logical address the adapter should claim.
// Switches should use Unregistered, processors Specific.
type LogAddrType uint8

const (
	LogAddrTypeTV           LogAddrType = 0
	LogAddrTypeRecord       LogAddrType = 1
	LogAddrTypeTuner        LogAddrType = 2
	LogAddrTypePlayback     LogAddrType = 3
	LogAddrTypeAudioSystem  LogAddrType = 4
	LogAddrTypeSpecific     LogAddrType = 5
	LogAddrTypeUnregistered LogAddrType = 6
)

func (t LogAddrType) String() string {
	switch t {
	case LogAddrTypeTV:
		return "TV"
	case LogAddrTypeRecord:
		return "Record"
	case LogAddrTypeTuner:
		return "Tuner"
	case LogAddrTypePlayback:
		return "Playback"
	case LogAddrTypeAudioSystem:
		return "Audio System"
	case LogAddrTypeSpecific:
		return "Specific"
	case LogAddrTypeUnregistered:
		return "Unregistered"
	default:
		return "Invalid"
	}
}

// PowerStatus represents device power status, the operand of
// OpcodeReportPowerStatus.
type PowerStatus uint8

const (
	PowerStatusOn                      PowerStatus = 0x00
	PowerStatusStandby                 PowerStatus = 0x01
	PowerStatusInTransitionStandbyToOn PowerStatus = 0x02
	PowerStatusInTransitionOnToStandby PowerStatus = 0x03
	PowerStatusUnknown                 PowerStatus = 0xFF
)

func (p PowerStatus) String() string {
	switch p {
	case PowerStatusOn:
		return "On"
	case PowerStatusStandby:
		return "Standby"
	case PowerStatusInTransitionStandbyToOn:
		return "Transitioning to On"
	case PowerStatusInTransitionOnToStandby:
		return "Transitioning to Standby"
	default:
		return "Unknown"
	}
}

// Version is the CEC version operand, also used in the logical address
// configuration to select the version the adapter implements.
type Version uint8

const (
	Version1_3A Version = 4
	Version1_4  Version = 5
	Version2_0  Version = 6
)

func (v Version) String() string {
	switch v {
	case Version1_3A:
		return "1.3a"
	case Version1_4:
		return "1.4"
	case Version2_0:
		return "2.0"
	default:
		return "Unknown"
	}
}

// Opcode represents a CEC opcode
type Opcode uint8

const (
	// One Touch Play
	OpcodeActiveSource Opcode = 0x82
	OpcodeImageViewOn  Opcode = 0x04
	OpcodeTextViewOn   Opcode = 0x0D

	// Routing Control
	OpcodeInactiveSource      Opcode = 0x9D
	OpcodeRequestActiveSource Opcode = 0x85
	OpcodeRoutingChange       Opcode = 0x80
	OpcodeRoutingInformation  Opcode = 0x81
	OpcodeSetStreamPath       Opcode = 0x86

	// Standby
	OpcodeStandby Opcode = 0x36

	// One Touch Record
	OpcodeRecordOff      Opcode = 0x0B
	OpcodeRecordOn       Opcode = 0x09
	OpcodeRecordStatus   Opcode = 0x0A
	OpcodeRecordTVScreen Opcode = 0x0F

	// Timer Programming
	OpcodeClearAnalogueTimer   Opcode = 0x33
	OpcodeClearDigitalTimer    Opcode = 0x99
	OpcodeClearExternalTimer   Opcode = 0xA1
	OpcodeSetAnalogueTimer     Opcode = 0x34
	OpcodeSetDigitalTimer      Opcode = 0x97
	OpcodeSetExternalTimer     Opcode = 0xA2
	OpcodeSetTimerProgramTitle Opcode = 0x67
	OpcodeTimerClearedStatus   Opcode = 0x43
	OpcodeTimerStatus          Opcode = 0x35

	// System Information
	OpcodeCECVersion            Opcode = 0x9E
	OpcodeGetCECVersion         Opcode = 0x9F
	OpcodeGivePhysicalAddress   Opcode = 0x83
	OpcodeGetMenuLanguage       Opcode = 0x91
	OpcodeReportPhysicalAddress Opcode = 0x84
	OpcodeSetMenuLanguage       Opcode = 0x32
	OpcodeReportFeatures        Opcode = 0xA6
	OpcodeGiveFeatures          Opcode = 0xA5

	// Deck Control
	OpcodeDeckControl    Opcode = 0x42
	OpcodeDeckStatus     Opcode = 0x1B
	OpcodeGiveDeckStatus Opcode = 0x1A
	OpcodePlay           Opcode = 0x41

	// Tuner Control
	OpcodeGiveTunerDeviceStatus Opcode = 0x08
	OpcodeSelectAnalogueService Opcode = 0x92
	OpcodeSelectDigitalService  Opcode = 0x93
	OpcodeTunerDeviceStatus     Opcode = 0x07
	OpcodeTunerStepDecrement    Opcode = 0x06
	OpcodeTunerStepIncrement    Opcode = 0x05

	// Vendor Specific Commands
	OpcodeDeviceVendorID         Opcode = 0x87
	OpcodeGiveDeviceVendorID     Opcode = 0x8C
	OpcodeVendorCommand          Opcode = 0x89
	OpcodeVendorCommandWithID    Opcode = 0xA0
	OpcodeVendorRemoteButtonDown Opcode = 0x8A
	OpcodeVendorRemoteButtonUp   Opcode = 0x8B

	// OSD Display
	OpcodeSetOSDString Opcode = 0x64
	OpcodeGiveOSDName  Opcode = 0x46
	OpcodeSetOSDName   Opcode = 0x47

	// Device Menu Control
	OpcodeMenuRequest         Opcode = 0x8D
	OpcodeMenuStatus          Opcode = 0x8E
	OpcodeUserControlPressed  Opcode = 0x44
	OpcodeUserControlReleased Opcode = 0x45

	// Power Status
	OpcodeGiveDevicePowerStatus Opcode = 0x8F
	OpcodeReportPowerStatus     Opcode = 0x90

	// General Protocol
	OpcodeFeatureAbort Opcode = 0x00
	OpcodeAbort        Opcode = 0xFF

	// System Audio Control
	OpcodeGiveAudioStatus             Opcode = 0x71
	OpcodeGiveSystemAudioModeStatus   Opcode = 0x7D
	OpcodeReportAudioStatus           Opcode = 0x7A
	OpcodeReportShortAudioDescriptor  Opcode = 0xA3
	OpcodeRequestShortAudioDescriptor Opcode = 0xA4
	OpcodeSetSystemAudioMode          Opcode = 0x72
	OpcodeSystemAudioModeRequest      Opcode = 0x70
	OpcodeSystemAudioModeStatus       Opcode = 0x7E

	// Audio Rate Control
	OpcodeSetAudioRate Opcode = 0x9A

	// Audio Return Channel Control
	OpcodeInitiateARC           Opcode = 0xC0
	OpcodeReportARCInitiated    Opcode = 0xC1
	OpcodeReportARCTerminated   Opcode = 0xC2
	OpcodeRequestARCInitiation  Opcode = 0xC3
	OpcodeRequestARCTermination Opcode = 0xC4
	OpcodeTerminateARC          Opcode = 0xC5

	// Dynamic Audio Lipsync (CEC 2.0 and up)
	OpcodeRequestCurrentLatency Opcode = 0xA7
	OpcodeReportCurrentLatency  Opcode = 0xA8

	// Capability Discovery and Control
	OpcodeCDCMessage Opcode = 0xF8
)

// Keycode represents CEC user control codes, the parameter of
// OpcodeUserControlPressed.
type Keycode uint8

const (
	KeycodeSelect                   Keycode = 0x00
	KeycodeUp                       Keycode = 0x01
	KeycodeDown                     Keycode = 0x02
	KeycodeLeft                     Keycode = 0x03
	KeycodeRight                    Keycode = 0x04
	KeycodeRightUp                  Keycode = 0x05
	KeycodeRightDown                Keycode = 0x06
	KeycodeLeftUp                   Keycode = 0x07
	KeycodeLeftDown                 Keycode = 0x08
	KeycodeRootMenu                 Keycode = 0x09
	KeycodeSetupMenu                Keycode = 0x0A
	KeycodeContentsMenu             Keycode = 0x0B
	KeycodeFavoriteMenu             Keycode = 0x0C
	KeycodeExit                     Keycode = 0x0D
	KeycodeTopMenu                  Keycode = 0x10
	KeycodeDVDMenu                  Keycode = 0x11
	KeycodeNumberEntryMode          Keycode = 0x1D
	KeycodeNumber11                 Keycode = 0x1E
	KeycodeNumber12                 Keycode = 0x1F
	Keycode0                        Keycode = 0x20
	Keycode1                        Keycode = 0x21
	Keycode2                        Keycode = 0x22
	Keycode3                        Keycode = 0x23
	Keycode4                        Keycode = 0x24
	Keycode5                        Keycode = 0x25
	Keycode6                        Keycode = 0x26
	Keycode7                        Keycode = 0x27
	Keycode8                        Keycode = 0x28
	Keycode9                        Keycode = 0x29
	KeycodeDot                      Keycode = 0x2A
	KeycodeEnter                    Keycode = 0x2B
	KeycodeClear                    Keycode = 0x2C
	KeycodeNextFavorite             Keycode = 0x2F
	KeycodeChannelUp                Keycode = 0x30
	KeycodeChannelDown              Keycode = 0x31
	KeycodePreviousChannel          Keycode = 0x32
	KeycodeSoundSelect              Keycode = 0x33
	KeycodeInputSelect              Keycode = 0x34
	KeycodeDisplayInformation       Keycode = 0x35
	KeycodeHelp                     Keycode = 0x36
	KeycodePageUp                   Keycode = 0x37
	KeycodePageDown                 Keycode = 0x38
	KeycodePower                    Keycode = 0x40
	KeycodeVolumeUp                 Keycode = 0x41
	KeycodeVolumeDown               Keycode = 0x42
	KeycodeMute                     Keycode = 0x43
	KeycodePlay                     Keycode = 0x44
	KeycodeStop                     Keycode = 0x45
	KeycodePause                    Keycode = 0x46
	KeycodeRecord                   Keycode = 0x47
	KeycodeRewind                   Keycode = 0x48
	KeycodeFastForward              Keycode = 0x49
	KeycodeEject                    Keycode = 0x4A
	KeycodeForward                  Keycode = 0x4B
	KeycodeBackward                 Keycode = 0x4C
	KeycodeStopRecord               Keycode = 0x4D
	KeycodePauseRecord              Keycode = 0x4E
	KeycodeAngle                    Keycode = 0x50
	KeycodeSubpicture               Keycode = 0x51
	KeycodeVideoOnDemand            Keycode = 0x52
	KeycodeElectronicProgramGuide   Keycode = 0x53
	KeycodeTimerProgramming         Keycode = 0x54
	KeycodeInitialConfiguration     Keycode = 0x55
	KeycodeSelectBroadcastType      Keycode = 0x56
	KeycodeSelectSoundPresentation  Keycode = 0x57
	KeycodePlayFunction             Keycode = 0x60
	KeycodePausePlayFunction        Keycode = 0x61
	KeycodeRecordFunction           Keycode = 0x62
	KeycodePauseRecordFunction      Keycode = 0x63
	KeycodeStopFunction             Keycode = 0x64
	KeycodeMuteFunction             Keycode = 0x65
	KeycodeRestoreVolumeFunction    Keycode = 0x66
	KeycodeTuneFunction             Keycode = 0x67
	KeycodeSelectMediaFunction      Keycode = 0x68
	KeycodeSelectAVInputFunction    Keycode = 0x69
	KeycodeSelectAudioInputFunction Keycode = 0x6A
	KeycodePowerToggleFunction      Keycode = 0x6B
	KeycodePowerOffFunction         Keycode = 0x6C
	KeycodePowerOnFunction          Keycode = 0x6D
	KeycodeF1Blue                   Keycode = 0x71
	KeycodeF2Red                    Keycode = 0x72
	KeycodeF3Green                  Keycode = 0x73
	KeycodeF4Yellow                 Keycode = 0x74
	KeycodeF5                       Keycode = 0x75
	KeycodeData                     Keycode = 0x76
)

// AbortReason is the second operand of OpcodeFeatureAbort.
type AbortReason uint8

const (
	AbortReasonUnrecognized AbortReason = 0
	AbortReasonWrongMode    AbortReason = 1
	AbortReasonNoSource     AbortReason = 2
	AbortReasonInvalidOp    AbortReason = 3
	AbortReasonRefused      AbortReason = 4
	AbortReasonOther        AbortReason = 5
)

func (r AbortReason) String() string {
	switch r {
	case AbortReasonUnrecognized:
		return "Unrecognized Opcode"
	case AbortReasonWrongMode:
		return "Wrong Mode"
	case AbortReasonNoSource:
		return "Cannot Provide Source"
	case AbortReasonInvalidOp:
		return "Invalid Operand"
	case AbortReasonRefused:
		return "Refused"
	default:
		return "Other"
	}
}

// DisplayControl represents OSD display duration, the first operand of
// OpcodeSetOSDString.
type DisplayControl uint8

const (
	DisplayControlDefaultTime  DisplayControl = 0x00
	DisplayControlUntilCleared DisplayControl = 0x40
	DisplayControlClear        DisplayControl = 0x80
)

// MenuRequestType is the operand of OpcodeMenuRequest.
type MenuRequestType uint8

const (
	MenuRequestActivate   MenuRequestType = 0x00
	MenuRequestDeactivate MenuRequestType = 0x01
	MenuRequestQuery      MenuRequestType = 0x02
)

// DeckControlMode is the operand of OpcodeDeckControl.
type DeckControlMode uint8

const (
	DeckControlSkip   DeckControlMode = 1
	DeckControlRewind DeckControlMode = 2
	DeckControlStop   DeckControlMode = 3
	DeckControlEject  DeckControlMode = 4
)

// DeckInfo is the operand of OpcodeDeckStatus.
type DeckInfo uint8

const (
	DeckInfoPlay           DeckInfo = 0x11
	DeckInfoRecord         DeckInfo = 0x12
	DeckInfoPlayReverse    DeckInfo = 0x13
	DeckInfoStill          DeckInfo = 0x14
	DeckInfoSlow           DeckInfo = 0x15
	DeckInfoSlowReverse    DeckInfo = 0x16
	DeckInfoFastForward    DeckInfo = 0x17
	DeckInfoFastReverse    DeckInfo = 0x18
	DeckInfoNoMedia        DeckInfo = 0x19
	DeckInfoStop           DeckInfo = 0x1A
	DeckInfoSkipForward    DeckInfo = 0x1B
	DeckInfoSkipReverse    DeckInfo = 0x1C
	DeckInfoIndexSearchFwd DeckInfo = 0x1D
	DeckInfoIndexSearchRev DeckInfo = 0x1E
	DeckInfoOther          DeckInfo = 0x1F
)

// PlayMode is the operand of OpcodePlay.
type PlayMode uint8

const (
	PlayModeForward    PlayMode = 0x24
	PlayModeReverse    PlayMode = 0x20
	PlayModeStill      PlayMode = 0x25
	PlayModeFastFwdMin PlayMode = 0x05
	PlayModeFastFwdMed PlayMode = 0x06
	PlayModeFastFwdMax PlayMode = 0x07
	PlayModeFastRevMin PlayMode = 0x09
	PlayModeFastRevMed PlayMode = 0x0A
	PlayModeFastRevMax PlayMode = 0x0B
	PlayModeSlowFwdMin PlayMode = 0x15
	PlayModeSlowFwdMed PlayMode = 0x16
	PlayModeSlowFwdMax PlayMode = 0x17
	PlayModeSlowRevMin PlayMode = 0x19
	PlayModeSlowRevMed PlayMode = 0x1A
	PlayModeSlowRevMax PlayMode = 0x1B
)

// StatusRequest is the operand of OpcodeGiveDeckStatus and
// OpcodeGiveTunerDeviceStatus.
type StatusRequest uint8

const (
	StatusRequestOn   StatusRequest = 1
	StatusRequestOff  StatusRequest = 2
	StatusRequestOnce StatusRequest = 3
)

// VendorIDNone is used when a device has no vendor ID.
const VendorIDNone uint32 = 0xFFFFFFFF
