//go:build linux

package cec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cecd/cec/uapi"
)

func TestMessageEncode(t *testing.T) {
	msg := NewMessage(LogicalAddressPlaybackDevice1, LogicalAddressTV,
		OpcodeGiveDevicePowerStatus)
	msg.Reply = OpcodeReportPowerStatus
	msg.Timeout = 2 * time.Second
	require.NoError(t, msg.Validate())

	var raw uapi.Msg
	msg.encode(&raw)

	assert.Equal(t, uint32(2), raw.Len)
	assert.Equal(t, byte(0x40), raw.Msg[0], "header is initiator<<4|destination")
	assert.Equal(t, byte(OpcodeGiveDevicePowerStatus), raw.Msg[1])
	assert.Equal(t, uint8(OpcodeReportPowerStatus), raw.Reply)
	assert.Equal(t, uint32(2000), raw.Timeout)
}

func TestMessageEncodeParams(t *testing.T) {
	msg := NewMessage(LogicalAddressPlaybackDevice1, LogicalAddressBroadcast,
		OpcodeActiveSource, 0x10, 0x00)
	require.NoError(t, msg.Validate())

	var raw uapi.Msg
	msg.encode(&raw)

	assert.Equal(t, uint32(4), raw.Len)
	assert.Equal(t, byte(0x4F), raw.Msg[0])
	assert.Equal(t, []byte{0x10, 0x00}, raw.Msg[2:4])
}

func TestPollMessageEncode(t *testing.T) {
	msg := PollMessage(LogicalAddressPlaybackDevice1, LogicalAddressPlaybackDevice2)
	require.NoError(t, msg.Validate())
	assert.True(t, msg.IsPoll())

	var raw uapi.Msg
	msg.encode(&raw)
	assert.Equal(t, uint32(1), raw.Len, "poll frame is just the header byte")
	assert.Equal(t, byte(0x48), raw.Msg[0])
}

func TestMessageDecodeRoundTrip(t *testing.T) {
	in := NewMessage(LogicalAddressTV, LogicalAddressPlaybackDevice1,
		OpcodeSetOSDName, 'L', 'i', 'v', 'i', 'n', 'g')
	var raw uapi.Msg
	in.encode(&raw)

	out := decodeMessage(&raw)
	assert.Equal(t, in.From, out.From)
	assert.Equal(t, in.To, out.To)
	assert.Equal(t, in.Opcode, out.Opcode)
	assert.True(t, out.OpcodeSet)
	assert.Equal(t, in.Params, out.Params)
	assert.False(t, out.IsBroadcast())
}

func TestMessageDecodeDriverFields(t *testing.T) {
	var raw uapi.Msg
	raw.Len = 2
	raw.Msg[0] = 0x04
	raw.Msg[1] = byte(OpcodeImageViewOn)
	raw.Sequence = 42
	raw.TxTs = 1_000_000
	raw.TxStatus = uint8(TxStatusOK)
	raw.TxNackCnt = 1

	out := decodeMessage(&raw)
	assert.Equal(t, uint32(42), out.Sequence)
	assert.Equal(t, time.Duration(1_000_000), out.TxTimestamp)
	assert.Equal(t, TxStatusOK, out.TxStatus)
	assert.Equal(t, uint8(1), out.TxNackCount)
	assert.True(t, out.OK())
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want error
	}{
		{
			name: "too many params",
			msg:  NewMessage(4, 0, OpcodeVendorCommand, make([]byte, MaxParams+1)...),
			want: ErrPayloadTooLarge,
		},
		{
			name: "max params ok",
			msg:  NewMessage(4, 0, OpcodeVendorCommand, make([]byte, MaxParams)...),
			want: nil,
		},
		{
			name: "bad initiator",
			msg:  &Message{From: 0x10, To: 0},
			want: ErrInvalidAddress,
		},
		{
			name: "poll with params",
			msg:  &Message{From: 4, To: 5, Params: []byte{1}},
			want: ErrInvalidMessage,
		},
		{
			name: "reply to broadcast",
			msg: &Message{From: 4, To: LogicalAddressBroadcast,
				Opcode: OpcodeGiveDevicePowerStatus, OpcodeSet: true, Reply: OpcodeReportPowerStatus},
			want: ErrInvalidMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestMessageOK(t *testing.T) {
	m := &Message{}
	assert.False(t, m.OK(), "no status bits means no outcome yet")

	m.TxStatus = TxStatusOK
	assert.True(t, m.OK())

	m.TxStatus = TxStatusNack | TxStatusMaxRetries
	assert.False(t, m.OK())

	m = &Message{RxStatus: RxStatusOK}
	assert.True(t, m.OK())

	m.RxStatus |= RxStatusFeatureAbort
	assert.False(t, m.OK(), "a feature abort reply is not a success")
}

func TestMessageFeatureAbort(t *testing.T) {
	m := NewMessage(LogicalAddressTV, LogicalAddressPlaybackDevice1,
		OpcodeFeatureAbort, byte(OpcodeGiveDevicePowerStatus), byte(AbortReasonUnrecognized))
	op, reason, ok := m.FeatureAbort()
	require.True(t, ok)
	assert.Equal(t, OpcodeGiveDevicePowerStatus, op)
	assert.Equal(t, AbortReasonUnrecognized, reason)

	_, _, ok = NewMessage(0, 4, OpcodeStandby).FeatureAbort()
	assert.False(t, ok)
}

func TestMessageString(t *testing.T) {
	assert.Equal(t, "Playback Device 1 -> TV poll",
		PollMessage(LogicalAddressPlaybackDevice1, LogicalAddressTV).String())
	assert.Equal(t, "TV -> Broadcast 0x36",
		NewMessage(LogicalAddressTV, LogicalAddressBroadcast, OpcodeStandby).String())
}
