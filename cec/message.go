//go:build linux

package cec

import (
	"fmt"
	"time"

	"cecd/cec/uapi"
)

// MaxParams is the maximum number of operand bytes in a single CEC frame
// (frame size minus the header byte and the opcode).
const MaxParams = uapi.MaxMsgSize - 2

// Message is one CEC frame plus the transmit/receive metadata the kernel
// reports for it.
//
// From, To, Opcode and Params are set by the caller for a transmit and
// filled in from the frame on receive. The remaining fields are filled in
// by the driver.
type Message struct {
	From      LogicalAddress
	To        LogicalAddress
	Opcode    Opcode
	OpcodeSet bool
	Params    []byte

	// Reply, if non-zero, makes a transmit wait for a reply with that
	// opcode. Replies are only possible for directed messages. Zero
	// means no reply wait, matching the kernel encoding, so a wait for
	// Feature Abort (opcode 0x00) is not expressible; the kernel
	// completes any reply wait on a Feature Abort regardless.
	Reply Opcode
	// Timeout bounds a receive, or the wait for a reply on transmit.
	// Zero means wait forever on receive and one second for a reply.
	Timeout time.Duration

	// Sequence is assigned by the framework on transmit. On a received
	// message a non-zero sequence identifies the result of an earlier
	// non-blocking transmit.
	Sequence uint32
	// TxTimestamp and RxTimestamp are CLOCK_MONOTONIC timestamps set by
	// the driver when the message was sent or received.
	TxTimestamp time.Duration
	RxTimestamp time.Duration

	TxStatus TxStatus
	RxStatus RxStatus

	// Retry counters, set by the driver.
	TxArbLostCount  uint8
	TxNackCount     uint8
	TxLowDriveCount uint8
	TxErrorCount    uint8
}

// NewMessage builds a directed or broadcast message with optional operand
// bytes.
func NewMessage(from, to LogicalAddress, opcode Opcode, params ...byte) *Message {
	return &Message{
		From:      from,
		To:        to,
		Opcode:    opcode,
		OpcodeSet: true,
		Params:    params,
	}
}

// PollMessage builds an opcode-less poll frame, used to check whether a
// logical address is in use.
func PollMessage(from, to LogicalAddress) *Message {
	return &Message{From: from, To: to}
}

// IsBroadcast reports whether the message is addressed to everyone.
func (m *Message) IsBroadcast() bool {
	return m.To == LogicalAddressBroadcast
}

// IsPoll reports whether the message is a poll frame without an opcode.
func (m *Message) IsPoll() bool {
	return !m.OpcodeSet
}

// OK reports whether the bus outcome of the message was a success: the
// transmit was acknowledged (if there was one), the receive was clean (if
// there was one), and the reply was not a Feature Abort.
func (m *Message) OK() bool {
	if m.TxStatus != 0 && m.TxStatus&TxStatusOK == 0 {
		return false
	}
	if m.RxStatus != 0 && m.RxStatus&RxStatusOK == 0 {
		return false
	}
	if m.TxStatus == 0 && m.RxStatus == 0 {
		return false
	}
	return m.RxStatus&RxStatusFeatureAbort == 0
}

// FeatureAbort returns the aborted opcode and reason if the message is a
// Feature Abort with both operands present.
func (m *Message) FeatureAbort() (Opcode, AbortReason, bool) {
	if !m.OpcodeSet || m.Opcode != OpcodeFeatureAbort || len(m.Params) < 2 {
		return 0, 0, false
	}
	return Opcode(m.Params[0]), AbortReason(m.Params[1]), true
}

// Validate checks the message shape before it is handed to the kernel.
func (m *Message) Validate() error {
	if !m.From.Valid() {
		return fmt.Errorf("%w: initiator %d", ErrInvalidAddress, m.From)
	}
	if !m.To.Valid() {
		return fmt.Errorf("%w: destination %d", ErrInvalidAddress, m.To)
	}
	if len(m.Params) > MaxParams {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(m.Params), MaxParams)
	}
	if m.IsPoll() && len(m.Params) > 0 {
		return fmt.Errorf("%w: poll message carries %d operand bytes", ErrInvalidMessage, len(m.Params))
	}
	if m.Reply != 0 && m.IsBroadcast() {
		return fmt.Errorf("%w: cannot wait for a reply to a broadcast", ErrInvalidMessage)
	}
	return nil
}

// encode fills a kernel message struct from m. The caller must have run
// Validate first.
func (m *Message) encode(raw *uapi.Msg) {
	*raw = uapi.Msg{}
	raw.Msg[0] = byte(m.From)<<4 | byte(m.To)
	raw.Len = 1
	if m.OpcodeSet {
		raw.Msg[1] = byte(m.Opcode)
		raw.Len = 2
		copy(raw.Msg[2:], m.Params)
		raw.Len += uint32(len(m.Params))
	}
	raw.Reply = uint8(m.Reply)
	raw.Timeout = uint32(m.Timeout / time.Millisecond)
}

// decodeMessage builds a Message from a kernel message struct.
func decodeMessage(raw *uapi.Msg) *Message {
	m := &Message{
		From:     LogicalAddress(raw.Msg[0] >> 4),
		To:       LogicalAddress(raw.Msg[0] & 0xF),
		Reply:    Opcode(raw.Reply),
		Timeout:  time.Duration(raw.Timeout) * time.Millisecond,
		Sequence: raw.Sequence,

		TxTimestamp: time.Duration(raw.TxTs),
		RxTimestamp: time.Duration(raw.RxTs),
		TxStatus:    TxStatus(raw.TxStatus),
		RxStatus:    RxStatus(raw.RxStatus),

		TxArbLostCount:  raw.TxArbLostCnt,
		TxNackCount:     raw.TxNackCnt,
		TxLowDriveCount: raw.TxLowDriveCnt,
		TxErrorCount:    raw.TxErrorCnt,
	}
	if raw.Len > 1 {
		m.Opcode = Opcode(raw.Msg[1])
		m.OpcodeSet = true
	}
	if raw.Len > 2 {
		end := raw.Len
		if end > uapi.MaxMsgSize {
			end = uapi.MaxMsgSize
		}
		m.Params = append([]byte(nil), raw.Msg[2:end]...)
	}
	return m
}

// applyResult copies the driver-filled transmit outcome back into m.
func (m *Message) applyResult(raw *uapi.Msg) {
	m.Sequence = raw.Sequence
	m.TxTimestamp = time.Duration(raw.TxTs)
	m.RxTimestamp = time.Duration(raw.RxTs)
	m.TxStatus = TxStatus(raw.TxStatus)
	m.RxStatus = RxStatus(raw.RxStatus)
	m.TxArbLostCount = raw.TxArbLostCnt
	m.TxNackCount = raw.TxNackCnt
	m.TxLowDriveCount = raw.TxLowDriveCnt
	m.TxErrorCount = raw.TxErrorCnt
}

func (m *Message) String() string {
	if m.IsPoll() {
		return fmt.Sprintf("%s -> %s poll", m.From, m.To)
	}
	if len(m.Params) == 0 {
		return fmt.Sprintf("%s -> %s 0x%02X", m.From, m.To, uint8(m.Opcode))
	}
	return fmt.Sprintf("%s -> %s 0x%02X % X", m.From, m.To, uint8(m.Opcode), m.Params)
}
