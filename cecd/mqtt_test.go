package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cecd/cec"
)

// fakeMQTTMessage satisfies the paho message interface for handler tests.
type fakeMQTTMessage struct {
	payload []byte
}

func (m *fakeMQTTMessage) Duplicate() bool   { return false }
func (m *fakeMQTTMessage) Qos() byte         { return 0 }
func (m *fakeMQTTMessage) Retained() bool    { return false }
func (m *fakeMQTTMessage) Topic() string     { return "cec/transmit" }
func (m *fakeMQTTMessage) MessageID() uint16 { return 1 }
func (m *fakeMQTTMessage) Payload() []byte   { return m.payload }
func (m *fakeMQTTMessage) Ack()              {}

func transmitPayload(t *testing.T, body interface{}) *fakeMQTTMessage {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	return &fakeMQTTMessage{payload: payload}
}

func TestMQTTTransmit(t *testing.T) {
	dev := &stubDevice{}
	b := &MQTTBridge{dev: dev, prefix: "cec"}

	b.onTransmit(nil, transmitPayload(t, map[string]interface{}{
		"destination": 0,
		"opcode":      0x36,
	}))

	require.Len(t, dev.transmitted, 1)
	msg := dev.transmitted[0]
	assert.Equal(t, cec.LogicalAddressPlaybackDevice1, msg.From, "initiator defaults to own address")
	assert.Equal(t, cec.OpcodeStandby, msg.Opcode)
}

func TestMQTTTransmitRejectsBadInitiator(t *testing.T) {
	dev := &stubDevice{}
	b := &MQTTBridge{dev: dev, prefix: "cec"}

	initiator := 16
	payload, err := json.Marshal(rawCommand{
		Initiator:   &initiator,
		Destination: 0,
		Opcode:      0x36,
	})
	require.NoError(t, err)

	b.onTransmit(nil, &fakeMQTTMessage{payload: payload})
	assert.Empty(t, dev.transmitted, "out-of-range initiator is rejected, not replaced")
}

func TestMQTTTransmitRejectsBadPayload(t *testing.T) {
	dev := &stubDevice{}
	b := &MQTTBridge{dev: dev, prefix: "cec"}

	b.onTransmit(nil, &fakeMQTTMessage{payload: []byte("not json")})
	b.onTransmit(nil, transmitPayload(t, map[string]interface{}{
		"destination": 16,
		"opcode":      0x36,
	}))
	assert.Empty(t, dev.transmitted)
}
