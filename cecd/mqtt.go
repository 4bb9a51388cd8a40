package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"cecd/cec"
)

// MQTTBridge mirrors the CEC bus onto an MQTT broker: every received
// message is published to <prefix>/message and every adapter event to
// <prefix>/event. Transmit requests arriving on <prefix>/transmit are
// sent onto the bus.
type MQTTBridge struct {
	client mqtt.Client
	dev    busDevice
	prefix string
}

type mqttMessage struct {
	Timestamp time.Time `json:"timestamp"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Opcode    *int      `json:"opcode,omitempty"`
	Params    []byte    `json:"params,omitempty"`
	Text      string    `json:"text"`
}

type mqttEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
}

// NewMQTTBridge connects to the broker and subscribes to the transmit
// topic.
func NewMQTTBridge(cfg MQTTConfig, dev busDevice) (*MQTTBridge, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	b := &MQTTBridge{dev: dev, prefix: cfg.Prefix}
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		topic := b.prefix + "/transmit"
		if token := c.Subscribe(topic, 0, b.onTransmit); token.Wait() && token.Error() != nil {
			log.Printf("mqtt: subscribe %s: %v", topic, token.Error())
		}
	})

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", cfg.Broker, token.Error())
	}
	return b, nil
}

// Close disconnects from the broker.
func (b *MQTTBridge) Close() {
	b.client.Disconnect(250)
}

// PublishMessage mirrors one received bus message to the broker.
func (b *MQTTBridge) PublishMessage(msg *cec.Message) {
	m := mqttMessage{
		Timestamp: time.Now(),
		From:      int(msg.From),
		To:        int(msg.To),
		Params:    msg.Params,
		Text:      msg.String(),
	}
	if msg.OpcodeSet {
		op := int(msg.Opcode)
		m.Opcode = &op
	}
	b.publish(b.prefix+"/message", m)
}

// PublishEvent mirrors one adapter event to the broker.
func (b *MQTTBridge) PublishEvent(ev *cec.Event) {
	b.publish(b.prefix+"/event", mqttEvent{
		Timestamp: time.Now(),
		Type:      ev.Type.String(),
		Text:      ev.String(),
	})
}

func (b *MQTTBridge) publish(topic string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.client.Publish(topic, 0, false, payload)
}

// onTransmit handles a transmit request from the broker. The payload is
// the same JSON shape the HTTP /api/command endpoint accepts.
func (b *MQTTBridge) onTransmit(_ mqtt.Client, m mqtt.Message) {
	var req rawCommand
	if err := json.Unmarshal(m.Payload(), &req); err != nil {
		log.Printf("mqtt: bad transmit payload: %v", err)
		return
	}
	from := b.dev.OwnAddress()
	if req.Initiator != nil {
		if *req.Initiator < 0 || *req.Initiator > 15 {
			log.Printf("mqtt: bad transmit payload: initiator out of range")
			return
		}
		from = cec.LogicalAddress(*req.Initiator)
	}
	if req.Destination < 0 || req.Destination > 15 || req.Opcode < 0 || req.Opcode > 0xFF {
		log.Printf("mqtt: bad transmit payload: address or opcode out of range")
		return
	}
	msg := cec.NewMessage(from, cec.LogicalAddress(req.Destination),
		cec.Opcode(req.Opcode), req.Parameters...)
	if err := msg.Validate(); err != nil {
		log.Printf("mqtt: bad transmit payload: %v", err)
		return
	}
	if _, err := b.dev.TransmitMessage(msg); err != nil {
		log.Printf("mqtt: transmit failed: %v", err)
	}
}
