//go:build linux

package cec

import (
	"fmt"
	"time"

	"cecd/cec/uapi"
)

// EventType discriminates the adapter event variants.
type EventType uint32

const (
	// EventStateChange occurs when the adapter's physical address or
	// claimed logical addresses change.
	EventStateChange EventType = 1
	// EventLostMessages is sent when received messages were dropped
	// because the application did not empty the queue in time.
	EventLostMessages EventType = 2
)

func (t EventType) String() string {
	switch t {
	case EventStateChange:
		return "State Change"
	case EventLostMessages:
		return "Lost Messages"
	default:
		return "Unknown"
	}
}

// StateChange is the payload of an EventStateChange event.
type StateChange struct {
	// PhysicalAddress is the current physical address.
	PhysicalAddress PhysicalAddress
	// LogicalAddresses is the current set of claimed logical addresses,
	// 0 if nothing is claimed or the physical address is invalid.
	LogicalAddresses LogAddrMask
}

// LostMessages is the payload of an EventLostMessages event.
type LostMessages struct {
	// Count is how many messages were lost.
	Count uint32
}

// Event is one record from the adapter's event queue, a tagged variant over
// the payload types. Events are consumed in arrival order; the kernel keeps
// one queue per filehandle and event type and overwrites the oldest entry
// on overflow, so the latest state is always available.
type Event struct {
	Type EventType
	// Timestamp of when the event was sent (CLOCK_MONOTONIC).
	Timestamp time.Duration
	Flags     EventFlags

	// StateChange is valid when Type is EventStateChange.
	StateChange StateChange
	// LostMessages is valid when Type is EventLostMessages.
	LostMessages LostMessages
}

// InitialState reports whether this is the snapshot event queued when the
// filehandle was opened.
func (e *Event) InitialState() bool {
	return e.Flags&EventFlagInitialState != 0
}

func (e *Event) String() string {
	switch e.Type {
	case EventStateChange:
		return fmt.Sprintf("state change: phys %s, claimed %04x",
			e.StateChange.PhysicalAddress, uint16(e.StateChange.LogicalAddresses))
	case EventLostMessages:
		return fmt.Sprintf("lost %d messages", e.LostMessages.Count)
	}
	return "unknown event"
}

// decodeEvent builds an Event from the kernel record.
func decodeEvent(raw *uapi.Event) (*Event, error) {
	e := &Event{
		Type:      EventType(raw.Type),
		Timestamp: time.Duration(raw.Ts),
		Flags:     EventFlags(raw.Flags),
	}
	switch e.Type {
	case EventStateChange:
		sc := raw.StateChange()
		e.StateChange = StateChange{
			PhysicalAddress:  PhysicalAddress(sc.PhysAddr),
			LogicalAddresses: LogAddrMask(sc.LogAddrMask),
		}
	case EventLostMessages:
		e.LostMessages = LostMessages{Count: raw.LostMsgs().LostMsgs}
	default:
		return nil, fmt.Errorf("%w: unknown event type %d", ErrInvalidMessage, raw.Type)
	}
	return e, nil
}
