//go:build linux

package cec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/sys/unix"
)

// stubSource feeds canned traffic to a Monitor.
type stubSource struct {
	messages chan *Message
	events   chan *Event
	err      error
}

func newStubSource() *stubSource {
	return &stubSource{
		messages: make(chan *Message, 16),
		events:   make(chan *Event, 16),
	}
}

func (s *stubSource) WaitReady(events int16, timeout time.Duration) (int16, error) {
	if s.err != nil {
		return 0, s.err
	}
	var ready int16
	if len(s.messages) > 0 {
		ready |= unix.POLLIN
	}
	if len(s.events) > 0 {
		ready |= unix.POLLPRI
	}
	if ready == 0 {
		time.Sleep(time.Millisecond)
	}
	return ready & events, nil
}

func (s *stubSource) Receive() (*Message, error) {
	select {
	case m := <-s.messages:
		return m, nil
	default:
		return nil, ErrWouldBlock
	}
}

func (s *stubSource) DequeueEvent() (*Event, error) {
	select {
	case e := <-s.events:
		return e, nil
	default:
		return nil, ErrWouldBlock
	}
}

func TestMonitorDeliversMessages(t *testing.T) {
	src := newStubSource()
	src.messages <- NewMessage(LogicalAddressTV, LogicalAddressPlaybackDevice1, OpcodeStandby)
	src.messages <- NewMessage(LogicalAddressTV, LogicalAddressBroadcast, OpcodeActiveSource, 0x00, 0x00)

	m := newMonitor(src)
	defer m.Close()

	first := <-m.Messages()
	require.NotNil(t, first)
	assert.Equal(t, OpcodeStandby, first.Opcode)

	second := <-m.Messages()
	require.NotNil(t, second)
	assert.Equal(t, OpcodeActiveSource, second.Opcode)
	assert.True(t, second.IsBroadcast())
}

func TestMonitorDeliversEvents(t *testing.T) {
	src := newStubSource()
	src.events <- &Event{
		Type:  EventStateChange,
		Flags: EventFlagInitialState,
		StateChange: StateChange{
			PhysicalAddress:  PhysicalAddress(0x1000),
			LogicalAddresses: MaskPlayback1,
		},
	}

	m := newMonitor(src)
	defer m.Close()

	ev := <-m.Events()
	require.NotNil(t, ev)
	assert.Equal(t, EventStateChange, ev.Type)
	assert.True(t, ev.InitialState())
	assert.Equal(t, PhysicalAddress(0x1000), ev.StateChange.PhysicalAddress)
	assert.True(t, ev.StateChange.LogicalAddresses.IsPlayback())
}

func TestMonitorCloseClosesChannels(t *testing.T) {
	src := newStubSource()
	m := newMonitor(src)
	m.Close()

	_, ok := <-m.Messages()
	assert.False(t, ok)
	_, ok2 := <-m.Events()
	assert.False(t, ok2)

	// Close is idempotent.
	m.Close()
}

func TestMonitorReportsFatalError(t *testing.T) {
	src := newStubSource()
	src.err = errors.New("adapter unplugged")

	m := newMonitor(src)
	defer m.Close()

	select {
	case err := <-m.Errs():
		assert.EqualError(t, err, "adapter unplugged")
	case <-time.After(time.Second):
		t.Fatal("no error delivered")
	}
}
