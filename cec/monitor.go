//go:build linux

package cec

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// busSource is the slice of Device the Monitor needs. Satisfied by
// *Device; tests substitute a stub.
type busSource interface {
	WaitReady(events int16, timeout time.Duration) (int16, error)
	Receive() (*Message, error)
	DequeueEvent() (*Event, error)
}

// Monitor pumps a non-blocking Device in a background goroutine and fans
// the traffic out over channels. The device must have been opened with
// OpenNonBlocking; on a blocking handle the pump goroutine can wedge in
// a receive.
//
// Messages or events that arrive while the corresponding channel is full
// are dropped; the kernel-side LostMessages event still accounts for
// queue overruns on the adapter itself.
type Monitor struct {
	src busSource

	messages chan *Message
	events   chan *Event
	errs     chan error

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewMonitor starts pumping dev. Close the monitor before closing the
// device.
func NewMonitor(dev *Device) *Monitor {
	return newMonitor(dev)
}

func newMonitor(src busSource) *Monitor {
	m := &Monitor{
		src:      src,
		messages: make(chan *Message, 64),
		events:   make(chan *Event, 16),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go m.run()
	return m
}

// Messages delivers received messages in arrival order. The channel is
// closed when the monitor stops.
func (m *Monitor) Messages() <-chan *Message {
	return m.messages
}

// Events delivers adapter events in arrival order. The channel is closed
// when the monitor stops.
func (m *Monitor) Events() <-chan *Event {
	return m.events
}

// Errs delivers the first fatal pump error, if any.
func (m *Monitor) Errs() <-chan error {
	return m.errs
}

// Close stops the pump and closes the output channels. It does not close
// the underlying device.
func (m *Monitor) Close() {
	m.closeOnce.Do(func() { close(m.done) })
	<-m.stopped
}

func (m *Monitor) run() {
	defer func() {
		close(m.messages)
		close(m.events)
		close(m.stopped)
	}()
	for {
		select {
		case <-m.done:
			return
		default:
		}

		// Short timeout so a Close is noticed promptly.
		ready, err := m.src.WaitReady(unix.POLLIN|unix.POLLPRI, 250*time.Millisecond)
		if err != nil {
			m.fail(err)
			return
		}
		if ready&unix.POLLPRI != 0 {
			if !m.drainEvents() {
				return
			}
		}
		if ready&unix.POLLIN != 0 {
			if !m.drainMessages() {
				return
			}
		}
	}
}

func (m *Monitor) drainMessages() bool {
	for {
		msg, err := m.src.Receive()
		if errors.Is(err, ErrWouldBlock) {
			return true
		}
		if err != nil {
			m.fail(err)
			return false
		}
		select {
		case m.messages <- msg:
		case <-m.done:
			return false
		default:
			// Consumer is not keeping up; drop rather than stall the pump.
		}
	}
}

func (m *Monitor) drainEvents() bool {
	for {
		ev, err := m.src.DequeueEvent()
		if errors.Is(err, ErrWouldBlock) {
			return true
		}
		if err != nil {
			m.fail(err)
			return false
		}
		select {
		case m.events <- ev:
		case <-m.done:
			return false
		default:
		}
	}
}

func (m *Monitor) fail(err error) {
	select {
	case m.errs <- err:
	default:
	}
}
