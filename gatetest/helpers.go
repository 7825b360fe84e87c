package gatetest

import (
	"crypto/ed25519"
	"crypto/rand"
	"sync"

	"github.com/iov-one/quorum"
)

// NewIdentity returns an address derived from a freshly generated ed25519
// public key, the same way production identities are derived from
// authenticated key material.
func NewIdentity() quorum.Address {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return quorum.NewAddress(pub)
}

// Identities returns n distinct identities.
func Identities(n int) []quorum.Address {
	addrs := make([]quorum.Address, n)
	for i := range addrs {
		addrs[i] = NewIdentity()
	}
	return addrs
}

// Dispatcher is a scripted gate.Dispatcher double. It records every call
// and returns the configured error, or the errors queued with Fail in
// FIFO order.
type Dispatcher struct {
	// Err is returned by every Dispatch call unless a queued error is
	// pending.
	Err error

	// Callback, when set, runs inside Dispatch before the result is
	// decided. Use it to simulate a reentrant callee.
	Callback func(target quorum.Address, amount quorum.Amount, payload []byte)

	mu     sync.Mutex
	queued []error
	calls  []DispatchCall
}

// DispatchCall is a recording of one Dispatch invocation.
type DispatchCall struct {
	Target  quorum.Address
	Amount  quorum.Amount
	Payload []byte
}

func (d *Dispatcher) Dispatch(target quorum.Address, amount quorum.Amount, payload []byte) error {
	d.mu.Lock()
	d.calls = append(d.calls, DispatchCall{
		Target:  target,
		Amount:  amount,
		Payload: payload,
	})
	var err error
	if len(d.queued) > 0 {
		err = d.queued[0]
		d.queued = d.queued[1:]
	} else {
		err = d.Err
	}
	cb := d.Callback
	d.mu.Unlock()

	if cb != nil {
		cb(target, amount, payload)
	}
	return err
}

// Fail queues an error to be returned by the next Dispatch call. Queued
// errors take precedence over Err.
func (d *Dispatcher) Fail(err error) {
	d.mu.Lock()
	d.queued = append(d.queued, err)
	d.mu.Unlock()
}

// Calls returns all recorded invocations.
func (d *Dispatcher) Calls() []DispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DispatchCall(nil), d.calls...)
}

// CallCount returns the number of recorded invocations.
func (d *Dispatcher) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// Sink captures every published event for later inspection.
type Sink struct {
	mu     sync.Mutex
	events []quorum.Event
}

var _ quorum.Sink = (*Sink)(nil)

func (s *Sink) Publish(ev quorum.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

// Events returns all captured events in publication order.
func (s *Sink) Events() []quorum.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]quorum.Event(nil), s.events...)
}

// ByKind returns the captured events of the given kind.
func (s *Sink) ByKind(kind string) []quorum.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []quorum.Event
	for _, ev := range s.events {
		if ev.Kind() == kind {
			out = append(out, ev)
		}
	}
	return out
}
