package gate

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Dispatcher is the capability performing the external side-effecting
// action once quorum is reached. It must transfer the given amount of the
// pooled balance to the target, carrying the opaque payload, and report
// whether it succeeded. It must return synchronously.
type Dispatcher interface {
	Dispatch(target quorum.Address, amount quorum.Amount, payload []byte) error
}

// DispatcherFunc turns a plain function into a Dispatcher.
type DispatcherFunc func(target quorum.Address, amount quorum.Amount, payload []byte) error

var _ Dispatcher = DispatcherFunc(nil)

func (f DispatcherFunc) Dispatch(target quorum.Address, amount quorum.Amount, payload []byte) error {
	return f(target, amount, payload)
}

// Gate decides when a ledger entry is eligible for execution and performs
// the side-effecting action exactly once per entry.
type Gate struct {
	reg    *Registry
	ledger *Ledger
	out    Dispatcher
	sink   quorum.Sink
}

// NewGate wires the execution gate over a ledger and an external dispatch
// capability. A nil sink silences all events.
func NewGate(reg *Registry, ledger *Ledger, out Dispatcher, sink quorum.Sink) *Gate {
	if sink == nil {
		sink = quorum.NopSink{}
	}
	return &Gate{
		reg:    reg,
		ledger: ledger,
		out:    out,
		sink:   sink,
	}
}

// Execute dispatches the entry at the given index once its confirmation
// count reached the threshold. The operation is atomic: either the entry
// is marked executed and the dispatch succeeded, or neither happened.
//
// The entry is marked executed strictly before the dispatch and the mark
// is reverted if the dispatch fails. The ledger lock is not held across
// the external call, so a callee that reenters the ledger observes a
// consistent, already finalized state instead of deadlocking.
func (g *Gate) Execute(caller quorum.Address, index uint64) error {
	target, amount, payload, err := g.ledger.beginExecute(caller, index, g.reg.Threshold())
	if err != nil {
		return err
	}

	if err := g.out.Dispatch(target, amount, payload); err != nil {
		g.ledger.rollbackExecute(index)
		return errors.Wrapf(ErrDispatchFailed, "transaction %d: %s", index, err)
	}

	g.sink.Publish(quorum.Executed{
		ID:     quorum.NewEventID(),
		Caller: caller.Clone(),
		Index:  index,
	})
	return nil
}
