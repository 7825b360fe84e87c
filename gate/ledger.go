package gate

import (
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Ledger is the append-only indexed list of submitted actions together
// with their per-owner confirmation sets. Entries are addressed by a
// monotonically increasing index that is never reused, so an index handed
// out once stays valid forever.
//
// Every state-changing operation is atomic: the mutex serializes all
// calls, so no operation observes a partially updated ledger.
type Ledger struct {
	mu      sync.Mutex
	reg     *Registry
	sink    quorum.Sink
	entries []*entry
}

// NewLedger returns an empty ledger gated by the given registry. A nil
// sink silences all events.
func NewLedger(reg *Registry, sink quorum.Sink) *Ledger {
	if sink == nil {
		sink = quorum.NopSink{}
	}
	return &Ledger{
		reg:  reg,
		sink: sink,
	}
}

// Submit appends a new entry with zero confirmations and returns its
// index, which equals the ledger length before the call. Only owners may
// submit.
func (l *Ledger) Submit(caller, target quorum.Address, amount quorum.Amount, payload []byte) (uint64, error) {
	if !l.reg.IsOwner(caller) {
		return 0, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	if err := target.Validate(); err != nil {
		return 0, errors.Wrap(err, "target")
	}
	if err := amount.Validate(); err != nil {
		return 0, errors.Wrap(err, "amount")
	}

	l.mu.Lock()
	index := uint64(len(l.entries))
	l.entries = append(l.entries, newEntry(target, amount, payload))
	l.mu.Unlock()

	l.sink.Publish(quorum.Submitted{
		ID:      quorum.NewEventID(),
		Caller:  caller.Clone(),
		Index:   index,
		Target:  target.Clone(),
		Amount:  amount,
		Payload: append([]byte(nil), payload...),
	})
	return index, nil
}

// Confirm records the caller's approval of the entry at the given index
// and increases the confirmation count by one.
func (l *Ledger) Confirm(caller quorum.Address, index uint64) error {
	l.mu.Lock()
	e, err := l.pending(caller, index)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if e.confirmed(caller) {
		l.mu.Unlock()
		return errors.Wrapf(ErrAlreadyConfirmed, "transaction %d", index)
	}
	e.confirmedBy[string(caller)] = struct{}{}
	l.mu.Unlock()

	l.sink.Publish(quorum.Confirmed{
		ID:     quorum.NewEventID(),
		Caller: caller.Clone(),
		Index:  index,
	})
	return nil
}

// Revoke withdraws the caller's previous confirmation of the entry at the
// given index and decreases the confirmation count by one.
func (l *Ledger) Revoke(caller quorum.Address, index uint64) error {
	l.mu.Lock()
	e, err := l.pending(caller, index)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	if !e.confirmed(caller) {
		l.mu.Unlock()
		return errors.Wrapf(ErrNotConfirmed, "transaction %d", index)
	}
	delete(e.confirmedBy, string(caller))
	l.mu.Unlock()

	l.sink.Publish(quorum.Revoked{
		ID:     quorum.NewEventID(),
		Caller: caller.Clone(),
		Index:  index,
	})
	return nil
}

// Get returns a read-only copy of the entry at the given index.
func (l *Ledger) Get(index uint64) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index >= uint64(len(l.entries)) {
		return Snapshot{}, ErrTxNotFound.Newf("index %d", index)
	}
	return l.entries[index].snapshot(index), nil
}

// Count returns the number of entries ever submitted.
func (l *Ledger) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.entries))
}

// pending runs the shared guard chain for operations that mutate an
// existing entry: the caller must be an owner, the index must be in
// bounds, and the entry must not be executed yet. The guard order decides
// which error surfaces first and must not change. The ledger mutex must be
// held.
func (l *Ledger) pending(caller quorum.Address, index uint64) (*entry, error) {
	if !l.reg.IsOwner(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	if index >= uint64(len(l.entries)) {
		return nil, ErrTxNotFound.Newf("index %d", index)
	}
	e := l.entries[index]
	if e.executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", index)
	}
	return e, nil
}

// beginExecute is the first phase of the two-phase execution commit. It
// runs the standard guard chain plus the quorum check and, when all pass,
// marks the entry executed before any external call is made. It returns
// the action to dispatch.
//
// Marking the entry first closes the reentrancy window: a reentrant
// execute on the same index observes ErrAlreadyExecuted while the
// dispatch is still in flight.
func (l *Ledger) beginExecute(caller quorum.Address, index uint64, threshold int) (target quorum.Address, amount quorum.Amount, payload []byte, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, err := l.pending(caller, index)
	if err != nil {
		return nil, 0, nil, err
	}
	if e.confirmations() < threshold {
		return nil, 0, nil, ErrQuorumNotMet.Newf("%d of %d confirmations", e.confirmations(), threshold)
	}
	e.executed = true
	return e.target.Clone(), e.amount, append([]byte(nil), e.payload...), nil
}

// rollbackExecute reverts the executed mark after a failed dispatch,
// making the entry eligible for another execution attempt.
func (l *Ledger) rollbackExecute(index uint64) {
	l.mu.Lock()
	l.entries[index].executed = false
	l.mu.Unlock()
}
