package gate

import (
	"github.com/iov-one/quorum"
)

// entry is one queued action awaiting quorum. Entries are owned
// exclusively by the Ledger and never leave it; callers only see
// Snapshot copies.
type entry struct {
	target   quorum.Address
	amount   quorum.Amount
	payload  []byte
	executed bool

	// confirmedBy is the set of owners that confirmed this entry. The
	// confirmation counter is the size of this set, so record and
	// counter cannot desynchronize.
	confirmedBy map[string]struct{}
}

func newEntry(target quorum.Address, amount quorum.Amount, payload []byte) *entry {
	return &entry{
		target:      target.Clone(),
		amount:      amount,
		payload:     append([]byte(nil), payload...),
		confirmedBy: make(map[string]struct{}),
	}
}

func (e *entry) confirmations() int {
	return len(e.confirmedBy)
}

func (e *entry) confirmed(by quorum.Address) bool {
	_, ok := e.confirmedBy[string(by)]
	return ok
}

// Snapshot is a read-only copy of one ledger entry.
type Snapshot struct {
	Index         uint64         `json:"index"`
	Target        quorum.Address `json:"target"`
	Amount        quorum.Amount  `json:"amount"`
	Payload       []byte         `json:"payload,omitempty"`
	Executed      bool           `json:"executed"`
	Confirmations int            `json:"confirmations"`
}

func (e *entry) snapshot(index uint64) Snapshot {
	return Snapshot{
		Index:         index,
		Target:        e.target.Clone(),
		Amount:        e.amount,
		Payload:       append([]byte(nil), e.payload...),
		Executed:      e.executed,
		Confirmations: e.confirmations(),
	}
}
