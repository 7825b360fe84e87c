package quorum

import (
	"github.com/google/uuid"
)

// Event is a structured record describing one state change, published for
// external observers such as indexers and audit logs. The core requires no
// subscriber state.
type Event interface {
	// EventID returns the unique identifier stamped on this event at
	// emission time.
	EventID() string
	// Kind returns a short stable name of the event type.
	Kind() string
}

// NewEventID returns a fresh identifier for an emitted event.
func NewEventID() string {
	return uuid.NewString()
}

// Submitted is emitted when a new transaction entry is appended.
type Submitted struct {
	ID      string  `json:"id"`
	Caller  Address `json:"caller"`
	Index   uint64  `json:"index"`
	Target  Address `json:"target"`
	Amount  Amount  `json:"amount"`
	Payload []byte  `json:"payload,omitempty"`
}

func (e Submitted) EventID() string { return e.ID }
func (e Submitted) Kind() string    { return "submitted" }

// Confirmed is emitted when an owner confirms a transaction entry.
type Confirmed struct {
	ID     string  `json:"id"`
	Caller Address `json:"caller"`
	Index  uint64  `json:"index"`
}

func (e Confirmed) EventID() string { return e.ID }
func (e Confirmed) Kind() string    { return "confirmed" }

// Revoked is emitted when an owner withdraws a previous confirmation.
type Revoked struct {
	ID     string  `json:"id"`
	Caller Address `json:"caller"`
	Index  uint64  `json:"index"`
}

func (e Revoked) EventID() string { return e.ID }
func (e Revoked) Kind() string    { return "revoked" }

// Executed is emitted after a transaction entry was dispatched
// successfully. It is never emitted for a failed dispatch.
type Executed struct {
	ID     string  `json:"id"`
	Caller Address `json:"caller"`
	Index  uint64  `json:"index"`
}

func (e Executed) EventID() string { return e.ID }
func (e Executed) Kind() string    { return "executed" }

// Deposited is emitted when the pooled balance is increased from an
// external source.
type Deposited struct {
	ID      string  `json:"id"`
	Sender  Address `json:"sender"`
	Amount  Amount  `json:"amount"`
	Balance Amount  `json:"balance"`
}

func (e Deposited) EventID() string { return e.ID }
func (e Deposited) Kind() string    { return "deposited" }
