package gate

import (
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Pool is the shared resource of available value that executed actions
// are funded from. Anyone may increase it through Deposit; only the gate's
// dispatch path may debit it, and only by the exact amount recorded at
// submission time.
type Pool struct {
	mu      sync.Mutex
	balance quorum.Amount
	sink    quorum.Sink
}

// NewPool returns an empty pool. A nil sink silences deposit events.
func NewPool(sink quorum.Sink) *Pool {
	if sink == nil {
		sink = quorum.NopSink{}
	}
	return &Pool{sink: sink}
}

// Deposit credits the pool with the given amount. There is no
// authorization check: any sender may increase the pool. The emitted event
// carries the resulting balance.
func (p *Pool) Deposit(sender quorum.Address, amount quorum.Amount) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "deposit")
	}

	p.mu.Lock()
	total, err := p.balance.Add(amount)
	if err != nil {
		p.mu.Unlock()
		return errors.Wrap(err, "deposit")
	}
	p.balance = total
	p.mu.Unlock()

	p.sink.Publish(quorum.Deposited{
		ID:      quorum.NewEventID(),
		Sender:  sender.Clone(),
		Amount:  amount,
		Balance: total,
	})
	return nil
}

// Balance returns the currently available pooled value.
func (p *Pool) Balance() quorum.Amount {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance
}

// debit removes the exact amount from the pool, failing when the balance
// does not cover it. Only the pool dispatcher calls this.
func (p *Pool) debit(amount quorum.Amount) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if amount > p.balance {
		return errors.ErrAmount.Newf("balance %d, want %d", p.balance, amount)
	}
	p.balance -= amount
	return nil
}

// PoolDispatcher is the reference Dispatcher implementation: it funds the
// dispatched action from a Pool. Delivering the value and payload to the
// target is left to the hosting environment; this dispatcher only performs
// the balance accounting.
type PoolDispatcher struct {
	pool *Pool
}

var _ Dispatcher = (*PoolDispatcher)(nil)

// NewPoolDispatcher returns a dispatcher debiting the given pool.
func NewPoolDispatcher(pool *Pool) *PoolDispatcher {
	return &PoolDispatcher{pool: pool}
}

func (d *PoolDispatcher) Dispatch(target quorum.Address, amount quorum.Amount, payload []byte) error {
	return d.pool.debit(amount)
}
