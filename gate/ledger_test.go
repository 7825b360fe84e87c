package gate_test

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gate"
	"github.com/iov-one/quorum/gatetest"
	"github.com/iov-one/quorum/gatetest/assert"
)

func TestLedgerSubmit(t *testing.T) {
	owners := gatetest.Identities(3)
	target := gatetest.NewIdentity()
	stranger := gatetest.NewIdentity()

	cases := map[string]struct {
		caller  quorum.Address
		target  quorum.Address
		amount  quorum.Amount
		wantErr *errors.Error
	}{
		"owner submits": {
			caller: owners[0],
			target: target,
			amount: 10,
		},
		"zero amount is allowed": {
			caller: owners[1],
			target: target,
			amount: 0,
		},
		"not an owner": {
			caller:  stranger,
			target:  target,
			amount:  10,
			wantErr: gate.ErrNotOwner,
		},
		"nil target": {
			caller:  owners[0],
			target:  nil,
			amount:  10,
			wantErr: errors.ErrEmpty,
		},
		"negative amount": {
			caller:  owners[0],
			target:  target,
			amount:  -1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			reg, err := gate.NewRegistry(owners, 2)
			assert.Nil(t, err)
			ledger := gate.NewLedger(reg, nil)

			index, err := ledger.Submit(tc.caller, tc.target, tc.amount, []byte("payload"))
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected submit error: %+v", err)
			}

			if tc.wantErr != nil {
				assert.Equal(t, uint64(0), ledger.Count())
				return
			}

			assert.Equal(t, uint64(0), index)
			assert.Equal(t, uint64(1), ledger.Count())

			snap, err := ledger.Get(index)
			assert.Nil(t, err)
			assert.Equal(t, index, snap.Index)
			assert.Equal(t, tc.amount, snap.Amount)
			assert.Equal(t, 0, snap.Confirmations)
			assert.Equal(t, false, snap.Executed)
			if !snap.Target.Equals(tc.target) {
				t.Fatalf("want target %s, got %s", tc.target, snap.Target)
			}
			assert.Equal(t, []byte("payload"), snap.Payload)
		})
	}
}

func TestLedgerIndicesAreMonotonic(t *testing.T) {
	owners := gatetest.Identities(2)
	reg, err := gate.NewRegistry(owners, 1)
	assert.Nil(t, err)
	ledger := gate.NewLedger(reg, nil)

	for want := uint64(0); want < 5; want++ {
		index, err := ledger.Submit(owners[0], owners[1], 1, nil)
		assert.Nil(t, err)
		assert.Equal(t, want, index)
	}
	assert.Equal(t, uint64(5), ledger.Count())
}

func TestLedgerSubmitCopiesPayload(t *testing.T) {
	owners := gatetest.Identities(1)
	reg, err := gate.NewRegistry(owners, 1)
	assert.Nil(t, err)
	ledger := gate.NewLedger(reg, nil)

	payload := []byte{1, 2, 3}
	index, err := ledger.Submit(owners[0], gatetest.NewIdentity(), 0, payload)
	assert.Nil(t, err)

	payload[0] = 99

	snap, err := ledger.Get(index)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, snap.Payload)
}

func TestLedgerConfirmAndRevoke(t *testing.T) {
	owners := gatetest.Identities(3)
	stranger := gatetest.NewIdentity()

	setup := func(t *testing.T) *gate.Ledger {
		t.Helper()
		reg, err := gate.NewRegistry(owners, 2)
		assert.Nil(t, err)
		ledger := gate.NewLedger(reg, nil)
		_, err = ledger.Submit(owners[0], stranger, 1, nil)
		assert.Nil(t, err)
		return ledger
	}

	t.Run("confirm increments the count once", func(t *testing.T) {
		ledger := setup(t)

		assert.Nil(t, ledger.Confirm(owners[0], 0))
		snap, err := ledger.Get(0)
		assert.Nil(t, err)
		assert.Equal(t, 1, snap.Confirmations)

		assert.IsErr(t, gate.ErrAlreadyConfirmed, ledger.Confirm(owners[0], 0))
		snap, err = ledger.Get(0)
		assert.Nil(t, err)
		assert.Equal(t, 1, snap.Confirmations)
	})

	t.Run("confirmations from distinct owners accumulate", func(t *testing.T) {
		ledger := setup(t)

		assert.Nil(t, ledger.Confirm(owners[0], 0))
		assert.Nil(t, ledger.Confirm(owners[1], 0))
		assert.Nil(t, ledger.Confirm(owners[2], 0))

		snap, err := ledger.Get(0)
		assert.Nil(t, err)
		assert.Equal(t, 3, snap.Confirmations)
	})

	t.Run("confirm and revoke round trip", func(t *testing.T) {
		ledger := setup(t)

		assert.Nil(t, ledger.Confirm(owners[1], 0))
		assert.Nil(t, ledger.Revoke(owners[1], 0))

		snap, err := ledger.Get(0)
		assert.Nil(t, err)
		assert.Equal(t, 0, snap.Confirmations)
	})

	t.Run("revoke without confirmation", func(t *testing.T) {
		ledger := setup(t)
		assert.IsErr(t, gate.ErrNotConfirmed, ledger.Revoke(owners[1], 0))
	})

	t.Run("revoke someone else's confirmation", func(t *testing.T) {
		ledger := setup(t)
		assert.Nil(t, ledger.Confirm(owners[0], 0))
		assert.IsErr(t, gate.ErrNotConfirmed, ledger.Revoke(owners[1], 0))
	})

	t.Run("stranger cannot confirm", func(t *testing.T) {
		ledger := setup(t)
		assert.IsErr(t, gate.ErrNotOwner, ledger.Confirm(stranger, 0))
	})

	t.Run("stranger cannot revoke", func(t *testing.T) {
		ledger := setup(t)
		assert.IsErr(t, gate.ErrNotOwner, ledger.Revoke(stranger, 0))
	})

	t.Run("unknown index", func(t *testing.T) {
		ledger := setup(t)
		assert.IsErr(t, gate.ErrTxNotFound, ledger.Confirm(owners[0], 1))
		assert.IsErr(t, gate.ErrTxNotFound, ledger.Revoke(owners[0], 1))
	})

	t.Run("ownership is checked before the index", func(t *testing.T) {
		ledger := setup(t)
		assert.IsErr(t, gate.ErrNotOwner, ledger.Confirm(stranger, 42))
	})
}

func TestLedgerGet(t *testing.T) {
	owners := gatetest.Identities(1)
	reg, err := gate.NewRegistry(owners, 1)
	assert.Nil(t, err)
	ledger := gate.NewLedger(reg, nil)

	if _, err := ledger.Get(0); !gate.ErrTxNotFound.Is(err) {
		t.Fatalf("want ErrTxNotFound, got %+v", err)
	}
	assert.Equal(t, uint64(0), ledger.Count())
}

func TestLedgerEvents(t *testing.T) {
	owners := gatetest.Identities(2)
	reg, err := gate.NewRegistry(owners, 2)
	assert.Nil(t, err)

	var sink gatetest.Sink
	ledger := gate.NewLedger(reg, &sink)

	target := gatetest.NewIdentity()
	index, err := ledger.Submit(owners[0], target, 5, []byte{0xff})
	assert.Nil(t, err)
	assert.Nil(t, ledger.Confirm(owners[1], index))
	assert.Nil(t, ledger.Revoke(owners[1], index))

	events := sink.Events()
	assert.Equal(t, 3, len(events))

	sub, ok := events[0].(quorum.Submitted)
	if !ok {
		t.Fatalf("want a submitted event, got %T", events[0])
	}
	assert.Equal(t, index, sub.Index)
	assert.Equal(t, quorum.Amount(5), sub.Amount)
	assert.Equal(t, []byte{0xff}, sub.Payload)
	if !sub.Caller.Equals(owners[0]) {
		t.Fatalf("want caller %s, got %s", owners[0], sub.Caller)
	}
	if !sub.Target.Equals(target) {
		t.Fatalf("want target %s, got %s", target, sub.Target)
	}
	if sub.EventID() == "" {
		t.Fatal("event must carry an identifier")
	}

	con, ok := events[1].(quorum.Confirmed)
	if !ok {
		t.Fatalf("want a confirmed event, got %T", events[1])
	}
	assert.Equal(t, index, con.Index)
	if !con.Caller.Equals(owners[1]) {
		t.Fatalf("want caller %s, got %s", owners[1], con.Caller)
	}

	rev, ok := events[2].(quorum.Revoked)
	if !ok {
		t.Fatalf("want a revoked event, got %T", events[2])
	}
	assert.Equal(t, index, rev.Index)

	// Failed operations must not emit events.
	assert.IsErr(t, gate.ErrNotConfirmed, ledger.Revoke(owners[1], index))
	assert.Equal(t, 3, len(sink.Events()))
}
