package quorum_test

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

func TestAmountValidate(t *testing.T) {
	cases := map[string]struct {
		amount  quorum.Amount
		wantErr *errors.Error
	}{
		"zero is allowed":     {amount: 0},
		"positive is allowed": {amount: 42},
		"negative is not": {
			amount:  -1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.amount.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestAmountAddOverflow(t *testing.T) {
	if _, err := quorum.Amount(1).Add(quorum.MaxAmount); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want ErrOverflow, got %+v", err)
	}

	total, err := quorum.Amount(40).Add(2)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if total != 42 {
		t.Fatalf("want 42, got %d", total)
	}
}
