package quorum

import (
	"math"

	"github.com/iov-one/quorum/errors"
)

// Amount is a quantity of pooled value. It is a plain scalar because this
// system manages a single fungible pool, not a multi-currency wallet.
type Amount int64

// MaxAmount is the upper bound of any single amount or balance.
const MaxAmount Amount = math.MaxInt64

// Validate returns an error if the amount cannot be used in a transfer.
func (a Amount) Validate() error {
	if a < 0 {
		return errors.ErrInput.Newf("negative amount: %d", a)
	}
	return nil
}

// Add combines two amounts, failing on overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > MaxAmount-a {
		return 0, errors.ErrOverflow.Newf("%d + %d", a, b)
	}
	return a + b, nil
}
