package gate

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// To avoid burning CPU on linear owner scans, this is the maximum number
// of owners allowed in a single registry.
const maxOwnersAllowed = 100

// Registry holds the fixed set of authorized owner identities and the
// confirmation threshold. It is immutable after construction and safe to
// share by read-only reference.
type Registry struct {
	owners    []quorum.Address
	threshold int
}

// NewRegistry validates the owner set and threshold and returns an
// immutable registry. The checks run in a fixed order so that the first
// violated rule determines the returned error kind.
func NewRegistry(owners []quorum.Address, threshold int) (*Registry, error) {
	switch n := len(owners); {
	case n == 0:
		return nil, errors.Wrap(ErrEmptyOwnerSet, "no owners")
	case n > maxOwnersAllowed:
		return nil, errors.ErrInput.Newf("more than %d owners", maxOwnersAllowed)
	}

	if threshold < 1 || threshold > len(owners) {
		return nil, ErrInvalidThreshold.Newf("threshold %d for %d owners", threshold, len(owners))
	}

	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidOwner, "owner %d", i)
		}
	}

	seen := make(map[string]struct{}, len(owners))
	cpy := make([]quorum.Address, 0, len(owners))
	for _, o := range owners {
		if _, ok := seen[string(o)]; ok {
			return nil, ErrDuplicateOwner.Newf("owner %s", o)
		}
		seen[string(o)] = struct{}{}
		cpy = append(cpy, o.Clone())
	}

	return &Registry{
		owners:    cpy,
		threshold: threshold,
	}, nil
}

// IsOwner returns true if the given identity belongs to the owner set.
func (r *Registry) IsOwner(addr quorum.Address) bool {
	for _, o := range r.owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// Owners returns the owner identities in construction order. The result is
// a copy and can be modified freely by the caller.
func (r *Registry) Owners() []quorum.Address {
	cpy := make([]quorum.Address, 0, len(r.owners))
	for _, o := range r.owners {
		cpy = append(cpy, o.Clone())
	}
	return cpy
}

// Threshold returns the number of distinct owner confirmations required
// before an entry may execute.
func (r *Registry) Threshold() int {
	return r.threshold
}
