package gate

import (
	"github.com/iov-one/quorum/errors"
)

// The gate package reserves error codes 1200-1299.
var (
	// ErrEmptyOwnerSet is returned when a registry is constructed
	// without any owner.
	ErrEmptyOwnerSet = errors.Register(1200, "empty owner set")

	// ErrInvalidThreshold is returned when the confirmation threshold is
	// outside of the 1..len(owners) range.
	ErrInvalidThreshold = errors.Register(1201, "invalid threshold")

	// ErrInvalidOwner is returned when an owner identity is nil or
	// malformed.
	ErrInvalidOwner = errors.Register(1202, "invalid owner")

	// ErrDuplicateOwner is returned when the same identity appears in
	// the owner set more than once.
	ErrDuplicateOwner = errors.Register(1203, "duplicate owner")

	// ErrNotOwner is returned when the caller is not in the registry.
	ErrNotOwner = errors.Register(1204, "not an owner")

	// ErrTxNotFound is returned when the index is out of the ledger's
	// current bounds.
	ErrTxNotFound = errors.Register(1205, "transaction not found")

	// ErrAlreadyExecuted is returned when an operation targets an entry
	// that was already executed.
	ErrAlreadyExecuted = errors.Register(1206, "transaction already executed")

	// ErrAlreadyConfirmed is returned when an owner confirms the same
	// entry twice.
	ErrAlreadyConfirmed = errors.Register(1207, "transaction already confirmed")

	// ErrNotConfirmed is returned when an owner revokes a confirmation
	// that was never given.
	ErrNotConfirmed = errors.Register(1208, "transaction not confirmed")

	// ErrQuorumNotMet is returned when an entry is executed before
	// enough owners confirmed it.
	ErrQuorumNotMet = errors.Register(1209, "quorum not met")

	// ErrDispatchFailed is returned when the external dispatch reported
	// a failure. The entry state is rolled back to not executed.
	ErrDispatchFailed = errors.Register(1210, "dispatch failed")
)
