package account

import "errors"

var (
	// ErrNotFound means no account exists for the given id.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidBalance rejects negative balances and non-positive starting
	// balances.
	ErrInvalidBalance = errors.New("balance must not be negative")
	// ErrConflict means a conditional write lost against a concurrent one.
	// The caller must re-read the account and retry; it is not a system fault.
	ErrConflict = errors.New("account was modified concurrently")
)
