package transaction

import "errors"

var (
	// ErrInvalidAmount rejects zero and negative transfer amounts.
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	// ErrInsufficientFunds means the sender cannot cover the amount. Terminal:
	// a retry cannot help until the balance changes.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotFound means no transaction exists for the given id.
	ErrNotFound = errors.New("transaction not found")
)
