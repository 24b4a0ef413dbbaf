// Package store persists versioned accounts and the append-only transaction
// log. Balance writes are conditional: they only succeed when the caller's
// observed version still matches the stored one, which is what lets transfers
// run without locks.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankingapi/internal/model"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("version conflict")
)

type Store interface {
	CreateAccount(ctx context.Context, balance decimal.Decimal) (model.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error)
	// UpdateAccount is the compare-and-swap write: it applies balance and bumps
	// version by 1 only if the stored version still equals expectedVersion,
	// otherwise it returns ErrVersionConflict and changes nothing.
	UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) (model.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]model.Account, error)
	CountAccounts(ctx context.Context) (int, error)

	// CreateTransaction appends to the audit trail. Rows are never updated or
	// deleted afterwards.
	CreateTransaction(ctx context.Context, amount decimal.Decimal, sender, recipient uuid.UUID, failed bool) (model.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error)
	ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error)

	// ExecTx runs fn against a transaction-scoped Store. Everything written
	// through that Store commits or rolls back as a single unit.
	ExecTx(ctx context.Context, fn func(Store) error) error
}
