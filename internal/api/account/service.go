package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankingapi/internal/model"
	"bankingapi/internal/store"
)

// DefaultStartingBalance is used when account creation omits a balance.
var DefaultStartingBalance = decimal.NewFromInt(1)

// Service applies the account domain rules on top of the store: balance
// validation, not-found translation and the conditional balance write.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// WithStore rebinds the service to st, typically a transaction-scoped store
// obtained inside ExecTx, so the same rules apply within an atomic unit.
func (s *Service) WithStore(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Create(ctx context.Context, startingBalance *decimal.Decimal) (model.Account, error) {
	balance := DefaultStartingBalance
	if startingBalance != nil {
		balance = *startingBalance
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		return model.Account{}, ErrInvalidBalance
	}
	return s.store.CreateAccount(ctx, balance)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.Account, error) {
	a, err := s.store.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}

func (s *Service) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return a.Balance, nil
}

// UpdateBalance issues the conditional write. The write is accepted only if
// the stored version still equals expectedVersion; ErrConflict means the
// caller raced with another writer and must re-read before trying again.
func (s *Service) UpdateBalance(ctx context.Context, id uuid.UUID, newBalance decimal.Decimal, expectedVersion int64) (model.Account, error) {
	if newBalance.IsNegative() {
		return model.Account{}, ErrInvalidBalance
	}

	a, err := s.store.UpdateAccount(ctx, id, newBalance, expectedVersion)
	switch {
	case errors.Is(err, store.ErrVersionConflict):
		return model.Account{}, ErrConflict
	case errors.Is(err, store.ErrNotFound):
		return model.Account{}, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context, page, size int) ([]model.Account, int, error) {
	total, err := s.store.CountAccounts(ctx)
	if err != nil {
		return nil, 0, err
	}
	accounts, err := s.store.ListAccounts(ctx, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
