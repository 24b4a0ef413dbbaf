package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankingapi/internal/api/account"
	"bankingapi/internal/model"
	"bankingapi/internal/store"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Service coordinates a transfer end to end. It owns the retry loop around
// the conditional writes; the store provides the atomic unit that keeps the
// two balance changes and the log append together.
type Service struct {
	store    store.Store
	accounts *account.Service

	attempts int
	delay    time.Duration
}

func NewService(st store.Store, accounts *account.Service) *Service {
	return &Service{
		store:    st,
		accounts: accounts,
		attempts: defaultMaxAttempts,
		delay:    defaultRetryDelay,
	}
}

// Create moves amount from one account to the other. A version conflict on
// either write abandons the whole attempt and retries from a fresh read, up
// to the attempt budget. Exhausting the budget leaves a failed record in the
// log; validation and not-found failures leave no trace.
func (s *Service) Create(ctx context.Context, amount decimal.Decimal, from, to uuid.UUID) (model.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return model.Transaction{}, ErrInvalidAmount
	}

	for attempt := 1; ; attempt++ {
		created, err := s.attempt(ctx, amount, from, to)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, account.ErrConflict) {
			return model.Transaction{}, err
		}
		if attempt == s.attempts {
			break
		}

		slog.Info("Transfer hit a version conflict, retrying",
			"sender", from, "recipient", to, "attempt", attempt)
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return model.Transaction{}, ctx.Err()
		}
	}

	// Retry budget exhausted. Money did not move, but the abandoned attempt
	// still belongs in the audit trail.
	slog.Warn("Transfer abandoned after repeated conflicts",
		"sender", from, "recipient", to, "attempts", s.attempts)
	if _, err := s.store.CreateTransaction(ctx, amount, from, to, true); err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{}, account.ErrConflict
}

// attempt runs one read-check-write-log cycle as a single atomic unit.
// Both accounts are re-read on every call so retries observe fresh versions.
func (s *Service) attempt(ctx context.Context, amount decimal.Decimal, from, to uuid.UUID) (model.Transaction, error) {
	var created model.Transaction

	err := s.store.ExecTx(ctx, func(st store.Store) error {
		accounts := s.accounts.WithStore(st)

		sender, err := accounts.Get(ctx, from)
		if err != nil {
			return err
		}
		recipient, err := accounts.Get(ctx, to)
		if err != nil {
			return err
		}
		if amount.GreaterThan(sender.Balance) {
			return ErrInsufficientFunds
		}

		if _, err := accounts.UpdateBalance(ctx, from, sender.Balance.Sub(amount), sender.Version); err != nil {
			return err
		}
		if _, err := accounts.UpdateBalance(ctx, to, recipient.Balance.Add(amount), recipient.Version); err != nil {
			return err
		}

		created, err = st.CreateTransaction(ctx, amount, from, to, false)
		return err
	})
	if errors.Is(err, store.ErrVersionConflict) {
		// The commit itself can lose the race even after both writes went
		// through; that is the same conflict signal as a rejected write.
		err = account.ErrConflict
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Transaction{}, ErrNotFound
	}
	return t, err
}

// History lists every transfer attempt touching the account, newest first.
// Failed attempts are included: the log is the audit trail, not a receipt
// list.
func (s *Service) History(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}
	return s.store.ListAccountTransactions(ctx, accountID)
}
