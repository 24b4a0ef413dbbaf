package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankingapi/internal/model"
)

// Memory is an in-process Store with the same conditional-write semantics as
// the Postgres implementation: of two writers racing on the same observed
// version, at most one commits. It backs the test suite.
type Memory struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]model.Account
	order        []uuid.UUID
	transactions []model.Transaction
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[uuid.UUID]model.Account)}
}

func (m *Memory) CreateAccount(ctx context.Context, balance decimal.Decimal) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := model.Account{Id: uuid.New(), Balance: balance, Version: 0}
	m.accounts[a.Id] = a
	m.order = append(m.order, a.Id)
	return a, nil
}

func (m *Memory) GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, ErrNotFound
	}
	if a.Version != expectedVersion {
		return model.Account{}, ErrVersionConflict
	}
	a.Balance = balance
	a.Version++
	m.accounts[id] = a
	return a, nil
}

func (m *Memory) ListAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := make([]model.Account, 0)
	for i := offset; i < len(m.order) && len(accounts) < limit; i++ {
		accounts = append(accounts, m.accounts[m.order[i]])
	}
	return accounts, nil
}

func (m *Memory) CountAccounts(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order), nil
}

func (m *Memory) CreateTransaction(ctx context.Context, amount decimal.Decimal, sender, recipient uuid.UUID, failed bool) (model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := newTransaction(amount, sender, recipient, failed)
	m.transactions = append(m.transactions, t)
	return t, nil
}

func (m *Memory) GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.transactions {
		if t.Id == id {
			return t, nil
		}
	}
	return model.Transaction{}, ErrNotFound
}

func (m *Memory) ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	transactions := make([]model.Transaction, 0)
	for i := len(m.transactions) - 1; i >= 0; i-- {
		t := m.transactions[i]
		if t.Sender == accountID || t.Recipient == accountID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// ExecTx buffers every write made through the scoped store and applies the
// whole batch under one lock after re-checking that each touched account still
// carries the version the transaction first wrote against. That reproduces the
// database behavior: nothing is half-applied, and a racing writer makes the
// entire unit fail with ErrVersionConflict.
func (m *Memory) ExecTx(ctx context.Context, fn func(Store) error) error {
	tx := &memTx{
		base:     m,
		overlay:  make(map[uuid.UUID]model.Account),
		expected: make(map[uuid.UUID]int64),
	}
	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, version := range tx.expected {
		current, ok := m.accounts[id]
		if !ok || current.Version != version {
			return ErrVersionConflict
		}
	}
	for _, id := range tx.created {
		m.accounts[id] = tx.overlay[id]
		m.order = append(m.order, id)
	}
	for id, a := range tx.overlay {
		if _, fresh := tx.expected[id]; fresh {
			m.accounts[id] = a
		}
	}
	m.transactions = append(m.transactions, tx.txs...)
	return nil
}

// memTx is the transaction-scoped view handed to ExecTx callbacks. Reads see
// the transaction's own writes first, then committed state.
type memTx struct {
	base     *Memory
	overlay  map[uuid.UUID]model.Account
	expected map[uuid.UUID]int64
	created  []uuid.UUID
	txs      []model.Transaction
}

func (t *memTx) CreateAccount(ctx context.Context, balance decimal.Decimal) (model.Account, error) {
	a := model.Account{Id: uuid.New(), Balance: balance, Version: 0}
	t.overlay[a.Id] = a
	t.created = append(t.created, a.Id)
	return a, nil
}

func (t *memTx) GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	if a, ok := t.overlay[id]; ok {
		return a, nil
	}
	return t.base.GetAccount(ctx, id)
}

func (t *memTx) UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) (model.Account, error) {
	current, err := t.GetAccount(ctx, id)
	if err != nil {
		return model.Account{}, err
	}
	if current.Version != expectedVersion {
		return model.Account{}, ErrVersionConflict
	}

	if _, ok := t.overlay[id]; !ok {
		// First touch: remember the committed version this unit depends on.
		t.expected[id] = current.Version
	}
	current.Balance = balance
	current.Version++
	t.overlay[id] = current
	return current, nil
}

func (t *memTx) ListAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	return t.base.ListAccounts(ctx, limit, offset)
}

func (t *memTx) CountAccounts(ctx context.Context) (int, error) {
	return t.base.CountAccounts(ctx)
}

func (t *memTx) CreateTransaction(ctx context.Context, amount decimal.Decimal, sender, recipient uuid.UUID, failed bool) (model.Transaction, error) {
	tr := newTransaction(amount, sender, recipient, failed)
	t.txs = append(t.txs, tr)
	return tr, nil
}

func (t *memTx) GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	for _, tr := range t.txs {
		if tr.Id == id {
			return tr, nil
		}
	}
	return t.base.GetTransaction(ctx, id)
}

func (t *memTx) ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	return t.base.ListAccountTransactions(ctx, accountID)
}

func (t *memTx) ExecTx(ctx context.Context, fn func(Store) error) error {
	return errors.New("store is already transaction-scoped")
}

func newTransaction(amount decimal.Decimal, sender, recipient uuid.UUID, failed bool) model.Transaction {
	return model.Transaction{
		Id:        uuid.New(),
		Amount:    amount,
		Sender:    sender,
		Recipient: recipient,
		Failed:    failed,
		CreatedAt: time.Now().UTC(),
	}
}
