package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestMemoryCreateAndGetAccount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateAccount(ctx, decimal.RequireFromString("100.2"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Version != 0 {
		t.Fatalf("version=%d want=0", created.Version)
	}

	got, err := m.GetAccount(ctx, created.Id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Balance.Equal(created.Balance) {
		t.Fatalf("balance=%s want=%s", got.Balance, created.Balance)
	}

	if _, err := m.GetAccount(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}
}

func TestMemoryConditionalWrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))

	updated, err := m.UpdateAccount(ctx, a.Id, decimal.NewFromInt(7), 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 1 {
		t.Fatalf("version=%d want=1", updated.Version)
	}

	// Same observed version again: the write must lose.
	if _, err := m.UpdateAccount(ctx, a.Id, decimal.NewFromInt(3), 0); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("err=%v want=ErrVersionConflict", err)
	}

	got, _ := m.GetAccount(ctx, a.Id)
	if !got.Balance.Equal(decimal.NewFromInt(7)) || got.Version != 1 {
		t.Fatalf("rejected write changed state: balance=%s version=%d", got.Balance, got.Version)
	}

	if _, err := m.UpdateAccount(ctx, uuid.New(), decimal.NewFromInt(1), 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}
}

func TestMemoryExecTxRollsBackOnError(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))
	b, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))

	failure := errors.New("boom")
	err := m.ExecTx(ctx, func(st Store) error {
		if _, err := st.UpdateAccount(ctx, a.Id, decimal.NewFromInt(5), 0); err != nil {
			t.Fatalf("update inside tx: %v", err)
		}
		if _, err := st.CreateTransaction(ctx, decimal.NewFromInt(5), a.Id, b.Id, false); err != nil {
			t.Fatalf("log inside tx: %v", err)
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("err=%v want=%v", err, failure)
	}

	got, _ := m.GetAccount(ctx, a.Id)
	if !got.Balance.Equal(decimal.NewFromInt(10)) || got.Version != 0 {
		t.Fatalf("rolled-back write leaked: balance=%s version=%d", got.Balance, got.Version)
	}
	logs, _ := m.ListAccountTransactions(ctx, a.Id)
	if len(logs) != 0 {
		t.Fatalf("rolled-back log append leaked: %d records", len(logs))
	}
}

func TestMemoryExecTxCommitDetectsRacingWriter(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))

	err := m.ExecTx(ctx, func(st Store) error {
		if _, err := st.UpdateAccount(ctx, a.Id, decimal.NewFromInt(5), 0); err != nil {
			return err
		}
		// A writer outside the transaction commits first.
		if _, err := m.UpdateAccount(ctx, a.Id, decimal.NewFromInt(9), 0); err != nil {
			return err
		}
		return nil
	})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("err=%v want=ErrVersionConflict", err)
	}

	got, _ := m.GetAccount(ctx, a.Id)
	if !got.Balance.Equal(decimal.NewFromInt(9)) || got.Version != 1 {
		t.Fatalf("losing tx clobbered winner: balance=%s version=%d", got.Balance, got.Version)
	}
}

func TestMemoryExecTxAppliesAllWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))
	b, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))

	err := m.ExecTx(ctx, func(st Store) error {
		if _, err := st.UpdateAccount(ctx, a.Id, decimal.NewFromInt(4), 0); err != nil {
			return err
		}
		if _, err := st.UpdateAccount(ctx, b.Id, decimal.NewFromInt(16), 0); err != nil {
			return err
		}
		_, err := st.CreateTransaction(ctx, decimal.NewFromInt(6), a.Id, b.Id, false)
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	gotA, _ := m.GetAccount(ctx, a.Id)
	gotB, _ := m.GetAccount(ctx, b.Id)
	if !gotA.Balance.Equal(decimal.NewFromInt(4)) || gotA.Version != 1 {
		t.Fatalf("sender balance=%s version=%d", gotA.Balance, gotA.Version)
	}
	if !gotB.Balance.Equal(decimal.NewFromInt(16)) || gotB.Version != 1 {
		t.Fatalf("recipient balance=%s version=%d", gotB.Balance, gotB.Version)
	}

	logs, _ := m.ListAccountTransactions(ctx, a.Id)
	if len(logs) != 1 || logs[0].Failed {
		t.Fatalf("log=%+v want one successful record", logs)
	}
}

func TestMemoryTransactionLogIsSharedAndOrdered(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))
	b, _ := m.CreateAccount(ctx, decimal.NewFromInt(10))

	first, _ := m.CreateTransaction(ctx, decimal.NewFromInt(1), a.Id, b.Id, false)
	second, _ := m.CreateTransaction(ctx, decimal.NewFromInt(2), b.Id, a.Id, true)

	got, err := m.GetTransaction(ctx, first.Id)
	if err != nil || !got.Amount.Equal(first.Amount) {
		t.Fatalf("get transaction: %+v err=%v", got, err)
	}
	if _, err := m.GetTransaction(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}

	logs, _ := m.ListAccountTransactions(ctx, a.Id)
	if len(logs) != 2 {
		t.Fatalf("len=%d want=2", len(logs))
	}
	// Newest first, failed attempts included.
	if logs[0].Id != second.Id || !logs[0].Failed {
		t.Fatalf("logs[0]=%+v want the failed record first", logs[0])
	}
}
