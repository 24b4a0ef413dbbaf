package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bankingapi/internal/model"
)

// querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same queries run inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Postgres struct {
	db   querier
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{db: pool, pool: pool}
}

func (p *Postgres) CreateAccount(ctx context.Context, balance decimal.Decimal) (model.Account, error) {
	var a model.Account
	err := p.db.QueryRow(ctx,
		"INSERT INTO accounts (balance) VALUES ($1) RETURNING id, balance, version",
		balance,
	).Scan(&a.Id, &a.Balance, &a.Version)
	if err != nil {
		return model.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (p *Postgres) GetAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var a model.Account
	err := p.db.QueryRow(ctx,
		"SELECT id, balance, version FROM accounts WHERE id = $1",
		id,
	).Scan(&a.Id, &a.Balance, &a.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("select account: %w", err)
	}
	return a, nil
}

func (p *Postgres) UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) (model.Account, error) {
	var a model.Account
	err := p.db.QueryRow(ctx, `
		UPDATE accounts
		SET balance = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING id, balance, version`,
		balance, id, expectedVersion,
	).Scan(&a.Id, &a.Balance, &a.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		// Callers read the account just before writing, so a missing row here
		// means the version moved underneath them.
		return model.Account{}, ErrVersionConflict
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("update account: %w", err)
	}
	return a, nil
}

func (p *Postgres) ListAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	rows, err := p.db.Query(ctx,
		"SELECT id, balance, version FROM accounts ORDER BY id LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.Id, &a.Balance, &a.Version); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (p *Postgres) CountAccounts(ctx context.Context) (int, error) {
	var total int
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&total); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return total, nil
}

func (p *Postgres) CreateTransaction(ctx context.Context, amount decimal.Decimal, sender, recipient uuid.UUID, failed bool) (model.Transaction, error) {
	var t model.Transaction
	err := p.db.QueryRow(ctx, `
		INSERT INTO transactions (amount, sender_id, recipient_id, failed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, amount, sender_id, recipient_id, failed, created_at`,
		amount, sender, recipient, failed,
	).Scan(&t.Id, &t.Amount, &t.Sender, &t.Recipient, &t.Failed, &t.CreatedAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (p *Postgres) GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	var t model.Transaction
	err := p.db.QueryRow(ctx, `
		SELECT id, amount, sender_id, recipient_id, failed, created_at
		FROM transactions
		WHERE id = $1`,
		id,
	).Scan(&t.Id, &t.Amount, &t.Sender, &t.Recipient, &t.Failed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Transaction{}, ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("select transaction: %w", err)
	}
	return t, nil
}

func (p *Postgres) ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, amount, sender_id, recipient_id, failed, created_at
		FROM transactions
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.Id, &t.Amount, &t.Sender, &t.Recipient, &t.Failed, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ExecTx runs fn against a store bound to a single database transaction.
// A conflict or error anywhere inside fn rolls back every write, so a sender
// can never stay debited without the recipient credited.
func (p *Postgres) ExecTx(ctx context.Context, fn func(Store) error) error {
	if p.pool == nil {
		return errors.New("store is already transaction-scoped")
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&Postgres{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
