package postgres

// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit. The schema lives under
// db/migrations. Monetary columns are numeric; values cross the wire as text
// and are parsed into decimals so no float ever touches an amount.

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mcdaley/dough-app/internal/errs"
	"github.com/mcdaley/dough-app/internal/ledger"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// SeedDev inserts a user and a sample checking account for quick local runs.
func (s *Store) SeedDev(ctx context.Context, user ledger.User) (ledger.Account, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, `
		insert into users (id) values ($1) on conflict (id) do nothing
	`, user.ID); err != nil {
		return ledger.Account{}, err
	}
	acc := ledger.Account{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Name:               "Everyday Checking",
		FinancialInstitute: "Dough Bank",
		Type:               ledger.AccountTypeChecking,
		InitialBalance:     decimal.Zero,
	}
	if _, err := tx.Exec(ctx, `
		insert into accounts (id, user_id, name, financial_institute, type, initial_balance, initial_date)
		values ($1,$2,$3,$4,$5,$6, now())
	`, acc.ID, acc.UserID, acc.Name, acc.FinancialInstitute, acc.Type, acc.InitialBalance.String()); err != nil {
		return ledger.Account{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ledger.Account{}, err
	}
	return acc, nil
}

const accountCols = `id, user_id, name, financial_institute, type, initial_balance::text, initial_date`

func scanAccount(row pgx.Row) (ledger.Account, error) {
	var a ledger.Account
	var balance string
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.FinancialInstitute, &a.Type, &balance, &a.InitialDate); err != nil {
		return ledger.Account{}, err
	}
	d, err := decimal.NewFromString(balance)
	if err != nil {
		return ledger.Account{}, err
	}
	a.InitialBalance = d
	return a, nil
}

// GetAccount fetches a single account by id for a user.
func (s *Store) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	row := s.pool.QueryRow(ctx, `
		select `+accountCols+`
		from accounts
		where user_id = $1 and id = $2
	`, userID, accountID)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Account{}, errs.NewNotFound("account", accountID.String())
	}
	return a, err
}

// ListAccounts returns all accounts for a user.
func (s *Store) ListAccounts(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `
		select `+accountCols+`
		from accounts
		where user_id = $1
		order by name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAccount persists a new account.
func (s *Store) CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	_, err := s.pool.Exec(ctx, `
		insert into accounts (id, user_id, name, financial_institute, type, initial_balance, initial_date)
		values ($1,$2,$3,$4,$5,$6,$7)
	`, a.ID, a.UserID, a.Name, a.FinancialInstitute, a.Type, a.InitialBalance.String(), a.InitialDate)
	if err != nil {
		return ledger.Account{}, err
	}
	return a, nil
}

// UpdateAccount persists changes to an existing account.
func (s *Store) UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	tag, err := s.pool.Exec(ctx, `
		update accounts
		set name = $3, financial_institute = $4, type = $5, initial_balance = $6
		where user_id = $1 and id = $2
	`, a.UserID, a.ID, a.Name, a.FinancialInstitute, a.Type, a.InitialBalance.String())
	if err != nil {
		return ledger.Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return ledger.Account{}, errs.NewNotFound("account", a.ID.String())
	}
	return a, nil
}

// DeleteAccount removes the account row only. Transactions referencing it are
// intentionally left behind; there is no cascade and no foreign key enforcing
// one.
func (s *Store) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	a, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return ledger.Account{}, err
	}
	if _, err := s.pool.Exec(ctx, `
		delete from accounts where user_id = $1 and id = $2
	`, userID, accountID); err != nil {
		return ledger.Account{}, err
	}
	return a, nil
}

const txnCols = `id, account_id, user_id, description, date, category, direction, amount::text`

func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var t ledger.Transaction
	var amount string
	if err := row.Scan(&t.ID, &t.AccountID, &t.UserID, &t.Description, &t.Date, &t.Category, &t.Direction, &amount); err != nil {
		return ledger.Transaction{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return ledger.Transaction{}, err
	}
	t.Amount = d
	return t, nil
}

// CreateTransaction persists a transaction row.
func (s *Store) CreateTransaction(ctx context.Context, txn ledger.Transaction) (ledger.Transaction, error) {
	_, err := s.pool.Exec(ctx, `
		insert into transactions (id, account_id, user_id, description, date, category, direction, amount)
		values ($1,$2,$3,$4,$5,$6,$7,$8)
	`, txn.ID, txn.AccountID, txn.UserID, txn.Description, txn.Date, txn.Category, txn.Direction, txn.Amount.String())
	if err != nil {
		return ledger.Transaction{}, err
	}
	return txn, nil
}

// ListTransactions returns all transactions for one account in insertion
// order. The projector sorts by date on read; insertion order is what breaks
// same-date ties.
func (s *Store) ListTransactions(ctx context.Context, userID, accountID uuid.UUID) ([]ledger.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		select `+txnCols+`
		from transactions
		where user_id = $1 and account_id = $2
		order by seq
	`, userID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTransaction returns one transaction scoped to its account.
func (s *Store) GetTransaction(ctx context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		select `+txnCols+`
		from transactions
		where account_id = $1 and id = $2
	`, accountID, txnID)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Transaction{}, errs.NewNotFound("transaction", txnID.String())
	}
	return t, err
}

// DeleteTransaction removes one transaction and returns the deleted record.
func (s *Store) DeleteTransaction(ctx context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	t, err := s.GetTransaction(ctx, accountID, txnID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if _, err := s.pool.Exec(ctx, `
		delete from transactions where account_id = $1 and id = $2
	`, accountID, txnID); err != nil {
		return ledger.Transaction{}, err
	}
	return t, nil
}
