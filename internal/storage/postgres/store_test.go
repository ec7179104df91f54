package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdaley/dough-app/internal/ledger"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
}

func truncateAll(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `truncate transactions, accounts, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestAccountAndTransactionRoundTrip(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	applyInitSQL(t, s)
	truncateAll(t, s)

	ctx := context.Background()
	user := ledger.User{ID: uuid.New()}
	acc, err := s.SeedDev(ctx, user)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.GetAccount(ctx, user.ID, acc.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Name != acc.Name || !got.InitialBalance.IsZero() {
		t.Fatalf("unexpected account: %+v", got)
	}

	txn := ledger.Transaction{
		ID:          uuid.New(),
		AccountID:   acc.ID,
		UserID:      user.ID,
		Description: "Groceries",
		Date:        time.Now().UTC(),
		Category:    "food",
		Direction:   ledger.DirectionDebit,
		Amount:      decimal.RequireFromString("-45.50"),
	}
	if _, err := s.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	txns, err := s.ListTransactions(ctx, user.ID, acc.ID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if !txns[0].Amount.Equal(txn.Amount) {
		t.Fatalf("amount round trip: got %s, want %s", txns[0].Amount, txn.Amount)
	}

	// account delete leaves the transaction row behind
	if _, err := s.DeleteAccount(ctx, user.ID, acc.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	var n int
	if err := s.pool.QueryRow(ctx, `select count(*) from transactions where account_id = $1`, acc.ID).Scan(&n); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected orphaned transaction to remain, got %d rows", n)
	}
}
