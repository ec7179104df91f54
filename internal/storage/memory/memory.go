// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing a
// real database to be plugged in later.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcdaley/dough-app/internal/errs"
	"github.com/mcdaley/dough-app/internal/ledger"
)

// Store is an in-memory implementation of the repository and writer
// interfaces used by the services. It is guarded by an RWMutex for concurrent
// reads and writes.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]struct{}
	accounts map[uuid.UUID]ledger.Account
	txns     map[uuid.UUID]ledger.Transaction
	// Per-account insertion-ordered index; the projector handles date order.
	txnsByAccount map[uuid.UUID][]uuid.UUID
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		users:         make(map[uuid.UUID]struct{}),
		accounts:      make(map[uuid.UUID]ledger.Account),
		txns:          make(map[uuid.UUID]ledger.Transaction),
		txnsByAccount: make(map[uuid.UUID][]uuid.UUID),
	}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedUser(u ledger.User) { s.mu.Lock(); s.users[u.ID] = struct{}{}; s.mu.Unlock() }
func (s *Store) SeedAccount(a ledger.Account) {
	s.mu.Lock()
	s.accounts[a.ID] = a
	s.mu.Unlock()
}

// Reset drops all stored data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.users = map[uuid.UUID]struct{}{}
	s.accounts = map[uuid.UUID]ledger.Account{}
	s.txns = map[uuid.UUID]ledger.Transaction{}
	s.txnsByAccount = map[uuid.UUID][]uuid.UUID{}
	s.mu.Unlock()
}

// GetAccount returns a user's account by ID.
func (s *Store) GetAccount(_ context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok || a.UserID != userID {
		return ledger.Account{}, errs.NewNotFound("account", accountID.String())
	}
	return a, nil
}

// ListAccounts returns all accounts for a user.
func (s *Store) ListAccounts(_ context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, 0)
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// CreateAccount persists a new account.
func (s *Store) CreateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return a, nil
}

// UpdateAccount persists changes to an existing account.
func (s *Store) UpdateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return ledger.Account{}, errs.NewNotFound("account", a.ID.String())
	}
	s.accounts[a.ID] = a
	return a, nil
}

// DeleteAccount removes the account record. Transactions referencing it are
// intentionally left behind; the delete does not cascade.
func (s *Store) DeleteAccount(_ context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok || a.UserID != userID {
		return ledger.Account{}, errs.NewNotFound("account", accountID.String())
	}
	delete(s.accounts, accountID)
	return a, nil
}

// CreateTransaction persists a transaction and indexes it under its account.
func (s *Store) CreateTransaction(_ context.Context, txn ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[txn.ID] = txn
	s.txnsByAccount[txn.AccountID] = append(s.txnsByAccount[txn.AccountID], txn.ID)
	return txn, nil
}

// ListTransactions returns all transactions for one account in insertion
// order.
func (s *Store) ListTransactions(_ context.Context, userID, accountID uuid.UUID) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.txnsByAccount[accountID]
	out := make([]ledger.Transaction, 0, len(ids))
	for _, id := range ids {
		if txn, ok := s.txns[id]; ok && txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

// GetTransaction returns one transaction scoped to its account.
func (s *Store) GetTransaction(_ context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.txns[txnID]
	if !ok || txn.AccountID != accountID {
		return ledger.Transaction{}, errs.NewNotFound("transaction", txnID.String())
	}
	return txn, nil
}

// DeleteTransaction removes one transaction and returns the deleted record.
func (s *Store) DeleteTransaction(_ context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txns[txnID]
	if !ok || txn.AccountID != accountID {
		return ledger.Transaction{}, errs.NewNotFound("transaction", txnID.String())
	}
	delete(s.txns, txnID)
	ids := s.txnsByAccount[accountID]
	for i, id := range ids {
		if id == txnID {
			s.txnsByAccount[accountID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return txn, nil
}

// OrphanedTransactionCount reports transactions whose account no longer
// exists. Exposed for tests asserting the no-cascade behavior.
func (s *Store) OrphanedTransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, txn := range s.txns {
		if _, ok := s.accounts[txn.AccountID]; !ok {
			n++
		}
	}
	return n
}
