// Package transaction implements transaction writes through the ledger
// normalizer and reads through the balance projector. Description presence
// and account resolution are checked here, before normalization; the
// normalizer itself never rejects.
package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdaley/dough-app/internal/errs"
	"github.com/mcdaley/dough-app/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
	GetAccount(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error)
	ListTransactions(ctx context.Context, userID, accountID uuid.UUID) ([]ledger.Transaction, error)
	GetTransaction(ctx context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateTransaction(ctx context.Context, txn ledger.Transaction) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, accountID, txnID uuid.UUID) (ledger.Transaction, error)
}

// CreateInput is a raw transaction write request. Direction and Magnitude are
// carried as received; the normalizer decides what they mean.
type CreateInput struct {
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Description string
	Date        time.Time
	Category    string
	Direction   string
	Magnitude   decimal.Decimal
}

// Ledger is an account plus its projected transaction lines, newest first.
type Ledger struct {
	Account ledger.Account
	Lines   []ledger.Line
}

// Service exposes transaction creation, projection, and deletion.
type Service interface {
	Create(ctx context.Context, in CreateInput) (ledger.Transaction, error)
	ListWithBalance(ctx context.Context, userID, accountID uuid.UUID) (Ledger, error)
	Get(ctx context.Context, userID, accountID, txnID uuid.UUID) (ledger.Transaction, error)
	Delete(ctx context.Context, userID, accountID, txnID uuid.UUID) (ledger.Transaction, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the transaction service.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// Create validates the boundary preconditions, normalizes the charge into the
// canonical signed amount, and persists the record. The target account must
// exist and belong to the requesting user.
func (s *service) Create(ctx context.Context, in CreateInput) (ledger.Transaction, error) {
	if in.UserID == uuid.Nil {
		return ledger.Transaction{}, errs.ErrInvalid
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return ledger.Transaction{}, errs.NewValidation("description", "Description is required")
	}
	if _, err := s.repo.GetAccount(ctx, in.UserID, in.AccountID); err != nil {
		return ledger.Transaction{}, err
	}

	dir, amount := ledger.Normalize(in.Direction, in.Magnitude)
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}
	txn := ledger.Transaction{
		ID:          uuid.New(),
		AccountID:   in.AccountID,
		UserID:      in.UserID,
		Description: in.Description,
		Date:        in.Date,
		Category:    in.Category,
		Direction:   dir,
		Amount:      amount,
	}
	return s.writer.CreateTransaction(ctx, txn)
}

// ListWithBalance loads the account and all of its transactions and returns
// the projected ledger view. The balance is recomputed on every read; nothing
// is persisted.
func (s *service) ListWithBalance(ctx context.Context, userID, accountID uuid.UUID) (Ledger, error) {
	acc, err := s.repo.GetAccount(ctx, userID, accountID)
	if err != nil {
		return Ledger{}, err
	}
	txns, err := s.repo.ListTransactions(ctx, userID, accountID)
	if err != nil {
		return Ledger{}, err
	}
	return Ledger{Account: acc, Lines: ledger.Project(txns)}, nil
}

func (s *service) Get(ctx context.Context, userID, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	if _, err := s.repo.GetAccount(ctx, userID, accountID); err != nil {
		return ledger.Transaction{}, err
	}
	return s.repo.GetTransaction(ctx, accountID, txnID)
}

// Delete removes one transaction. Other records keep their stored amounts;
// only the projected running balance changes on the next read.
func (s *service) Delete(ctx context.Context, userID, accountID, txnID uuid.UUID) (ledger.Transaction, error) {
	if _, err := s.repo.GetAccount(ctx, userID, accountID); err != nil {
		return ledger.Transaction{}, err
	}
	return s.writer.DeleteTransaction(ctx, accountID, txnID)
}
