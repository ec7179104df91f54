// Package account implements the account service rules: required name,
// enumerated kind with a Checking default, non-negative opening balance, and
// partial updates that re-validate the kind.
package account

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
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error)
}

// Update carries the partial-update fields for an account. Nil pointers leave
// the stored value untouched; unknown request fields never reach this struct.
type Update struct {
	Name               *string
	FinancialInstitute *string
	Type               *ledger.AccountType
	InitialBalance     *decimal.Decimal
}

// Service exposes account CRUD with validation.
type Service interface {
	Create(ctx context.Context, a ledger.Account) (ledger.Account, error)
	Get(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error)
	Update(ctx context.Context, userID, accountID uuid.UUID, patch Update) (ledger.Account, error)
	Delete(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the account service.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func validate(a ledger.Account) error {
	if a.UserID == uuid.Nil {
		return errs.ErrInvalid
	}
	if a.Name == "" {
		return errs.NewValidation("name", "Account name is required")
	}
	if !ledger.ValidAccountType(a.Type) {
		return errs.NewValidation("type", "`"+string(a.Type)+"` is not a valid enum value for path `type`.")
	}
	if a.InitialBalance.Sign() < 0 {
		return errs.NewValidation("initial_balance", "Initial balance cannot be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.FinancialInstitute = strings.TrimSpace(a.FinancialInstitute)
	if a.Type == "" {
		a.Type = ledger.AccountTypeChecking
	}
	if a.InitialDate.IsZero() {
		a.InitialDate = time.Now().UTC()
	}
	if err := validate(a); err != nil {
		return ledger.Account{}, err
	}
	a.ID = uuid.New()
	return s.writer.CreateAccount(ctx, a)
}

func (s *service) Get(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	return s.repo.GetAccount(ctx, userID, accountID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListAccounts(ctx, userID)
}

// Update loads the current account, applies the provided fields, and
// re-validates before persisting. The kind is checked against the enumeration
// again so a patch cannot smuggle in an unknown type.
func (s *service) Update(ctx context.Context, userID, accountID uuid.UUID, patch Update) (ledger.Account, error) {
	a, err := s.repo.GetAccount(ctx, userID, accountID)
	if err != nil {
		return ledger.Account{}, err
	}
	if patch.Name != nil {
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.FinancialInstitute != nil {
		a.FinancialInstitute = strings.TrimSpace(*patch.FinancialInstitute)
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.InitialBalance != nil {
		a.InitialBalance = *patch.InitialBalance
	}
	if err := validate(a); err != nil {
		return ledger.Account{}, err
	}
	return s.writer.UpdateAccount(ctx, a)
}

// Delete removes the account record only. Its transactions are deliberately
// left in place: the delete has never cascaded, and existing clients depend
// on that. Orphaned transactions are unreachable through the API once the
// account is gone.
func (s *service) Delete(ctx context.Context, userID, accountID uuid.UUID) (ledger.Account, error) {
	return s.writer.DeleteAccount(ctx, userID, accountID)
}
