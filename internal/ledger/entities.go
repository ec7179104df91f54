package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction states whether a transaction decreases (debit) or increases
// (credit) the account balance.
type Direction string

const (
	// DirectionDebit lowers the running balance; its signed amount is <= 0.
	DirectionDebit Direction = "debit"
	// DirectionCredit raises the running balance; its signed amount is >= 0.
	DirectionCredit Direction = "credit"
)

// AccountType enumerates the kinds of account a user can open.
type AccountType string

const (
	AccountTypeChecking   AccountType = "Checking"
	AccountTypeSavings    AccountType = "Savings"
	AccountTypeCreditCard AccountType = "CreditCard"
)

// ValidAccountType reports whether t is one of the enumerated kinds.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard:
		return true
	}
	return false
}

// User captures the owner of accounts and transactions.
type User struct {
	ID uuid.UUID
}

// Account is a user-owned named container for transactions.
type Account struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	FinancialInstitute string
	Type               AccountType
	// InitialBalance is the recorded opening value. It is stored and served
	// but not folded into the running-balance projection; the two values are
	// independent until a product decision says otherwise.
	InitialBalance decimal.Decimal
	InitialDate    time.Time
}

// Transaction is one dated, signed monetary movement against an account.
// Amount is the canonical signed value produced by Normalize: negative or
// zero for debits, positive or zero for credits. The stored record never
// carries a balance; that is attached at read time by Project.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Description string
	Date        time.Time
	Category    string
	Direction   Direction
	Amount      decimal.Decimal
}
