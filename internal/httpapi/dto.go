package httpapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcdaley/dough-app/internal/ledger"
)

// Account payloads. Request decoding is lenient: unknown fields are ignored
// so partial updates can carry whatever the client form sends.

type postAccountRequest struct {
	Name               string          `json:"name"`
	FinancialInstitute string          `json:"financial_institute"`
	Type               string          `json:"type"`
	InitialBalance     json.RawMessage `json:"initial_balance"`
	InitialDate        string          `json:"initial_date"`
}

type putAccountRequest struct {
	Name               *string          `json:"name"`
	FinancialInstitute *string          `json:"financial_institute"`
	Type               *string          `json:"type"`
	InitialBalance     *json.RawMessage `json:"initial_balance"`
}

type accountResponse struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	Name               string             `json:"name"`
	FinancialInstitute string             `json:"financial_institute"`
	Type               ledger.AccountType `json:"type"`
	InitialBalance     string             `json:"initial_balance"`
	InitialDate        time.Time          `json:"initial_date"`
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		Name:               a.Name,
		FinancialInstitute: a.FinancialInstitute,
		Type:               a.Type,
		InitialBalance:     a.InitialBalance.String(),
		InitialDate:        a.InitialDate,
	}
}

// Transaction payloads. Amount arrives as raw JSON because clients send a
// number, a quoted number, or garbage; the normalizer coerces it.

type postTransactionRequest struct {
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Direction   string          `json:"direction"`
	Amount      json.RawMessage `json:"amount"`
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   uuid.UUID        `json:"account_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Category    string           `json:"category"`
	Direction   ledger.Direction `json:"direction"`
	Amount      string           `json:"amount"`
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		UserID:      t.UserID,
		Description: t.Description,
		Date:        t.Date,
		Category:    t.Category,
		Direction:   t.Direction,
		Amount:      t.Amount.String(),
	}
}

// lineResponse is one projected ledger row: the stored transaction plus the
// read-time balance and the two display columns.
type lineResponse struct {
	transactionResponse
	Balance string `json:"balance"`
	Debit   string `json:"debit"`
	Credit  string `json:"credit"`
}

func toLineResponse(l ledger.Line) lineResponse {
	return lineResponse{
		transactionResponse: toTransactionResponse(l.Transaction),
		Balance:             l.Balance.String(),
		Debit:               l.DebitDisplay,
		Credit:              l.CreditDisplay,
	}
}

// listTransactionsResponse bundles the account and its projected
// transactions in one payload.
type listTransactionsResponse struct {
	Account      accountResponse `json:"account"`
	Transactions []lineResponse  `json:"transactions"`
}

// parseDate accepts RFC3339 or a plain calendar date; a blank value means
// "now", decided by the service.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
