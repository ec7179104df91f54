package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mcdaley/dough-app/internal/ledger"
	"github.com/mcdaley/dough-app/internal/service/transaction"
)

type ctxKey string

const (
	ctxKeyPostAccount     ctxKey = "validatedPostAccount"
	ctxKeyPostTransaction ctxKey = "validatedPostTransaction"
)

// validatePostAccount decodes and validates the POST /accounts body and
// stores the partially-built account in the request context. Name and type
// rules live in the service; this layer only rejects values that cannot be
// represented at all.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req postAccountRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "body", Message: "invalid JSON: " + err.Error()})
				return
			}
			balance, err := parseStrictDecimal(req.InitialBalance)
			if err != nil {
				badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "initial_balance", Message: err.Error()})
				return
			}
			date, ok := parseDate(req.InitialDate)
			if !ok {
				badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "initial_date", Message: "invalid date"})
				return
			}
			a := ledger.Account{
				Name:               req.Name,
				FinancialInstitute: req.FinancialInstitute,
				Type:               ledger.AccountType(req.Type),
				InitialBalance:     balance,
				InitialDate:        date,
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostAccount, a)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePostTransaction decodes the POST transaction body. Direction and
// amount are deliberately NOT validated here: the normalizer coerces them, so
// only the date can fail at this layer.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req postTransactionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "body", Message: "invalid JSON: " + err.Error()})
				return
			}
			date, ok := parseDate(req.Date)
			if !ok {
				badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "date", Message: "invalid date"})
				return
			}
			in := transaction.CreateInput{
				Description: req.Description,
				Date:        date,
				Category:    req.Category,
				Direction:   req.Direction,
				Magnitude:   ledger.ParseMagnitude(req.Amount),
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseStrictDecimal parses a JSON number or quoted number. Unlike the
// transaction magnitude, an account opening balance that does not parse is an
// error, not a zero.
func parseStrictDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	str := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	if str == "" || str == "null" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(str)
}
