// Transaction handlers: create, projected list, get, delete.
package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdaley/dough-app/internal/service/transaction"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	accID, ok := accountID(r, "accountId")
	if !ok {
		notFound(w, "Account")
		return
	}
	v := r.Context().Value(ctxKeyPostTransaction)
	in, ok := v.(transaction.CreateInput)
	if !ok {
		serverError(w)
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	in.AccountID = accID
	in.UserID = user.ID
	txn, err := s.txnSvc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(txn))
}

// listTransactions returns the account and its projected ledger view, newest
// first, each line carrying the running balance and the debit/credit display
// columns. Balances are recomputed on every read.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	accID, ok := accountID(r, "accountId")
	if !ok {
		notFound(w, "Account")
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	led, err := s.txnSvc.ListWithBalance(r.Context(), user.ID, accID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := listTransactionsResponse{
		Account:      toAccountResponse(led.Account),
		Transactions: make([]lineResponse, 0, len(led.Lines)),
	}
	for _, ln := range led.Lines {
		resp.Transactions = append(resp.Transactions, toLineResponse(ln))
	}
	toJSON(w, http.StatusOK, resp)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	accID, ok := accountID(r, "accountId")
	if !ok {
		notFound(w, "Account")
		return
	}
	txnID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "Transaction")
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	txn, err := s.txnSvc.Get(r.Context(), user.ID, accID, txnID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, map[string]any{"transaction": toTransactionResponse(txn)})
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	accID, ok := accountID(r, "accountId")
	if !ok {
		notFound(w, "Account")
		return
	}
	txnID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "Transaction")
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	txn, err := s.txnSvc.Delete(r.Context(), user.ID, accID, txnID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, map[string]any{"transaction": toTransactionResponse(txn)})
}
