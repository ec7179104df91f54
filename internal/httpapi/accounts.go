// Account handlers: create, list, get, partial update, delete.
package httpapi

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdaley/dough-app/internal/ledger"
	"github.com/mcdaley/dough-app/internal/service/account"
)

// accountID pulls the {id} or {accountId} route param. A malformed identifier
// is reported as not-found, never as a validation failure: it can only name
// an account that does not exist.
func accountID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(ctxKeyPostAccount)
	in, ok := v.(ledger.Account)
	if !ok {
		serverError(w)
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	in.UserID = user.ID
	acc, err := s.accountSvc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	accs, err := s.accountSvc.List(r.Context(), user.ID)
	if err != nil {
		serverError(w)
		return
	}
	out := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, map[string]any{"accounts": out})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r, "id")
	if !ok {
		notFound(w, "Account")
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	acc, err := s.accountSvc.Get(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, map[string]any{"account": toAccountResponse(acc)})
}

// updateAccount handles PUT /accounts/{id}. The body is a partial update:
// absent fields keep their stored values and unknown fields are ignored. The
// kind is re-validated against the enumeration by the service.
func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r, "id")
	if !ok {
		notFound(w, "Account")
		return
	}
	if !requireJSON(w, r) {
		return
	}
	var req putAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	patch := account.Update{
		Name:               req.Name,
		FinancialInstitute: req.FinancialInstitute,
	}
	if req.Type != nil {
		t := ledger.AccountType(*req.Type)
		patch.Type = &t
	}
	if req.InitialBalance != nil {
		d, err := parseStrictDecimal(*req.InitialBalance)
		if err != nil {
			badRequest(w, fieldError{Code: validationCode, Category: "ValidationError", Path: "initial_balance", Message: err.Error()})
			return
		}
		patch.InitialBalance = &d
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	acc, err := s.accountSvc.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r, "id")
	if !ok {
		notFound(w, "Account")
		return
	}
	user, err := s.users.Current(r.Context())
	if err != nil {
		serverError(w)
		return
	}
	acc, err := s.accountSvc.Delete(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}
