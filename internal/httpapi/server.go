// Package httpapi wires the HTTP surface of the dough service. It keeps
// handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mcdaley/dough-app/internal/currentuser"
	"github.com/mcdaley/dough-app/internal/service/account"
	"github.com/mcdaley/dough-app/internal/service/transaction"
)

// Store unions the repository and writer operations the API needs from a
// storage backend. Both the memory and postgres stores satisfy it.
type Store interface {
	account.Repo
	account.Writer
	transaction.Repo
	transaction.Writer
}

// Server wires handlers and middleware using chi.
type Server struct {
	accountSvc account.Service
	txnSvc     transaction.Service
	users      currentuser.Resolver
	store      Store
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The logger is
// used by request/response logging and panic recovery.
func New(store Store, users currentuser.Resolver, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		accountSvc: account.New(store, store),
		txnSvc:     transaction.New(store, store),
		users:      users,
		store:      store,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route
// middleware.
func (s *Server) routes() {
	s.rt.Route("/api/v1", func(r chi.Router) {
		r.With(s.validatePostAccount()).Post("/accounts", s.postAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Put("/accounts/{id}", s.updateAccount)
		r.Delete("/accounts/{id}", s.deleteAccount)

		r.With(s.validatePostTransaction()).Post("/accounts/{accountId}/transactions", s.postTransaction)
		r.Get("/accounts/{accountId}/transactions", s.listTransactions)
		r.Get("/accounts/{accountId}/transactions/{id}", s.getTransaction)
		r.Delete("/accounts/{accountId}/transactions/{id}", s.deleteTransaction)
	})
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
