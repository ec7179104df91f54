// Package currentuser stands in for authentication. "The current user" is
// modeled as an injected capability so the HTTP layer never reaches for
// global state and the core receives user IDs explicitly.
package currentuser

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdaley/dough-app/internal/ledger"
)

// Resolver yields the user a request acts on behalf of.
type Resolver interface {
	Current(ctx context.Context) (ledger.User, error)
}

// Fixed always resolves the same user. Replace with a session-backed resolver
// once real authentication lands.
type Fixed struct {
	user ledger.User
}

// NewFixed builds a resolver pinned to the given user.
func NewFixed(u ledger.User) *Fixed { return &Fixed{user: u} }

// Current implements Resolver.
func (f *Fixed) Current(_ context.Context) (ledger.User, error) { return f.user, nil }

// UserFromEnv parses an optional user id; a blank or malformed value yields a
// fresh id so local runs always have a working user.
func UserFromEnv(raw string) ledger.User {
	if id, err := uuid.Parse(raw); err == nil {
		return ledger.User{ID: id}
	}
	return ledger.User{ID: uuid.New()}
}
